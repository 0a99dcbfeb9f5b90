package models

import (
	"time"

	"gorm.io/gorm"
)

// RatingHistory records a wrestler's Elo progression one match at a time.
// Rows are rewritten wholesale whenever the wrestler's rating is recalculated,
// so the table always mirrors the current replay of their match history.
type RatingHistory struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	WrestlerID uint           `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"wrestler_id"`
	MatchID    uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"match_id"`
	SeasonID   uint           `gorm:"not null;index" json:"season_id"`
	EloBefore  float64        `gorm:"not null" json:"elo_before"`
	EloAfter   float64        `gorm:"not null" json:"elo_after"`
	EloChange  float64        `gorm:"not null" json:"elo_change"`
	OpponentID uint           `json:"opponent_id"`
	MatchDate  time.Time      `json:"match_date"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Wrestler *Wrestler `gorm:"foreignKey:WrestlerID;references:ID" json:"wrestler,omitempty"`
	Match    *Match    `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
	Opponent *Wrestler `gorm:"foreignKey:OpponentID;references:ID" json:"opponent,omitempty"`
}

func (RatingHistory) TableName() string {
	return "rating_history"
}
