package models

import (
	"time"

	"gorm.io/gorm"
)

type Match struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SeasonID    uint      `gorm:"not null;index" json:"season_id"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Wrestler1ID uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"wrestler1_id"`
	Wrestler2ID uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"wrestler2_id"`
	WinnerID    uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"winner_id"`
	WinMethod   string    `gorm:"size:30;not null" json:"win_method"`

	Wrestler1Score int `gorm:"default:0" json:"wrestler1_score"`
	Wrestler2Score int `gorm:"default:0" json:"wrestler2_score"`
	// ElapsedTime is only meaningful for time-bounded win methods (falls and
	// technical falls), e.g. "4:32".
	ElapsedTime string `gorm:"size:10" json:"elapsed_time,omitempty"`

	// ImportBatchID ties a match to the bulk import that created it so the
	// batch can be reverted as a unit.
	ImportBatchID *string `gorm:"size:36;index" json:"import_batch_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Wrestler1 *Wrestler `gorm:"foreignKey:Wrestler1ID;references:ID" json:"wrestler1,omitempty"`
	Wrestler2 *Wrestler `gorm:"foreignKey:Wrestler2ID;references:ID" json:"wrestler2,omitempty"`
	Winner    *Wrestler `gorm:"foreignKey:WinnerID;references:ID" json:"winner,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

// OpponentOf returns the other participant's ID. The second result is false
// when the given wrestler is not a participant.
func (m *Match) OpponentOf(wrestlerID uint) (uint, bool) {
	switch wrestlerID {
	case m.Wrestler1ID:
		return m.Wrestler2ID, true
	case m.Wrestler2ID:
		return m.Wrestler1ID, true
	}
	return 0, false
}

// LoserID returns the participant that did not win.
func (m *Match) LoserID() uint {
	if m.WinnerID == m.Wrestler1ID {
		return m.Wrestler2ID
	}
	return m.Wrestler1ID
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type CreateMatchRequest struct {
	SeasonID       uint   `json:"season_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Wrestler1ID    uint   `json:"wrestler1_id" binding:"required"`
	Wrestler2ID    uint   `json:"wrestler2_id" binding:"required"`
	WinnerID       uint   `json:"winner_id" binding:"required"`
	WinMethod      string `json:"win_method" binding:"required"`
	Wrestler1Score int    `json:"wrestler1_score"`
	Wrestler2Score int    `json:"wrestler2_score"`
	ElapsedTime    string `json:"elapsed_time"`
}

type UpdateMatchRequest struct {
	Date           *string `json:"date,omitempty"`
	Wrestler1ID    *uint   `json:"wrestler1_id,omitempty"`
	Wrestler2ID    *uint   `json:"wrestler2_id,omitempty"`
	WinnerID       *uint   `json:"winner_id,omitempty"`
	WinMethod      *string `json:"win_method,omitempty"`
	Wrestler1Score *int    `json:"wrestler1_score,omitempty"`
	Wrestler2Score *int    `json:"wrestler2_score,omitempty"`
	ElapsedTime    *string `json:"elapsed_time,omitempty"`
}
