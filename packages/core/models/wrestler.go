package models

import (
	"time"

	"gorm.io/gorm"
)

// Rating defaults for a wrestler entering a fresh competitive context.
const (
	DefaultElo       = 1500.0
	DefaultGlicko    = 1500.0
	DefaultGlickoRD  = 350.0
	DefaultGlickoVol = 0.06
)

type Wrestler struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	School      string  `gorm:"size:100;not null" json:"school"`
	WeightClass int     `gorm:"not null;index" json:"weight_class"`
	SeasonID    uint    `gorm:"not null;index" json:"season_id"`
	Wins        int     `gorm:"default:0" json:"wins"`
	Losses      int     `gorm:"default:0" json:"losses"`
	EloRating   float64 `gorm:"default:1500" json:"elo_rating"`
	// SeasonStartElo carries the prior season's final rating forward; it is a
	// labeled seed, never overwritten by recalculation.
	SeasonStartElo *float64 `json:"season_start_elo,omitempty"`
	RPI            float64  `gorm:"default:0" json:"rpi"`
	HybridScore    float64  `gorm:"default:0" json:"hybrid_score"`
	DominanceScore float64  `gorm:"default:0" json:"dominance_score"`

	// Per-method win counters, used only for leaderboard stats.
	Falls          int `gorm:"default:0" json:"falls"`
	TechFalls      int `gorm:"default:0" json:"tech_falls"`
	MajorDecisions int `gorm:"default:0" json:"major_decisions"`

	// Experimental Glicko-2 state, updated by the weekly rating period job.
	GlickoRating float64 `gorm:"default:1500" json:"glicko_rating"`
	GlickoRD     float64 `gorm:"default:350" json:"glicko_rd"`
	GlickoVol    float64 `gorm:"default:0.06" json:"glicko_vol"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Season          *Season `gorm:"foreignKey:SeasonID" json:"season,omitempty"`
	MatchesAsFirst  []Match `gorm:"foreignKey:Wrestler1ID" json:"matches_as_first,omitempty"`
	MatchesAsSecond []Match `gorm:"foreignKey:Wrestler2ID" json:"matches_as_second,omitempty"`
	WonMatches      []Match `gorm:"foreignKey:WinnerID" json:"won_matches,omitempty"`
}

func (Wrestler) TableName() string {
	return "wrestlers"
}

// TotalMatches is the wrestler's match count derived from the win/loss record.
func (w *Wrestler) TotalMatches() int {
	return w.Wins + w.Losses
}

// WinPercentage returns wins over total matches, and false when the wrestler
// has no matches (callers sort missing values last).
func (w *Wrestler) WinPercentage() (float64, bool) {
	total := w.TotalMatches()
	if total == 0 {
		return 0, false
	}
	return float64(w.Wins) / float64(total), true
}

// ResetScores returns every computed score, counter and the win/loss record
// to its default. Used when a wrestler changes weight class.
func (w *Wrestler) ResetScores() {
	w.Wins = 0
	w.Losses = 0
	w.EloRating = DefaultElo
	w.RPI = 0
	w.HybridScore = 0
	w.DominanceScore = 0
	w.Falls = 0
	w.TechFalls = 0
	w.MajorDecisions = 0
	w.GlickoRating = DefaultGlicko
	w.GlickoRD = DefaultGlickoRD
	w.GlickoVol = DefaultGlickoVol
}

type PaginatedWrestlersResponse struct {
	Data       []Wrestler `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}

type CreateWrestlerRequest struct {
	Name        string `json:"name" binding:"required"`
	School      string `json:"school" binding:"required"`
	WeightClass int    `json:"weight_class" binding:"required"`
	SeasonID    uint   `json:"season_id" binding:"required"`
}

type UpdateWrestlerRequest struct {
	Name        *string `json:"name,omitempty"`
	School      *string `json:"school,omitempty"`
	WeightClass *int    `json:"weight_class,omitempty"`
}

type BulkDeleteWrestlersRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}
