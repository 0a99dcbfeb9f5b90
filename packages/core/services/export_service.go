package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ExportService writes CSV snapshots of the current state for spreadsheets
// and offline analysis.
type ExportService struct {
	db          *gorm.DB
	log         *logrus.Logger
	leaderboard *LeaderboardService
}

func NewExportService(db *gorm.DB, log *logrus.Logger, leaderboard *LeaderboardService) *ExportService {
	return &ExportService{
		db:          db,
		log:         log,
		leaderboard: leaderboard,
	}
}

// ExportRankingsCSV writes the cohort ranked by the given stat, one row per
// wrestler, rank first.
func (s *ExportService) ExportRankingsCSV(w io.Writer, filter CohortFilter, stat string) error {
	sorted, err := s.leaderboard.SortByStat(filter, stat)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{
		"Rank", "Name", "School", "WeightClass", "Wins", "Losses",
		"Elo", "RPI", "Hybrid", "Dominance",
	}); err != nil {
		return err
	}

	for i, wrestler := range sorted {
		row := []string{
			strconv.Itoa(i + 1),
			wrestler.Name,
			wrestler.School,
			strconv.Itoa(wrestler.WeightClass),
			strconv.Itoa(wrestler.Wins),
			strconv.Itoa(wrestler.Losses),
			formatScore(wrestler.EloRating),
			formatScore(wrestler.RPI),
			formatScore(wrestler.HybridScore),
			formatScore(wrestler.DominanceScore),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportWrestlersCSV writes every wrestler in the season.
func (s *ExportService) ExportWrestlersCSV(w io.Writer, seasonID uint) error {
	var wrestlers []models.Wrestler
	if err := s.db.Where("season_id = ?", seasonID).
		Order("weight_class ASC, name ASC").
		Find(&wrestlers).Error; err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{
		"Name", "School", "WeightClass", "Wins", "Losses",
		"Elo", "RPI", "Hybrid", "Dominance", "Falls", "TechFalls", "MajorDecisions",
	}); err != nil {
		return err
	}

	for _, wrestler := range wrestlers {
		row := []string{
			wrestler.Name,
			wrestler.School,
			strconv.Itoa(wrestler.WeightClass),
			strconv.Itoa(wrestler.Wins),
			strconv.Itoa(wrestler.Losses),
			formatScore(wrestler.EloRating),
			formatScore(wrestler.RPI),
			formatScore(wrestler.HybridScore),
			formatScore(wrestler.DominanceScore),
			strconv.Itoa(wrestler.Falls),
			strconv.Itoa(wrestler.TechFalls),
			strconv.Itoa(wrestler.MajorDecisions),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportMatchesCSV writes every match in the season in the same column
// layout the bulk importer accepts, so an export can be re-imported.
func (s *ExportService) ExportMatchesCSV(w io.Writer, seasonID uint) error {
	var matches []models.Match
	if err := s.db.Where("season_id = ?", seasonID).
		Order("date ASC, id ASC").
		Preload("Wrestler1").
		Preload("Wrestler2").
		Preload("Winner").
		Find(&matches).Error; err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(importHeader); err != nil {
		return err
	}

	for _, match := range matches {
		if match.Wrestler1 == nil || match.Wrestler2 == nil || match.Winner == nil {
			continue
		}
		row := []string{
			match.Date.Format("2006-01-02"),
			match.Wrestler1.Name,
			match.Wrestler1.School,
			match.Wrestler2.Name,
			match.Wrestler2.School,
			strconv.Itoa(match.Wrestler1.WeightClass),
			match.Winner.Name,
			match.WinMethod,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatScore(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
