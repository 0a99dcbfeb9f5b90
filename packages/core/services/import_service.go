package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// importHeader is the exact column order bulk result sheets must use.
var importHeader = []string{
	"Date", "Wrestler1", "School1", "Wrestler2", "School2",
	"WeightClass", "Winner", "WinType",
}

// importDateFormats lists the accepted date layouts, tried in order. Result
// sheets come from several sources and are not consistent about it.
var importDateFormats = []string{
	"1/2/2006",
	"1/2/06",
	"2006-01-02",
}

// winMethodAliases maps the shorthand used on result sheets onto the
// canonical win method names.
var winMethodAliases = map[string]string{
	"f":     models.WinMethodFall,
	"fall":  models.WinMethodFall,
	"tf":    models.WinMethodTechnicalFall,
	"tech":  models.WinMethodTechnicalFall,
	"md":    models.WinMethodMajorDecision,
	"major": models.WinMethodMajorDecision,
	"dec":   models.WinMethodDecision,
	"d":     models.WinMethodDecision,
	"sv":    models.WinMethodSuddenVictory,
	"tb":    models.WinMethodTiebreaker,
	"inj":   models.WinMethodInjuryDefault,
	"dq":    models.WinMethodDisqualification,
	"ff":    models.WinMethodForfeit,
	"for":   models.WinMethodForfeit,
}

// ImportService handles bulk CSV ingestion of match results. Every import
// gets a batch ID so a bad sheet can be reverted as a unit.
type ImportService struct {
	db        *gorm.DB
	log       *logrus.Logger
	wrestlers *WrestlerService
	recalc    *Recalculator
}

func NewImportService(db *gorm.DB, log *logrus.Logger, wrestlers *WrestlerService, recalc *Recalculator) *ImportService {
	return &ImportService{
		db:        db,
		log:       log,
		wrestlers: wrestlers,
		recalc:    recalc,
	}
}

// ImportMatchesCSV ingests a result sheet into the given season. Unknown
// wrestlers are created on first reference. Bad rows are skipped with a
// per-row error rather than failing the whole sheet; duplicate rows (same
// date, participants and winner) are skipped silently. All scores of every
// affected wrestler are recalculated once, after the last row.
func (s *ImportService) ImportMatchesCSV(seasonID uint, r io.Reader) (*models.ImportResult, error) {
	var season models.Season
	if err := s.db.First(&season, seasonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("season not found")
		}
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New("empty or unreadable CSV")
	}
	if err := validateImportHeader(header); err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		BatchID: uuid.NewString(),
	}
	affected := make(map[uint]bool)

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	rowNum := 1
	for {
		rowNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.RowsSkipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		created, createdWrestlers, rowErr := s.importRow(tx, seasonID, result.BatchID, row, affected)
		result.WrestlersCreated += createdWrestlers
		if rowErr != nil {
			result.RowsSkipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, rowErr))
			continue
		}
		if !created {
			result.RowsSkipped++
			continue
		}
		result.MatchesCreated++
	}

	for wrestlerID := range affected {
		if err := recalculateRecord(tx, wrestlerID, seasonID); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := s.recalc.recalculateAll(tx, seasonID, wrestlerID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"batch_id":          result.BatchID,
		"matches_created":   result.MatchesCreated,
		"wrestlers_created": result.WrestlersCreated,
		"rows_skipped":      result.RowsSkipped,
	}).Info("CSV import completed")

	return result, nil
}

// importRow creates one match from a CSV row. Returns whether a match was
// created (false for duplicates) and how many wrestlers the row created.
func (s *ImportService) importRow(tx *gorm.DB, seasonID uint, batchID string, row []string, affected map[uint]bool) (bool, int, error) {
	if len(row) != len(importHeader) {
		return false, 0, fmt.Errorf("expected %d columns, got %d", len(importHeader), len(row))
	}

	date, err := parseImportDate(row[0])
	if err != nil {
		return false, 0, err
	}

	weightClass, err := strconv.Atoi(strings.TrimSpace(row[5]))
	if err != nil || !models.IsValidWeightClass(weightClass) {
		return false, 0, fmt.Errorf("invalid weight class %q", row[5])
	}

	winMethod, ok := normalizeWinMethod(row[7])
	if !ok {
		return false, 0, fmt.Errorf("invalid win type %q", row[7])
	}

	wrestlersCreated := 0
	wrestler1, created, err := s.wrestlers.findOrCreateWrestler(tx, row[1], row[2], weightClass, seasonID)
	if err != nil {
		return false, 0, fmt.Errorf("wrestler1: %w", err)
	}
	if created {
		wrestlersCreated++
	}

	wrestler2, created, err := s.wrestlers.findOrCreateWrestler(tx, row[3], row[4], weightClass, seasonID)
	if err != nil {
		return false, wrestlersCreated, fmt.Errorf("wrestler2: %w", err)
	}
	if created {
		wrestlersCreated++
	}

	if wrestler1.ID == wrestler2.ID {
		return false, wrestlersCreated, errors.New("a wrestler cannot compete against themselves")
	}

	var winnerID uint
	winnerName := normalizeName(row[6])
	switch winnerName {
	case wrestler1.Name:
		winnerID = wrestler1.ID
	case wrestler2.Name:
		winnerID = wrestler2.ID
	default:
		return false, wrestlersCreated, fmt.Errorf("winner %q is not a participant", row[6])
	}

	// Same bout appearing on two sheets counts once.
	var duplicates int64
	if err := tx.Model(&models.Match{}).Where(
		"season_id = ? AND date = ? AND winner_id = ? AND ((wrestler1_id = ? AND wrestler2_id = ?) OR (wrestler1_id = ? AND wrestler2_id = ?))",
		seasonID, date, winnerID,
		wrestler1.ID, wrestler2.ID, wrestler2.ID, wrestler1.ID,
	).Count(&duplicates).Error; err != nil {
		return false, wrestlersCreated, err
	}
	if duplicates > 0 {
		return false, wrestlersCreated, nil
	}

	match := &models.Match{
		SeasonID:      seasonID,
		Date:          date,
		Wrestler1ID:   wrestler1.ID,
		Wrestler2ID:   wrestler2.ID,
		WinnerID:      winnerID,
		WinMethod:     winMethod,
		ImportBatchID: &batchID,
	}
	if err := tx.Create(match).Error; err != nil {
		return false, wrestlersCreated, err
	}

	affected[wrestler1.ID] = true
	affected[wrestler2.ID] = true
	return true, wrestlersCreated, nil
}

// RevertImportBatch deletes every match created by the batch, recalculates
// the wrestlers those matches touched, and removes wrestlers left with no
// matches at all (they only ever existed because of this sheet).
func (s *ImportService) RevertImportBatch(batchID string) (*models.RevertResult, error) {
	var matches []models.Match
	if err := s.db.Where("import_batch_id = ?", batchID).Find(&matches).Error; err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errors.New("import batch not found")
	}

	seasonID := matches[0].SeasonID
	affected := make(map[uint]bool)
	for _, match := range matches {
		affected[match.Wrestler1ID] = true
		affected[match.Wrestler2ID] = true
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("import_batch_id = ?", batchID).
		Delete(&models.Match{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	wrestlersDeleted := 0
	for wrestlerID := range affected {
		var remaining int64
		if err := tx.Model(&models.Match{}).
			Where("wrestler1_id = ? OR wrestler2_id = ?", wrestlerID, wrestlerID).
			Count(&remaining).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		if remaining == 0 {
			if err := tx.Unscoped().Where("wrestler_id = ?", wrestlerID).
				Delete(&models.RatingHistory{}).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
			if err := tx.Delete(&models.Wrestler{}, wrestlerID).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
			wrestlersDeleted++
			continue
		}

		if err := recalculateRecord(tx, wrestlerID, seasonID); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := s.recalc.recalculateAll(tx, seasonID, wrestlerID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"batch_id":          batchID,
		"matches_deleted":   len(matches),
		"wrestlers_deleted": wrestlersDeleted,
	}).Info("Import batch reverted")

	return &models.RevertResult{
		BatchID:          batchID,
		MatchesDeleted:   len(matches),
		WrestlersDeleted: wrestlersDeleted,
	}, nil
}

func validateImportHeader(header []string) error {
	if len(header) != len(importHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(importHeader), len(header))
	}
	for i, want := range importHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("column %d must be %q", i+1, want)
		}
	}
	return nil
}

func parseImportDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range importDateFormats {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func normalizeWinMethod(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if models.IsValidWinMethod(value) {
		return value, true
	}
	if canonical, ok := winMethodAliases[strings.ToLower(value)]; ok {
		return canonical, true
	}
	return "", false
}
