package services

import (
	"errors"
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MatchService owns match mutations. Every create, edit or delete runs the
// full recalculation cascade for the affected wrestlers inside the same
// transaction, so score fields never reflect a mutation that did not commit.
type MatchService struct {
	db     *gorm.DB
	log    *logrus.Logger
	recalc *Recalculator
}

func NewMatchService(db *gorm.DB, log *logrus.Logger, recalc *Recalculator) *MatchService {
	return &MatchService{
		db:     db,
		log:    log,
		recalc: recalc,
	}
}

type MatchFilters struct {
	Page       int
	PerPage    int
	WrestlerID *uint
	SeasonID   *uint
	DateFrom   *time.Time
	DateTo     *time.Time
}

func (s *MatchService) GetMatch(matchID uint) (*models.Match, error) {
	var match models.Match

	result := s.db.Preload("Wrestler1").Preload("Wrestler2").Preload("Winner").
		First(&match, matchID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("match not found")
		}
		return nil, result.Error
	}

	return &match, nil
}

func (s *MatchService) GetRecentMatches(limit int) ([]models.Match, error) {
	var matches []models.Match

	result := s.db.Order("date DESC, id DESC").
		Limit(limit).
		Preload("Wrestler1").
		Preload("Wrestler2").
		Preload("Winner").
		Find(&matches)

	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}

func (s *MatchService) GetMatches(filters MatchFilters) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	baseQuery := s.db.Model(&models.Match{})

	if filters.WrestlerID != nil {
		baseQuery = baseQuery.Where("wrestler1_id = ? OR wrestler2_id = ?", *filters.WrestlerID, *filters.WrestlerID)
	}
	if filters.SeasonID != nil {
		baseQuery = baseQuery.Where("season_id = ?", *filters.SeasonID)
	}
	if filters.DateFrom != nil {
		baseQuery = baseQuery.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		baseQuery = baseQuery.Where("date <= ?", *filters.DateTo)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PerPage

	query := baseQuery.Order("date DESC, id DESC").
		Preload("Wrestler1").
		Preload("Wrestler2").
		Preload("Winner").
		Offset(offset).
		Limit(filters.PerPage)

	if err := query.Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}

func (s *MatchService) CreateMatch(req models.CreateMatchRequest) (*models.Match, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.New("invalid date format")
	}

	var season models.Season
	if err := s.db.First(&season, req.SeasonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("season not found")
		}
		return nil, err
	}

	var wrestler1, wrestler2 models.Wrestler
	if err := s.db.First(&wrestler1, req.Wrestler1ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("wrestler1 not found")
		}
		return nil, err
	}
	if err := s.db.First(&wrestler2, req.Wrestler2ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("wrestler2 not found")
		}
		return nil, err
	}

	// Invariants are checked before anything is written so a bad match never
	// triggers a partial recalculation.
	if err := validateMatchParticipants(&wrestler1, &wrestler2, req.WinnerID, req.WinMethod); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	match := models.Match{
		SeasonID:       req.SeasonID,
		Date:           date,
		Wrestler1ID:    req.Wrestler1ID,
		Wrestler2ID:    req.Wrestler2ID,
		WinnerID:       req.WinnerID,
		WinMethod:      req.WinMethod,
		Wrestler1Score: req.Wrestler1Score,
		Wrestler2Score: req.Wrestler2Score,
		ElapsedTime:    req.ElapsedTime,
	}

	if err := tx.Create(&match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.applyCascade(tx, req.SeasonID, req.Wrestler1ID, req.Wrestler2ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"match_id":  match.ID,
		"season_id": match.SeasonID,
		"winner_id": match.WinnerID,
	}).Info("Match created")

	return s.GetMatch(match.ID)
}

func (s *MatchService) UpdateMatch(matchID uint, req models.UpdateMatchRequest) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("match not found")
		}
		return nil, err
	}

	// Everyone touched by the old or the new version of the match needs a
	// recalculation afterwards.
	affected := map[uint]bool{match.Wrestler1ID: true, match.Wrestler2ID: true}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, errors.New("invalid date format")
		}
		match.Date = date
	}
	if req.Wrestler1ID != nil {
		match.Wrestler1ID = *req.Wrestler1ID
	}
	if req.Wrestler2ID != nil {
		match.Wrestler2ID = *req.Wrestler2ID
	}
	if req.WinnerID != nil {
		match.WinnerID = *req.WinnerID
	}
	if req.WinMethod != nil {
		match.WinMethod = *req.WinMethod
	}
	if req.Wrestler1Score != nil {
		match.Wrestler1Score = *req.Wrestler1Score
	}
	if req.Wrestler2Score != nil {
		match.Wrestler2Score = *req.Wrestler2Score
	}
	if req.ElapsedTime != nil {
		match.ElapsedTime = *req.ElapsedTime
	}

	var wrestler1, wrestler2 models.Wrestler
	if err := s.db.First(&wrestler1, match.Wrestler1ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("wrestler1 not found")
		}
		return nil, err
	}
	if err := s.db.First(&wrestler2, match.Wrestler2ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("wrestler2 not found")
		}
		return nil, err
	}

	if err := validateMatchParticipants(&wrestler1, &wrestler2, match.WinnerID, match.WinMethod); err != nil {
		return nil, err
	}

	affected[match.Wrestler1ID] = true
	affected[match.Wrestler2ID] = true

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(&match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	ids := make([]uint, 0, len(affected))
	for id := range affected {
		ids = append(ids, id)
	}

	if err := s.applyCascade(tx, match.SeasonID, ids...); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"match_id":  match.ID,
		"season_id": match.SeasonID,
	}).Info("Match updated")

	return s.GetMatch(match.ID)
}

// DeleteMatch removes a match and restores both participants to exactly the
// scores they would have had if the match had never existed.
func (s *MatchService) DeleteMatch(matchID uint) error {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("match not found")
		}
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Delete(&match).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := s.applyCascade(tx, match.SeasonID, match.Wrestler1ID, match.Wrestler2ID); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"match_id":  matchID,
		"season_id": match.SeasonID,
	}).Info("Match deleted")

	return nil
}

// applyCascade rebuilds records first, then runs the scoring cascade, for
// each affected wrestler.
func (s *MatchService) applyCascade(tx *gorm.DB, seasonID uint, wrestlerIDs ...uint) error {
	for _, wrestlerID := range wrestlerIDs {
		if err := recalculateRecord(tx, wrestlerID, seasonID); err != nil {
			return err
		}
	}
	return s.recalc.recalculateAll(tx, seasonID, wrestlerIDs...)
}

func validateMatchParticipants(wrestler1, wrestler2 *models.Wrestler, winnerID uint, winMethod string) error {
	if wrestler1.ID == wrestler2.ID {
		return errors.New("a wrestler cannot compete against themselves")
	}
	if wrestler1.WeightClass != wrestler2.WeightClass {
		return errors.New("wrestlers must be in the same weight class")
	}
	if winnerID != wrestler1.ID && winnerID != wrestler2.ID {
		return errors.New("winner must be either wrestler1 or wrestler2")
	}
	if !models.IsValidWinMethod(winMethod) {
		return errors.New("invalid win method")
	}
	return nil
}
