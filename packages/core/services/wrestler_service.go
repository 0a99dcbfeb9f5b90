package services

import (
	"errors"
	"strings"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/lookup"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type WrestlerService struct {
	db      *gorm.DB
	log     *logrus.Logger
	schools *lookup.Directory
	recalc  *Recalculator
}

func NewWrestlerService(db *gorm.DB, log *logrus.Logger, schools *lookup.Directory, recalc *Recalculator) *WrestlerService {
	return &WrestlerService{
		db:      db,
		log:     log,
		schools: schools,
		recalc:  recalc,
	}
}

func (s *WrestlerService) GetWrestlerByID(id uint) (*models.Wrestler, error) {
	var wrestler models.Wrestler

	result := s.db.First(&wrestler, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("wrestler not found")
		}
		return nil, result.Error
	}

	return &wrestler, nil
}

func (s *WrestlerService) CreateWrestler(req models.CreateWrestlerRequest) (*models.Wrestler, error) {
	name := normalizeName(req.Name)
	school := s.schools.Canonical(req.School)

	if name == "" {
		return nil, errors.New("name is required")
	}
	if !s.schools.IsKnown(school) {
		return nil, errors.New("unknown school")
	}
	if !models.IsValidWeightClass(req.WeightClass) {
		return nil, errors.New("invalid weight class")
	}

	var season models.Season
	if err := s.db.First(&season, req.SeasonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("season not found")
		}
		return nil, err
	}

	var existing models.Wrestler
	err := s.db.Where(
		"LOWER(name) = ? AND LOWER(school) = ? AND weight_class = ? AND season_id = ?",
		strings.ToLower(name), strings.ToLower(school), req.WeightClass, req.SeasonID,
	).First(&existing).Error
	if err == nil {
		return nil, errors.New("wrestler already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wrestler := &models.Wrestler{
		Name:        name,
		School:      school,
		WeightClass: req.WeightClass,
		SeasonID:    req.SeasonID,
		EloRating:   models.DefaultElo,
	}

	if err := s.db.Create(wrestler).Error; err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"wrestler_id":  wrestler.ID,
		"name":         wrestler.Name,
		"school":       wrestler.School,
		"weight_class": wrestler.WeightClass,
	}).Info("Wrestler created")

	return wrestler, nil
}

// FindOrCreateWrestler looks a wrestler up by normalized name, school, weight
// class and season, creating them when absent. The second result reports
// which path was taken (false = found, true = created), so callers and tests
// can assert on implicit creation during bulk import.
func (s *WrestlerService) FindOrCreateWrestler(name, school string, weightClass int, seasonID uint) (*models.Wrestler, bool, error) {
	return s.findOrCreateWrestler(s.db, name, school, weightClass, seasonID)
}

func (s *WrestlerService) findOrCreateWrestler(db *gorm.DB, name, school string, weightClass int, seasonID uint) (*models.Wrestler, bool, error) {
	name = normalizeName(name)
	school = s.schools.Canonical(school)

	if name == "" || school == "" {
		return nil, false, errors.New("name and school are required")
	}
	if !models.IsValidWeightClass(weightClass) {
		return nil, false, errors.New("invalid weight class")
	}

	var wrestler models.Wrestler
	err := db.Where(
		"LOWER(name) = ? AND LOWER(school) = ? AND weight_class = ? AND season_id = ?",
		strings.ToLower(name), strings.ToLower(school), weightClass, seasonID,
	).First(&wrestler).Error
	if err == nil {
		return &wrestler, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	wrestler = models.Wrestler{
		Name:        name,
		School:      school,
		WeightClass: weightClass,
		SeasonID:    seasonID,
		EloRating:   models.DefaultElo,
	}
	if err := db.Create(&wrestler).Error; err != nil {
		return nil, false, err
	}

	s.log.WithFields(logrus.Fields{
		"wrestler_id": wrestler.ID,
		"name":        name,
		"school":      school,
	}).Info("Created wrestler on first reference")

	return &wrestler, true, nil
}

// UpdateWrestler edits identity fields. Changing weight class puts the
// wrestler in a fresh competitive context: every computed score and the
// win/loss record reset to defaults.
func (s *WrestlerService) UpdateWrestler(id uint, req models.UpdateWrestlerRequest) (*models.Wrestler, error) {
	wrestler, err := s.GetWrestlerByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := normalizeName(*req.Name)
		if name == "" {
			return nil, errors.New("name is required")
		}
		wrestler.Name = name
	}
	if req.School != nil {
		school := s.schools.Canonical(*req.School)
		if !s.schools.IsKnown(school) {
			return nil, errors.New("unknown school")
		}
		wrestler.School = school
	}
	if req.WeightClass != nil && *req.WeightClass != wrestler.WeightClass {
		if !models.IsValidWeightClass(*req.WeightClass) {
			return nil, errors.New("invalid weight class")
		}
		wrestler.WeightClass = *req.WeightClass
		wrestler.ResetScores()
		s.log.WithFields(logrus.Fields{
			"wrestler_id":  wrestler.ID,
			"weight_class": *req.WeightClass,
		}).Warn("Weight class changed, scores reset to defaults")
	}

	if err := s.db.Save(wrestler).Error; err != nil {
		return nil, err
	}

	return wrestler, nil
}

// DeleteWrestler removes a wrestler and all their matches, then recalculates
// every opponent those matches touched.
func (s *WrestlerService) DeleteWrestler(id uint) error {
	wrestler, err := s.GetWrestlerByID(id)
	if err != nil {
		return err
	}

	var matches []models.Match
	if err := s.db.
		Where("wrestler1_id = ? OR wrestler2_id = ?", id, id).
		Find(&matches).Error; err != nil {
		return err
	}

	opponents := make(map[uint]bool)
	for _, match := range matches {
		if opponentID, ok := match.OpponentOf(id); ok {
			opponents[opponentID] = true
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if len(matches) > 0 {
		if err := tx.Where("wrestler1_id = ? OR wrestler2_id = ?", id, id).
			Delete(&models.Match{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Unscoped().Where("wrestler_id = ?", id).
		Delete(&models.RatingHistory{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(wrestler).Error; err != nil {
		tx.Rollback()
		return err
	}

	for opponentID := range opponents {
		if err := recalculateRecord(tx, opponentID, wrestler.SeasonID); err != nil {
			tx.Rollback()
			return err
		}
		if err := s.recalc.recalculateAll(tx, wrestler.SeasonID, opponentID); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"wrestler_id": id,
		"matches":     len(matches),
		"opponents":   len(opponents),
	}).Info("Wrestler deleted with matches")

	return nil
}

// BulkDeleteWrestlers deletes several wrestlers at once, each with their
// matches and the opponent recalculation that implies. Ids that do not exist
// are skipped; the count of actually deleted wrestlers is returned.
func (s *WrestlerService) BulkDeleteWrestlers(ids []uint) (int, error) {
	if len(ids) == 0 {
		return 0, errors.New("no wrestler ids provided")
	}

	deleted := 0
	for _, id := range ids {
		err := s.DeleteWrestler(id)
		if err != nil {
			if err.Error() == "wrestler not found" {
				continue
			}
			return deleted, err
		}
		deleted++
	}

	s.log.WithFields(logrus.Fields{
		"requested": len(ids),
		"deleted":   deleted,
	}).Info("Bulk wrestler deletion completed")

	return deleted, nil
}

func (s *WrestlerService) GetAllWrestlers(seasonID uint, orderBy string, direction string, page int, pageSize int) (*models.PaginatedWrestlersResponse, error) {
	var wrestlers []models.Wrestler
	var total int64

	allowedOrderBy := map[string]bool{
		"name":            true,
		"school":          true,
		"weight_class":    true,
		"elo_rating":      true,
		"rpi":             true,
		"hybrid_score":    true,
		"dominance_score": true,
		"wins":            true,
		"created_at":      true,
	}

	if !allowedOrderBy[orderBy] {
		orderBy = "weight_class"
	}
	if direction != "ASC" && direction != "DESC" {
		direction = "ASC"
	}

	baseQuery := s.db.Model(&models.Wrestler{})
	if seasonID > 0 {
		baseQuery = baseQuery.Where("season_id = ?", seasonID)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	orderClause := orderBy + " " + direction

	if err := baseQuery.Order(orderClause).
		Offset(offset).
		Limit(pageSize).
		Find(&wrestlers).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedWrestlersResponse{
		Data:       wrestlers,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *WrestlerService) GetWrestlerMatches(wrestlerID uint, filter string, page int, pageSize int) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	baseQuery := s.db.Model(&models.Match{}).
		Where("wrestler1_id = ? OR wrestler2_id = ?", wrestlerID, wrestlerID)

	switch filter {
	case "wins":
		baseQuery = baseQuery.Where("winner_id = ?", wrestlerID)
	case "losses":
		baseQuery = baseQuery.Where("winner_id != ?", wrestlerID)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	query := baseQuery.Order("date DESC, id DESC").
		Preload("Wrestler1").
		Preload("Wrestler2").
		Preload("Winner").
		Offset(offset).
		Limit(pageSize)

	if err := query.Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// normalizeName trims and title-cases a name the way imported result sheets
// are normalized, so "john SMITH" and "John Smith" land on the same record.
func normalizeName(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		if len(word) == 1 {
			words[i] = strings.ToUpper(word)
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
