package services

import (
	"errors"
	"strings"
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeasonService manages seasons. Seasons partition wrestlers and matches;
// scores never cross a season boundary except through the explicit
// carry-forward operation.
type SeasonService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewSeasonService(db *gorm.DB, log *logrus.Logger) *SeasonService {
	return &SeasonService{
		db:  db,
		log: log,
	}
}

func (s *SeasonService) GetSeasons() ([]models.Season, error) {
	var seasons []models.Season
	if err := s.db.Order("start_date DESC").Find(&seasons).Error; err != nil {
		return nil, err
	}
	return seasons, nil
}

func (s *SeasonService) GetSeasonByID(id uint) (*models.Season, error) {
	var season models.Season
	result := s.db.First(&season, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("season not found")
		}
		return nil, result.Error
	}
	return &season, nil
}

func (s *SeasonService) GetActiveSeason() (*models.Season, error) {
	var season models.Season
	result := s.db.Where("active = ?", true).First(&season)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("no active season")
		}
		return nil, result.Error
	}
	return &season, nil
}

func (s *SeasonService) CreateSeason(req models.CreateSeasonRequest) (*models.Season, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, errors.New("invalid start date format")
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, errors.New("invalid end date format")
	}
	if !endDate.After(startDate) {
		return nil, errors.New("end date must be after start date")
	}

	season := &models.Season{
		Name:      strings.TrimSpace(req.Name),
		StartDate: startDate,
		EndDate:   endDate,
		Active:    req.Active,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Only one season can be active at a time.
	if season.Active {
		if err := tx.Model(&models.Season{}).Where("active = ?", true).
			Update("active", false).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Create(season).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"season_id": season.ID,
		"name":      season.Name,
	}).Info("Season created")

	return season, nil
}

// CarryForward seeds each wrestler in the new season with the final Elo of
// their record in the previous season, matched by name and school. The seed
// lands in SeasonStartElo, a separately labeled value: the new season's
// working rating still starts at the default baseline.
func (s *SeasonService) CarryForward(previousSeasonID, newSeasonID uint) (int, error) {
	if _, err := s.GetSeasonByID(previousSeasonID); err != nil {
		return 0, err
	}
	if _, err := s.GetSeasonByID(newSeasonID); err != nil {
		return 0, err
	}

	var newWrestlers []models.Wrestler
	if err := s.db.Where("season_id = ?", newSeasonID).Find(&newWrestlers).Error; err != nil {
		return 0, err
	}

	seeded := 0
	for _, wrestler := range newWrestlers {
		var previous models.Wrestler
		err := s.db.Where(
			"season_id = ? AND LOWER(name) = ? AND LOWER(school) = ?",
			previousSeasonID, strings.ToLower(wrestler.Name), strings.ToLower(wrestler.School),
		).First(&previous).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return seeded, err
		}

		if err := s.db.Model(&models.Wrestler{}).Where("id = ?", wrestler.ID).
			Update("season_start_elo", previous.EloRating).Error; err != nil {
			return seeded, err
		}
		seeded++
	}

	s.log.WithFields(logrus.Fields{
		"previous_season_id": previousSeasonID,
		"new_season_id":      newSeasonID,
		"seeded":             seeded,
	}).Info("Season start Elo carried forward")

	return seeded, nil
}
