package fixtures

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var firstNames = []string{
	"Jake", "Tyler", "Mason", "Logan", "Ethan", "Carter", "Dylan", "Austin",
	"Hunter", "Connor", "Brady", "Cole", "Gavin", "Wyatt", "Luke",
}

var lastNames = []string{
	"Miller", "Johnson", "Anderson", "Peterson", "Schmidt", "Novak",
	"Kowalski", "Brooks", "Reed", "Hansen", "Fischer", "Larson", "Olsen",
	"Wagner", "Berg",
}

var fixtureWinMethods = []string{
	models.WinMethodFall,
	models.WinMethodTechnicalFall,
	models.WinMethodMajorDecision,
	models.WinMethodDecision,
	models.WinMethodDecision,
	models.WinMethodDecision,
}

type Fixtures struct {
	db     *gorm.DB
	log    *logrus.Logger
	module *core.Module
	rng    *rand.Rand
}

func NewFixtures(db *gorm.DB, log *logrus.Logger, module *core.Module) *Fixtures {
	return &Fixtures{
		db:     db,
		log:    log,
		module: module,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateTestData seeds a season with five wrestlers per weight class and
// twenty matches per class. Matches go through the match service so every
// score column is computed exactly as it would be in production.
func (f *Fixtures) GenerateTestData() error {
	f.log.Info("Starting fixtures generation")

	season, err := f.createSeason()
	if err != nil {
		return fmt.Errorf("failed to create season: %w", err)
	}

	byClass := make(map[int][]*models.Wrestler)
	for _, weightClass := range models.WeightClasses {
		wrestlers, err := f.generateWrestlers(season.ID, weightClass)
		if err != nil {
			return fmt.Errorf("failed to generate wrestlers at %d: %w", weightClass, err)
		}
		byClass[weightClass] = wrestlers
	}

	for _, weightClass := range models.WeightClasses {
		if err := f.generateMatches(season, byClass[weightClass]); err != nil {
			return fmt.Errorf("failed to generate matches at %d: %w", weightClass, err)
		}
	}

	f.log.Info("Fixtures generation completed")
	return nil
}

func (f *Fixtures) createSeason() (*models.Season, error) {
	return f.module.SeasonService.CreateSeason(models.CreateSeasonRequest{
		Name:      fmt.Sprintf("Fixture Season %d", time.Now().Unix()),
		StartDate: "2025-11-01",
		EndDate:   "2026-03-15",
		Active:    true,
	})
}

func (f *Fixtures) generateWrestlers(seasonID uint, weightClass int) ([]*models.Wrestler, error) {
	schools := f.module.Schools.Schools()
	wrestlers := make([]*models.Wrestler, 0, 5)

	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("%s %s",
			firstNames[f.rng.Intn(len(firstNames))],
			lastNames[f.rng.Intn(len(lastNames))])
		school := schools[f.rng.Intn(len(schools))]

		wrestler, _, err := f.module.WrestlerService.FindOrCreateWrestler(name, school, weightClass, seasonID)
		if err != nil {
			return nil, err
		}
		wrestlers = append(wrestlers, wrestler)
	}

	return wrestlers, nil
}

func (f *Fixtures) generateMatches(season *models.Season, wrestlers []*models.Wrestler) error {
	for i := 0; i < 20; i++ {
		a := f.rng.Intn(len(wrestlers))
		b := f.rng.Intn(len(wrestlers))
		if a == b {
			b = (b + 1) % len(wrestlers)
		}

		wrestler1 := wrestlers[a]
		wrestler2 := wrestlers[b]

		winnerID := wrestler1.ID
		if f.rng.Intn(2) == 1 {
			winnerID = wrestler2.ID
		}

		date := season.StartDate.AddDate(0, 0, f.rng.Intn(100))

		_, err := f.module.MatchService.CreateMatch(models.CreateMatchRequest{
			SeasonID:    season.ID,
			Date:        date.Format("2006-01-02"),
			Wrestler1ID: wrestler1.ID,
			Wrestler2ID: wrestler2.ID,
			WinnerID:    winnerID,
			WinMethod:   fixtureWinMethods[f.rng.Intn(len(fixtureWinMethods))],
		})
		if err != nil {
			return err
		}
	}

	return nil
}
