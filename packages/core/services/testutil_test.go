package services

import (
	"io"
	"testing"
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/lookup"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv bundles a fresh in-memory database with the full service graph.
type testEnv struct {
	db          *gorm.DB
	schools     *lookup.Directory
	elo         *EloService
	rpi         *RPIService
	hybrid      *HybridService
	dominance   *DominanceService
	recalc      *Recalculator
	wrestlers   *WrestlerService
	matches     *MatchService
	leaderboard *LeaderboardService
	seasons     *SeasonService
	imports     *ImportService
	glicko      *GlickoService
	stats       *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// An in-memory database exists per connection; keep the pool at one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Season{},
		&models.Wrestler{},
		&models.Match{},
		&models.RatingHistory{},
	))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	schools := lookup.NewDirectory()
	elo := NewEloService(db, logger)
	rpi := NewRPIService(db, logger)
	hybrid := NewHybridService(db, logger)
	dominance := NewDominanceService(db, logger)
	recalc := NewRecalculator(db, logger, elo, rpi, hybrid, dominance)
	wrestlers := NewWrestlerService(db, logger, schools, recalc)
	matches := NewMatchService(db, logger, recalc)
	leaderboard := NewLeaderboardService(db, logger, schools)
	seasons := NewSeasonService(db, logger)
	imports := NewImportService(db, logger, wrestlers, recalc)
	glicko := NewGlickoService(db, logger)
	stats := NewStatsService(db, logger)

	return &testEnv{
		db:          db,
		schools:     schools,
		elo:         elo,
		rpi:         rpi,
		hybrid:      hybrid,
		dominance:   dominance,
		recalc:      recalc,
		wrestlers:   wrestlers,
		matches:     matches,
		leaderboard: leaderboard,
		seasons:     seasons,
		imports:     imports,
		glicko:      glicko,
		stats:       stats,
	}
}

func (e *testEnv) createSeason(t *testing.T) *models.Season {
	t.Helper()

	season := &models.Season{
		Name:      "2025-2026",
		StartDate: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}
	require.NoError(t, e.db.Create(season).Error)
	return season
}

func (e *testEnv) createWrestler(t *testing.T, seasonID uint, name string, weightClass int) *models.Wrestler {
	t.Helper()

	wrestler := &models.Wrestler{
		Name:         name,
		School:       "Wartburg College",
		WeightClass:  weightClass,
		SeasonID:     seasonID,
		EloRating:    models.DefaultElo,
		GlickoRating: models.DefaultGlicko,
		GlickoRD:     models.DefaultGlickoRD,
		GlickoVol:    models.DefaultGlickoVol,
	}
	require.NoError(t, e.db.Create(wrestler).Error)
	return wrestler
}

func (e *testEnv) createMatch(t *testing.T, seasonID uint, date string, wrestler1, wrestler2, winner uint, winMethod string) *models.Match {
	t.Helper()

	match, err := e.matches.CreateMatch(models.CreateMatchRequest{
		SeasonID:    seasonID,
		Date:        date,
		Wrestler1ID: wrestler1,
		Wrestler2ID: wrestler2,
		WinnerID:    winner,
		WinMethod:   winMethod,
	})
	require.NoError(t, err)
	return match
}

func (e *testEnv) reload(t *testing.T, id uint) *models.Wrestler {
	t.Helper()

	var wrestler models.Wrestler
	require.NoError(t, e.db.First(&wrestler, id).Error)
	return &wrestler
}
