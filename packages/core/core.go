package core

import (
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/cron"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/handlers"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/lookup"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Module struct {
	WrestlerHandler    *handlers.WrestlerHandler
	WrestlerService    *services.WrestlerService
	MatchHandler       *handlers.MatchHandler
	MatchService       *services.MatchService
	LeaderboardHandler *handlers.LeaderboardHandler
	LeaderboardService *services.LeaderboardService
	SeasonHandler      *handlers.SeasonHandler
	SeasonService      *services.SeasonService
	ImportHandler      *handlers.ImportHandler
	ImportService      *services.ImportService
	ExportHandler      *handlers.ExportHandler
	ExportService      *services.ExportService
	StatsHandler       *handlers.StatsHandler
	StatsService       *services.StatsService
	EloService         *services.EloService
	RPIService         *services.RPIService
	HybridService      *services.HybridService
	DominanceService   *services.DominanceService
	GlickoService      *services.GlickoService
	Recalculator       *services.Recalculator
	Schools            *lookup.Directory
	Scheduler          *cron.Scheduler
	db                 *gorm.DB
}

func NewModule(db *gorm.DB, logger *logrus.Logger) *Module {
	schools := lookup.NewDirectory()

	eloService := services.NewEloService(db, logger)
	rpiService := services.NewRPIService(db, logger)
	hybridService := services.NewHybridService(db, logger)
	dominanceService := services.NewDominanceService(db, logger)
	recalculator := services.NewRecalculator(db, logger, eloService, rpiService, hybridService, dominanceService)

	wrestlerService := services.NewWrestlerService(db, logger, schools, recalculator)
	wrestlerHandler := handlers.NewWrestlerHandler(wrestlerService, eloService, rpiService)

	matchService := services.NewMatchService(db, logger, recalculator)
	matchHandler := handlers.NewMatchHandler(matchService)

	leaderboardService := services.NewLeaderboardService(db, logger, schools)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	seasonService := services.NewSeasonService(db, logger)
	seasonHandler := handlers.NewSeasonHandler(seasonService)

	importService := services.NewImportService(db, logger, wrestlerService, recalculator)
	importHandler := handlers.NewImportHandler(importService)

	exportService := services.NewExportService(db, logger, leaderboardService)
	exportHandler := handlers.NewExportHandler(exportService)

	statsService := services.NewStatsService(db, logger)
	statsHandler := handlers.NewStatsHandler(statsService)

	glickoService := services.NewGlickoService(db, logger)
	scheduler := cron.NewScheduler(db, logger, seasonService, rpiService, hybridService, glickoService)

	return &Module{
		WrestlerHandler:    wrestlerHandler,
		WrestlerService:    wrestlerService,
		MatchHandler:       matchHandler,
		MatchService:       matchService,
		LeaderboardHandler: leaderboardHandler,
		LeaderboardService: leaderboardService,
		SeasonHandler:      seasonHandler,
		SeasonService:      seasonService,
		ImportHandler:      importHandler,
		ImportService:      importService,
		ExportHandler:      exportHandler,
		ExportService:      exportService,
		StatsHandler:       statsHandler,
		StatsService:       statsService,
		EloService:         eloService,
		RPIService:         rpiService,
		HybridService:      hybridService,
		DominanceService:   dominanceService,
		GlickoService:      glickoService,
		Recalculator:       recalculator,
		Schools:            schools,
		Scheduler:          scheduler,
		db:                 db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	wrestlers := r.Group("/wrestlers")
	{
		wrestlers.GET("", m.WrestlerHandler.GetWrestlers)
		wrestlers.POST("", m.WrestlerHandler.CreateWrestler)
		wrestlers.DELETE("", m.WrestlerHandler.BulkDeleteWrestlers)
		wrestlers.GET("/:id", m.WrestlerHandler.GetWrestler)
		wrestlers.PATCH("/:id", m.WrestlerHandler.UpdateWrestler)
		wrestlers.DELETE("/:id", m.WrestlerHandler.DeleteWrestler)
		wrestlers.GET("/:id/matches", m.WrestlerHandler.GetWrestlerMatches)
		wrestlers.GET("/:id/rating-history", m.WrestlerHandler.GetRatingHistory)
		wrestlers.GET("/:id/rpi", m.WrestlerHandler.GetRPIBreakdown)
		wrestlers.GET("/rating-changes", m.WrestlerHandler.GetRecentRatingChanges)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/recent", m.MatchHandler.GetRecentMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.POST("", m.MatchHandler.CreateMatch)
		matches.PATCH("/:id", m.MatchHandler.UpdateMatch)
		matches.DELETE("/:id", m.MatchHandler.DeleteMatch)
	}

	leaderboard := r.Group("/leaderboard")
	{
		leaderboard.GET("", m.LeaderboardHandler.GetLeaderboard)
		leaderboard.GET("/rank/:id", m.LeaderboardHandler.GetRank)
		leaderboard.GET("/leaders", m.LeaderboardHandler.GetStatLeaders)
	}

	seasons := r.Group("/seasons")
	{
		seasons.GET("", m.SeasonHandler.GetSeasons)
		seasons.GET("/active", m.SeasonHandler.GetActiveSeason)
		seasons.POST("", m.SeasonHandler.CreateSeason)
		seasons.POST("/:id/carry-forward", m.SeasonHandler.CarryForward)
	}

	imports := r.Group("/import")
	{
		imports.POST("/matches", m.ImportHandler.ImportMatches)
		imports.DELETE("/batches/:id", m.ImportHandler.RevertImportBatch)
	}

	exports := r.Group("/export")
	{
		exports.GET("/rankings", m.ExportHandler.ExportRankings)
		exports.GET("/wrestlers", m.ExportHandler.ExportWrestlers)
		exports.GET("/matches", m.ExportHandler.ExportMatches)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
}

// StartScheduler starts the cron scheduler for background score maintenance.
func (m *Module) StartScheduler() error {
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler.
func (m *Module) StopScheduler() {
	m.Scheduler.Stop()
}
