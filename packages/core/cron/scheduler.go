package cron

import (
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/services"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Scheduler struct {
	cron          *cron.Cron
	db            *gorm.DB
	log           *logrus.Logger
	seasonService *services.SeasonService
	rpiService    *services.RPIService
	hybridService *services.HybridService
	glickoService *services.GlickoService
}

func NewScheduler(db *gorm.DB, logger *logrus.Logger, seasonService *services.SeasonService, rpiService *services.RPIService, hybridService *services.HybridService, glickoService *services.GlickoService) *Scheduler {
	// Create cron with seconds precision, logging through the app logger
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(logger)))

	return &Scheduler{
		cron:          c,
		db:            db,
		log:           logger,
		seasonService: seasonService,
		rpiService:    rpiService,
		hybridService: hybridService,
		glickoService: glickoService,
	}
}

// Start registers and starts all scheduled jobs.
func (s *Scheduler) Start() error {
	// Nightly RPI refresh at 03:00. RPI depends on opponents' records, so a
	// wrestler's value can drift without any of their own matches changing;
	// the nightly pass picks that up.
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.runRPIRefresh); err != nil {
		s.log.WithError(err).Error("Failed to schedule RPI refresh job")
		return err
	}

	// Weekly Glicko-2 rating period, Sunday 04:00.
	if _, err := s.cron.AddFunc("0 0 4 * * 0", s.runGlickoUpdate); err != nil {
		s.log.WithError(err).Error("Failed to schedule Glicko update job")
		return err
	}

	s.cron.Start()
	s.log.Info("Cron scheduler started")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("Cron scheduler stopped")
}

// runRPIRefresh recomputes RPI and hybrid for every wrestler in the active
// season.
func (s *Scheduler) runRPIRefresh() {
	season, err := s.seasonService.GetActiveSeason()
	if err != nil {
		s.log.WithError(err).Warn("RPI refresh skipped")
		return
	}

	var wrestlers []models.Wrestler
	if err := s.db.Where("season_id = ?", season.ID).Find(&wrestlers).Error; err != nil {
		s.log.WithError(err).Error("RPI refresh failed to load wrestlers")
		return
	}

	refreshed := 0
	for _, wrestler := range wrestlers {
		if _, err := s.rpiService.RecalculateRPI(wrestler.ID, season.ID); err != nil {
			s.log.WithError(err).WithField("wrestler_id", wrestler.ID).
				Error("RPI refresh failed for wrestler")
			continue
		}
		if err := s.hybridService.RecalculateHybrid(wrestler.ID, season.ID); err != nil {
			s.log.WithError(err).WithField("wrestler_id", wrestler.ID).
				Error("Hybrid refresh failed for wrestler")
			continue
		}
		refreshed++
	}

	s.log.WithFields(logrus.Fields{
		"season_id": season.ID,
		"refreshed": refreshed,
		"total":     len(wrestlers),
	}).Info("Nightly RPI refresh completed")
}

// runGlickoUpdate folds the past week's matches into the Glicko-2 ratings.
func (s *Scheduler) runGlickoUpdate() {
	season, err := s.seasonService.GetActiveSeason()
	if err != nil {
		s.log.WithError(err).Warn("Glicko update skipped")
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -7)

	updated, err := s.glickoService.WeeklyUpdate(season.ID, start, end)
	if err != nil {
		s.log.WithError(err).Error("Weekly Glicko update failed")
		return
	}

	s.log.WithFields(logrus.Fields{
		"season_id": season.ID,
		"updated":   updated,
	}).Info("Weekly Glicko update completed")
}

// RunRPIRefreshNow manually triggers the nightly refresh (useful for testing).
func (s *Scheduler) RunRPIRefreshNow() {
	s.runRPIRefresh()
}

// RunGlickoUpdateNow manually triggers the weekly rating period (useful for testing).
func (s *Scheduler) RunGlickoUpdateNow() {
	s.runGlickoUpdate()
}
