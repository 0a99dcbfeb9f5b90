package main

import (
	"github.com/kbrat32c1/wrestling-rankings-app/config"
	"github.com/kbrat32c1/wrestling-rankings-app/fixtures"
	"github.com/kbrat32c1/wrestling-rankings-app/packages/core"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	module := core.NewModule(config.DB, logger)

	f := fixtures.NewFixtures(config.DB, logger, module)
	if err := f.GenerateTestData(); err != nil {
		logger.WithError(err).Fatal("Fixtures generation failed")
	}
}
