package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kbrat32c1/wrestling-rankings-app/config"
	"github.com/kbrat32c1/wrestling-rankings-app/migrations"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	migrator := migrations.NewMigrator(config.DB, logger)

	for _, migration := range migrations.GetCoreMigrations() {
		migrator.AddMigration(migration)
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			logger.WithError(err).Fatal("Migration failed")
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			if s, err := strconv.Atoi(os.Args[2]); err == nil {
				steps = s
			}
		}
		if err := migrator.Rollback(steps); err != nil {
			logger.WithError(err).Fatal("Rollback failed")
		}
	case "status":
		showStatus(migrator)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func showStatus(migrator *migrations.Migrator) {
	applied := migrator.AppliedMigrations()

	if len(applied) == 0 {
		fmt.Println("No migrations have been applied")
		return
	}

	fmt.Println("Applied migrations:")
	for _, migration := range applied {
		fmt.Printf("  [batch %d] %s (%s)\n", migration.Batch, migration.Name,
			migration.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printUsage() {
	fmt.Println("Usage: migrate <command>")
	fmt.Println("Commands:")
	fmt.Println("  migrate         Apply all pending migrations")
	fmt.Println("  rollback [n]    Roll back the last n batches (default: 1)")
	fmt.Println("  status          Show applied migrations")
}
