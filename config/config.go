package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the PostgreSQL connection and stores it in the
// package-level DB handle. DATABASE_URL wins when set; otherwise the DSN is
// assembled from the individual PG_* variables. Logging the outcome is left
// to the caller.
func ConnectDatabase() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := envOr("PG_HOST", "localhost")
		port := envOr("PG_PORT", "5432")
		user := envOr("PG_USER", "postgres")
		password := os.Getenv("PG_PASSWORD")
		dbname := envOr("PG_DATABASE", "wrestling")
		sslmode := envOr("PG_SSLMODE", "disable")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
