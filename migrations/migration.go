package migrations

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration records one applied schema change. Migrations run in batches so a
// rollback undoes everything the last migrate command applied.
type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

type Migrator struct {
	db         *gorm.DB
	log        *logrus.Logger
	migrations []MigrationDefinition
}

func NewMigrator(db *gorm.DB, log *logrus.Logger) *Migrator {
	db.AutoMigrate(&Migration{})
	return &Migrator{
		db:         db,
		log:        log,
		migrations: []MigrationDefinition{},
	}
}

func (m *Migrator) AddMigration(migration MigrationDefinition) {
	m.migrations = append(m.migrations, migration)
}

// Migrate applies every registered migration that has not run yet, each in its
// own transaction, all under one batch number.
func (m *Migrator) Migrate() error {
	batch := m.getNextBatch()
	applied := 0

	for _, migration := range m.migrations {
		if m.hasRun(migration.Name) {
			continue
		}

		m.log.WithField("migration", migration.Name).Info("Migrating")

		tx := m.db.Begin()

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}

		record := Migration{
			Name:  migration.Name,
			Batch: batch,
		}

		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", migration.Name, err)
		}

		applied++
	}

	m.log.WithFields(logrus.Fields{
		"applied": applied,
		"batch":   batch,
	}).Info("Migrations completed")

	return nil
}

// Rollback undoes the given number of batches, newest first, reversing each
// batch's migrations in reverse application order.
func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}

	batch := m.getLatestBatch()
	rolledBack := 0

	for i := 0; i < steps && batch > 0; i++ {
		var records []Migration
		m.db.Where("batch = ?", batch).Order("id DESC").Find(&records)

		for _, record := range records {
			migration := m.findMigration(record.Name)
			if migration == nil {
				return fmt.Errorf("migration definition not found: %s", record.Name)
			}

			if migration.Down == nil {
				return fmt.Errorf("rollback not defined for migration: %s", record.Name)
			}

			m.log.WithField("migration", record.Name).Info("Rolling back")

			tx := m.db.Begin()

			if err := migration.Down(tx); err != nil {
				tx.Rollback()
				return fmt.Errorf("rollback failed for %s: %w", record.Name, err)
			}

			if err := tx.Delete(&record).Error; err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to remove migration record %s: %w", record.Name, err)
			}

			if err := tx.Commit().Error; err != nil {
				return fmt.Errorf("failed to commit rollback of %s: %w", record.Name, err)
			}

			rolledBack++
		}

		batch--
	}

	m.log.WithField("rolled_back", rolledBack).Info("Rollback completed")
	return nil
}

// AppliedMigrations returns the recorded migrations, oldest first.
func (m *Migrator) AppliedMigrations() []Migration {
	var records []Migration
	m.db.Order("id ASC").Find(&records)
	return records
}

func (m *Migrator) hasRun(name string) bool {
	var count int64
	m.db.Model(&Migration{}).Where("name = ?", name).Count(&count)
	return count > 0
}

func (m *Migrator) getNextBatch() int {
	var record Migration
	m.db.Order("batch DESC").First(&record)
	return record.Batch + 1
}

func (m *Migrator) getLatestBatch() int {
	var record Migration
	m.db.Order("batch DESC").First(&record)
	return record.Batch
}

func (m *Migrator) findMigration(name string) *MigrationDefinition {
	for i := range m.migrations {
		if m.migrations[i].Name == name {
			return &m.migrations[i]
		}
	}
	return nil
}
