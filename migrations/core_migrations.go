package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_09_01_000000_create_core_tables",
			Up: func(db *gorm.DB) error {
				// Create seasons table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS seasons (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(100) NOT NULL UNIQUE,
						start_date TIMESTAMP NOT NULL,
						end_date TIMESTAMP NOT NULL,
						active BOOLEAN DEFAULT FALSE,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_seasons_deleted_at ON seasons(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_seasons_active ON seasons(active);
				`).Error; err != nil {
					return err
				}

				// Create wrestlers table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS wrestlers (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						school VARCHAR(255) NOT NULL,
						weight_class INT NOT NULL,
						season_id BIGINT NOT NULL,
						wins INT DEFAULT 0,
						losses INT DEFAULT 0,
						elo_rating FLOAT DEFAULT 1500,
						season_start_elo FLOAT NULL,
						rpi FLOAT DEFAULT 0,
						hybrid_score FLOAT DEFAULT 0,
						dominance_score FLOAT DEFAULT 0,
						falls INT DEFAULT 0,
						tech_falls INT DEFAULT 0,
						major_decisions INT DEFAULT 0,
						glicko_rating FLOAT DEFAULT 1500,
						glicko_rd FLOAT DEFAULT 350,
						glicko_vol FLOAT DEFAULT 0.06,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (season_id) REFERENCES seasons(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_wrestlers_deleted_at ON wrestlers(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_wrestlers_season_id ON wrestlers(season_id);
					CREATE INDEX IF NOT EXISTS idx_wrestlers_weight_class ON wrestlers(weight_class);
					CREATE INDEX IF NOT EXISTS idx_wrestlers_elo_rating ON wrestlers(elo_rating);
					CREATE INDEX IF NOT EXISTS idx_wrestlers_hybrid_score ON wrestlers(hybrid_score);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_wrestlers_identity
						ON wrestlers(LOWER(name), LOWER(school), weight_class, season_id)
						WHERE deleted_at IS NULL;
				`).Error; err != nil {
					return err
				}

				// Create matches table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						season_id BIGINT NOT NULL,
						date TIMESTAMP NOT NULL,
						wrestler1_id BIGINT NOT NULL,
						wrestler2_id BIGINT NOT NULL,
						winner_id BIGINT NOT NULL,
						win_method VARCHAR(30) NOT NULL,
						wrestler1_score INT DEFAULT 0,
						wrestler2_score INT DEFAULT 0,
						elapsed_time VARCHAR(10),
						import_batch_id VARCHAR(36) NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (season_id) REFERENCES seasons(id) ON DELETE CASCADE,
						FOREIGN KEY (wrestler1_id) REFERENCES wrestlers(id) ON DELETE CASCADE,
						FOREIGN KEY (wrestler2_id) REFERENCES wrestlers(id) ON DELETE CASCADE,
						FOREIGN KEY (winner_id) REFERENCES wrestlers(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_matches_season_id ON matches(season_id);
					CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(date);
					CREATE INDEX IF NOT EXISTS idx_matches_wrestler1_id ON matches(wrestler1_id);
					CREATE INDEX IF NOT EXISTS idx_matches_wrestler2_id ON matches(wrestler2_id);
					CREATE INDEX IF NOT EXISTS idx_matches_winner_id ON matches(winner_id);
					CREATE INDEX IF NOT EXISTS idx_matches_import_batch_id ON matches(import_batch_id);
				`).Error; err != nil {
					return err
				}

				// Create rating_history table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS rating_history (
						id BIGSERIAL PRIMARY KEY,
						wrestler_id BIGINT NOT NULL,
						match_id BIGINT NULL,
						season_id BIGINT NOT NULL,
						elo_before FLOAT NOT NULL,
						elo_after FLOAT NOT NULL,
						elo_change FLOAT NOT NULL,
						opponent_id BIGINT NULL,
						match_date TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (wrestler_id) REFERENCES wrestlers(id) ON DELETE CASCADE,
						FOREIGN KEY (season_id) REFERENCES seasons(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_rating_history_deleted_at ON rating_history(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_rating_history_wrestler_id ON rating_history(wrestler_id);
					CREATE INDEX IF NOT EXISTS idx_rating_history_season_id ON rating_history(season_id);
					CREATE INDEX IF NOT EXISTS idx_rating_history_match_id ON rating_history(match_id);
				`).Error; err != nil {
					return err
				}

				return nil
			},
			Down: func(db *gorm.DB) error {
				// Drop tables in reverse order (because of foreign keys)
				if err := db.Exec("DROP TABLE IF EXISTS rating_history CASCADE").Error; err != nil {
					return err
				}
				if err := db.Exec("DROP TABLE IF EXISTS matches CASCADE").Error; err != nil {
					return err
				}
				if err := db.Exec("DROP TABLE IF EXISTS wrestlers CASCADE").Error; err != nil {
					return err
				}
				if err := db.Exec("DROP TABLE IF EXISTS seasons CASCADE").Error; err != nil {
					return err
				}
				return nil
			},
		},
	}
}
