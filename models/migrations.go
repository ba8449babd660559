package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

func mysqlStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS interns (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(191) NOT NULL,
			instansi VARCHAR(191),
			kategori VARCHAR(100),
			UNIQUE KEY uq_interns_name (name)
		)`,
		`CREATE TABLE IF NOT EXISTS intern_embeddings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			intern_id BIGINT NOT NULL,
			image_path VARCHAR(512) NOT NULL,
			embedding LONGTEXT NOT NULL,
			created_at DATETIME(3),
			INDEX idx_intern_embeddings_intern_id (intern_id),
			CONSTRAINT fk_intern_embeddings_intern FOREIGN KEY (intern_id) REFERENCES interns(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS intern_centroids (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			intern_id BIGINT NOT NULL,
			embedding LONGTEXT NOT NULL,
			updated_at DATETIME(3),
			UNIQUE KEY uq_intern_centroids_intern_id (intern_id),
			CONSTRAINT fk_intern_centroids_intern FOREIGN KEY (intern_id) REFERENCES interns(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS attendance_logs (
			log_id BIGINT AUTO_INCREMENT PRIMARY KEY,
			intern_id BIGINT NULL,
			intern_name VARCHAR(191) NOT NULL,
			instansi VARCHAR(191),
			kategori VARCHAR(100),
			image_url VARCHAR(512),
			absent_at DATETIME(6) NOT NULL,
			type VARCHAR(3) NOT NULL DEFAULT 'IN',
			INDEX idx_attendance_logs_absent_at (absent_at),
			INDEX idx_attendance_logs_name_absent_at (intern_name, absent_at),
			CONSTRAINT fk_attendance_logs_intern FOREIGN KEY (intern_id) REFERENCES interns(id) ON DELETE SET NULL
		)`,
	}
}

func postgresStatements(dim int) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS interns (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			instansi TEXT,
			kategori TEXT
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS intern_embeddings (
			id BIGSERIAL PRIMARY KEY,
			intern_id BIGINT NOT NULL REFERENCES interns(id) ON DELETE CASCADE,
			image_path TEXT NOT NULL,
			embedding VECTOR(%d) NOT NULL,
			created_at TIMESTAMP WITHOUT TIME ZONE
		)`, dim),
		`CREATE INDEX IF NOT EXISTS idx_intern_embeddings_intern_id ON intern_embeddings (intern_id)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS intern_centroids (
			id BIGSERIAL PRIMARY KEY,
			intern_id BIGINT NOT NULL UNIQUE REFERENCES interns(id) ON DELETE CASCADE,
			embedding VECTOR(%d) NOT NULL,
			updated_at TIMESTAMP WITHOUT TIME ZONE
		)`, dim),
		`CREATE TABLE IF NOT EXISTS attendance_logs (
			log_id BIGSERIAL PRIMARY KEY,
			intern_id BIGINT NULL REFERENCES interns(id) ON DELETE SET NULL,
			intern_name TEXT NOT NULL,
			instansi TEXT,
			kategori TEXT,
			image_url TEXT,
			absent_at TIMESTAMP WITHOUT TIME ZONE NOT NULL,
			type TEXT NOT NULL DEFAULT 'IN'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_logs_absent_at ON attendance_logs (absent_at)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_logs_name_absent_at ON attendance_logs (intern_name, absent_at)`,
	}
}

// Migrate creates the schema if it does not exist yet. dim is the embedding
// dimension and only matters for the pgvector column type.
func Migrate(ctx context.Context, db *gorm.DB, driver string, dim int) error {
	var statements []string
	switch driver {
	case DriverMySQL:
		statements = mysqlStatements()
	case DriverPostgres:
		statements = postgresStatements(dim)
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	for i, stmt := range statements {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
