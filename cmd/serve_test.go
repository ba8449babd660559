package cmd

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"PRESENSI/config"
	"PRESENSI/models"
)

func TestServe_ReturnsMigrationError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS vector").WillReturnError(assert.AnError)

	a := &app{
		cfg: &config.Config{
			DB:          config.DBConfig{Driver: models.DriverPostgres},
			Recognition: config.RecognitionConfig{EmbeddingDim: 3},
		},
		log: zerolog.Nop(),
		db:  db,
	}

	err = serve(context.Background(), a)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
