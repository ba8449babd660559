package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"PRESENSI/config"
	"PRESENSI/extractor"
	"PRESENSI/helper"
	"PRESENSI/logger"
	"PRESENSI/models"
	"PRESENSI/repository"
	"PRESENSI/schedule"
	"PRESENSI/services"
)

// app holds every long-lived dependency of one process.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	db     *gorm.DB
	clock  *helper.Clock
	policy *schedule.Policy

	interns    *repository.InternRepository
	embeddings *repository.EmbeddingRepository
	centroids  *repository.CentroidRepository
	ledger     *repository.AttendanceRepository

	extractor  *extractor.Client
	photos     *services.PhotoStore
	aggregator *services.CentroidAggregator
	dataset    *services.DatasetService
	attendance *services.AttendanceService
	engine     *services.AttendanceEngine
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Environment)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	db, err := models.ConnectDatabase(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	policy, err := schedule.NewPolicy(schedule.DefaultRules(), loc)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:        cfg,
		log:        log,
		db:         db,
		clock:      helper.NewClock(loc),
		policy:     policy,
		interns:    repository.NewInternRepository(db),
		embeddings: repository.NewEmbeddingRepository(db),
		centroids:  repository.NewCentroidRepository(db),
	}
	a.ledger = repository.NewAttendanceRepository(db, a.clock)

	a.extractor = extractor.NewClient(cfg.Recognition.ExtractorURL, cfg.Recognition.EmbeddingDim, cfg.Recognition.ExtractorTimeout)
	a.photos = services.NewPhotoStore(cfg.Storage.FacesDir, cfg.Storage.CapturedImagesDir)
	a.aggregator = services.NewCentroidAggregator(a.interns, a.embeddings, a.centroids, log)
	a.dataset = services.NewDatasetService(a.interns, a.embeddings, a.centroids, a.aggregator, a.extractor, a.photos, log)
	a.attendance = services.NewAttendanceService(a.ledger, policy, a.clock, log)
	a.engine = services.NewAttendanceEngine(
		a.extractor,
		a.matcher(),
		a.ledger,
		a.photos,
		policy,
		a.clock,
		cfg.Recognition.DistanceThreshold,
		log,
	)

	return a, nil
}

// matcher pushes the search down to pgvector on PostgreSQL and scans in
// process everywhere else.
func (a *app) matcher() services.Matcher {
	if a.cfg.DB.Driver == models.DriverPostgres {
		return a.centroids
	}
	return services.NewLinearMatcher(a.centroids, a.log)
}

func (a *app) migrate(ctx context.Context) error {
	return models.Migrate(ctx, a.db, a.cfg.DB.Driver, a.cfg.Recognition.EmbeddingDim)
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
