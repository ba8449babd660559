package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"PRESENSI/helper"
)

// CentroidAggregator is the only writer of centroids. A centroid is the L2
// normalized mean of every embedding of its intern.
type CentroidAggregator struct {
	interns    InternStore
	embeddings EmbeddingStore
	centroids  CentroidStore
	log        zerolog.Logger
	onProgress func()
}

func NewCentroidAggregator(interns InternStore, embeddings EmbeddingStore, centroids CentroidStore, log zerolog.Logger) *CentroidAggregator {
	return &CentroidAggregator{
		interns:    interns,
		embeddings: embeddings,
		centroids:  centroids,
		log:        log,
	}
}

// WithProgress returns a copy that calls fn after each intern of a batch.
func (a *CentroidAggregator) WithProgress(fn func()) *CentroidAggregator {
	c := *a
	c.onProgress = fn
	return &c
}

// Recompute rebuilds the centroid of one intern. It reports false without
// writing anything when the intern has no embeddings.
func (a *CentroidAggregator) Recompute(ctx context.Context, internID int64) (bool, error) {
	records, err := a.embeddings.ListByIntern(ctx, internID)
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		return false, nil
	}

	if _, err := a.interns.GetByID(ctx, internID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("intern %d: %w", internID, ErrInconsistentIdentity)
		}
		return false, err
	}

	vectors := make([][]float64, 0, len(records))
	for _, r := range records {
		vectors = append(vectors, helper.ToFloat64(r.Embedding.Slice()))
	}

	mean, err := helper.Mean(vectors)
	if err != nil {
		if errors.Is(err, helper.ErrDimensionMismatch) {
			return false, fmt.Errorf("intern %d: %w", internID, ErrDimensionMismatch)
		}
		return false, fmt.Errorf("intern %d: %w", internID, err)
	}

	if err := a.centroids.Upsert(ctx, internID, helper.ToFloat32(helper.Normalize(mean))); err != nil {
		return false, err
	}

	a.log.Debug().Int64("intern_id", internID).Int("embeddings", len(records)).Msg("centroid updated")
	return true, nil
}

type RecomputeReport struct {
	Updated []int64
	Skipped []int64
	Failed  map[int64]error
}

func (r RecomputeReport) HasFailures() bool {
	return len(r.Failed) > 0
}

// RecomputeMany recomputes every id and keeps going when one fails.
func (a *CentroidAggregator) RecomputeMany(ctx context.Context, ids []int64) RecomputeReport {
	report := RecomputeReport{Failed: make(map[int64]error)}

	for _, id := range ids {
		updated, err := a.Recompute(ctx, id)
		switch {
		case err != nil:
			a.log.Error().Err(err).Int64("intern_id", id).Msg("gagal menghitung centroid")
			report.Failed[id] = err
		case updated:
			report.Updated = append(report.Updated, id)
		default:
			report.Skipped = append(report.Skipped, id)
		}
		if a.onProgress != nil {
			a.onProgress()
		}
	}

	return report
}

// RecomputeAll recomputes the centroid of every intern that owns embeddings.
func (a *CentroidAggregator) RecomputeAll(ctx context.Context) (RecomputeReport, error) {
	ids, err := a.embeddings.InternIDs(ctx)
	if err != nil {
		return RecomputeReport{}, err
	}
	return a.RecomputeMany(ctx, ids), nil
}

// InternIDs lists the interns RecomputeAll would visit.
func (a *CentroidAggregator) InternIDs(ctx context.Context) ([]int64, error) {
	return a.embeddings.InternIDs(ctx)
}
