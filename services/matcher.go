package services

import (
	"context"

	"github.com/rs/zerolog"

	"PRESENSI/helper"
	"PRESENSI/repository"
)

// Matcher returns the centroid closest to probe by cosine distance, or nil
// when no centroid exists. Ties go to the lowest intern id.
type Matcher interface {
	Nearest(ctx context.Context, probe []float32) (*repository.CentroidMatch, error)
}

// LinearMatcher scans every centroid in process. It works on any dialect;
// on PostgreSQL the repository can run the same search with pgvector.
type LinearMatcher struct {
	centroids CentroidStore
	log       zerolog.Logger
}

func NewLinearMatcher(centroids CentroidStore, log zerolog.Logger) *LinearMatcher {
	return &LinearMatcher{centroids: centroids, log: log}
}

func (m *LinearMatcher) Nearest(ctx context.Context, probe []float32) (*repository.CentroidMatch, error) {
	centroids, err := m.centroids.List(ctx)
	if err != nil {
		return nil, err
	}

	p := helper.ToFloat64(probe)
	var best *repository.CentroidMatch
	for _, c := range centroids {
		if c.Intern == nil {
			continue
		}
		vec := c.Embedding.Slice()
		if len(vec) != len(p) {
			m.log.Warn().Int64("intern_id", c.InternId).Int("dim", len(vec)).Msg("centroid dimension differs from probe, skipped")
			continue
		}

		distance, err := helper.CosineDistance(p, helper.ToFloat64(vec))
		if err != nil {
			continue
		}
		if best == nil || distance < best.Distance || (distance == best.Distance && c.InternId < best.InternId) {
			best = &repository.CentroidMatch{
				InternId: c.InternId,
				Name:     c.Intern.Name,
				Instansi: c.Intern.Instansi,
				Kategori: c.Intern.Kategori,
				Distance: distance,
			}
		}
	}
	return best, nil
}
