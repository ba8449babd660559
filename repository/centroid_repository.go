package repository

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"PRESENSI/models"
)

type CentroidRepository struct {
	db *gorm.DB
}

func NewCentroidRepository(db *gorm.DB) *CentroidRepository {
	return &CentroidRepository{db: db}
}

// Upsert writes the centroid of an intern, replacing any previous vector.
func (r *CentroidRepository) Upsert(ctx context.Context, internID int64, vector []float32) error {
	centroid := models.InternCentroid{
		InternId:  internID,
		Embedding: pgvector.NewVector(vector),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "intern_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "updated_at"}),
		}).
		Create(&centroid).Error
	if err != nil {
		return fmt.Errorf("upsert centroid for intern %d: %w", internID, err)
	}
	return nil
}

// List returns every centroid with its intern, ordered by intern id.
func (r *CentroidRepository) List(ctx context.Context) ([]models.InternCentroid, error) {
	var centroids []models.InternCentroid
	err := r.db.WithContext(ctx).
		Preload("Intern").
		Order("intern_id ASC").
		Find(&centroids).Error
	if err != nil {
		return nil, fmt.Errorf("list centroids: %w", err)
	}
	return centroids, nil
}

func (r *CentroidRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InternCentroid{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count centroids: %w", err)
	}
	return count, nil
}

// CentroidMatch is the intern closest to a probe embedding.
type CentroidMatch struct {
	InternId int64   `json:"intern_id"`
	Name     string  `json:"name"`
	Instansi string  `json:"instansi"`
	Kategori string  `json:"kategori"`
	Distance float64 `json:"distance"`
}

// Nearest runs the cosine distance search inside PostgreSQL with the
// pgvector <=> operator. It returns nil when no centroid exists.
func (r *CentroidRepository) Nearest(ctx context.Context, probe []float32) (*CentroidMatch, error) {
	var match CentroidMatch
	res := r.db.WithContext(ctx).
		Raw(`SELECT c.intern_id AS intern_id, i.name AS name, i.instansi AS instansi, i.kategori AS kategori,
				c.embedding <=> ?::vector AS distance
			FROM intern_centroids c
			JOIN interns i ON i.id = c.intern_id
			ORDER BY distance ASC, c.intern_id ASC
			LIMIT 1`, pgvector.NewVector(probe)).
		Scan(&match)
	if res.Error != nil {
		return nil, fmt.Errorf("nearest centroid: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &match, nil
}
