package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"PRESENSI/models"
)

type EmbeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db: db}
}

func (r *EmbeddingRepository) Add(ctx context.Context, embedding *models.InternEmbedding) error {
	if err := r.db.WithContext(ctx).Create(embedding).Error; err != nil {
		return fmt.Errorf("add embedding for intern %d: %w", embedding.InternId, err)
	}
	return nil
}

func (r *EmbeddingRepository) ListByIntern(ctx context.Context, internID int64) ([]models.InternEmbedding, error) {
	var embeddings []models.InternEmbedding
	err := r.db.WithContext(ctx).
		Where("intern_id = ?", internID).
		Order("id ASC").
		Find(&embeddings).Error
	if err != nil {
		return nil, fmt.Errorf("list embeddings for intern %d: %w", internID, err)
	}
	return embeddings, nil
}

// ExistsByPath reports whether the image was already indexed for the intern.
func (r *EmbeddingRepository) ExistsByPath(ctx context.Context, internID int64, imagePath string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InternEmbedding{}).
		Where("intern_id = ? AND image_path = ?", internID, imagePath).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check indexed image: %w", err)
	}
	return count > 0, nil
}

// InternIDs lists every intern id referenced by at least one embedding.
func (r *EmbeddingRepository) InternIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.InternEmbedding{}).
		Distinct("intern_id").
		Order("intern_id ASC").
		Pluck("intern_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list embedded interns: %w", err)
	}
	return ids, nil
}
