package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"PRESENSI/models"
)

type InternRepository struct {
	db *gorm.DB
}

func NewInternRepository(db *gorm.DB) *InternRepository {
	return &InternRepository{db: db}
}

// Upsert creates the intern or, when the name exists, updates instansi and
// kategori while keeping the id. Blank fields leave the stored value alone;
// a new row gets models.DefaultInstansi and models.DefaultKategori for them.
func (r *InternRepository) Upsert(ctx context.Context, name, instansi, kategori string) (*models.Intern, error) {
	intern := models.Intern{Name: name, Instansi: instansi, Kategori: kategori}
	if intern.Instansi == "" {
		intern.Instansi = models.DefaultInstansi
	}
	if intern.Kategori == "" {
		intern.Kategori = models.DefaultKategori
	}

	var assign []string
	if instansi != "" {
		assign = append(assign, "instansi")
	}
	if kategori != "" {
		assign = append(assign, "kategori")
	}
	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "name"}}}
	if len(assign) == 0 {
		conflict.DoNothing = true
	} else {
		conflict.DoUpdates = clause.AssignmentColumns(assign)
	}

	if err := r.db.WithContext(ctx).Clauses(conflict).Create(&intern).Error; err != nil {
		return nil, fmt.Errorf("upsert intern %q: %w", name, err)
	}

	// MySQL does not report the id of a row updated by ON DUPLICATE KEY.
	return r.GetByName(ctx, name)
}

// GetByName returns gorm.ErrRecordNotFound when the intern does not exist.
func (r *InternRepository) GetByName(ctx context.Context, name string) (*models.Intern, error) {
	var intern models.Intern
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&intern).Error; err != nil {
		return nil, err
	}
	return &intern, nil
}

// GetByID returns gorm.ErrRecordNotFound when the intern does not exist.
func (r *InternRepository) GetByID(ctx context.Context, id int64) (*models.Intern, error) {
	var intern models.Intern
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&intern).Error; err != nil {
		return nil, err
	}
	return &intern, nil
}

// DeleteByName removes the intern with its centroid and embeddings.
// Attendance logs keep their snapshot and lose the intern reference.
// found is false when no intern has that name.
func (r *InternRepository) DeleteByName(ctx context.Context, name string) (deletedEmbeddings int64, found bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var intern models.Intern
		if err := tx.Where("name = ?", name).First(&intern).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := tx.Where("intern_id = ?", intern.Id).Delete(&models.InternCentroid{}).Error; err != nil {
			return fmt.Errorf("delete centroid: %w", err)
		}

		res := tx.Where("intern_id = ?", intern.Id).Delete(&models.InternEmbedding{})
		if res.Error != nil {
			return fmt.Errorf("delete embeddings: %w", res.Error)
		}
		deletedEmbeddings = res.RowsAffected

		if err := tx.Model(&models.AttendanceLog{}).
			Where("intern_id = ?", intern.Id).
			Update("intern_id", nil).Error; err != nil {
			return fmt.Errorf("detach attendance logs: %w", err)
		}

		if err := tx.Delete(&intern).Error; err != nil {
			return fmt.Errorf("delete intern: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("delete intern %q: %w", name, err)
	}
	return deletedEmbeddings, found, nil
}

type FaceCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ListFaces returns every intern that has embeddings with the number of images, by name.
func (r *InternRepository) ListFaces(ctx context.Context) ([]FaceCount, error) {
	var faces []FaceCount
	err := r.db.WithContext(ctx).
		Table("intern_embeddings AS e").
		Select("i.name AS name, COUNT(*) AS count").
		Joins("JOIN interns i ON i.id = e.intern_id").
		Group("i.name").
		Order("i.name ASC").
		Scan(&faces).Error
	if err != nil {
		return nil, fmt.Errorf("list faces: %w", err)
	}
	return faces, nil
}
