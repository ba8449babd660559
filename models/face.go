package models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// InternEmbedding is the embedding of one dataset image. Never updated.
type InternEmbedding struct {
	Id        int64           `gorm:"primaryKey" json:"id"`
	InternId  int64           `gorm:"column:intern_id;index" json:"intern_id"`
	ImagePath string          `gorm:"column:image_path" json:"image_path"`
	Embedding pgvector.Vector `gorm:"column:embedding" json:"-"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (InternEmbedding) TableName() string {
	return "intern_embeddings"
}

// InternCentroid is the normalized mean of an intern's embeddings, one row per intern.
type InternCentroid struct {
	Id        int64           `gorm:"primaryKey" json:"id"`
	InternId  int64           `gorm:"column:intern_id;uniqueIndex" json:"intern_id"`
	Embedding pgvector.Vector `gorm:"column:embedding" json:"-"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Intern    *Intern         `gorm:"foreignKey:InternId" json:"intern,omitempty"`
}

func (InternCentroid) TableName() string {
	return "intern_centroids"
}
