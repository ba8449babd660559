package services

import (
	"context"
	"time"

	"PRESENSI/models"
	"PRESENSI/repository"
)

// Extractor turns an image into one embedding per detected face.
type Extractor interface {
	Extract(ctx context.Context, image []byte) ([][]float32, error)
}

type InternStore interface {
	Upsert(ctx context.Context, name, instansi, kategori string) (*models.Intern, error)
	GetByID(ctx context.Context, id int64) (*models.Intern, error)
	DeleteByName(ctx context.Context, name string) (int64, bool, error)
	ListFaces(ctx context.Context) ([]repository.FaceCount, error)
}

type EmbeddingStore interface {
	Add(ctx context.Context, embedding *models.InternEmbedding) error
	ListByIntern(ctx context.Context, internID int64) ([]models.InternEmbedding, error)
	ExistsByPath(ctx context.Context, internID int64, imagePath string) (bool, error)
	InternIDs(ctx context.Context) ([]int64, error)
}

type CentroidStore interface {
	Upsert(ctx context.Context, internID int64, vector []float32) error
	List(ctx context.Context) ([]models.InternCentroid, error)
	Count(ctx context.Context) (int64, error)
}

type Ledger interface {
	LatestToday(ctx context.Context, internName string) (*models.AttendanceLog, error)
	Append(ctx context.Context, entry *models.AttendanceLog, at time.Time) error
	ResetToday(ctx context.Context) (int64, error)
	LatestPerInternToday(ctx context.Context) ([]models.AttendanceLog, error)
}

var (
	_ InternStore    = (*repository.InternRepository)(nil)
	_ EmbeddingStore = (*repository.EmbeddingRepository)(nil)
	_ CentroidStore  = (*repository.CentroidRepository)(nil)
	_ Ledger         = (*repository.AttendanceRepository)(nil)
	_ Matcher        = (*repository.CentroidRepository)(nil)
)
