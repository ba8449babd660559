package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"

	"PRESENSI/models"
	"PRESENSI/repository"
)

// DatasetService registers face images and keeps centroids in step with them.
type DatasetService struct {
	interns    InternStore
	embeddings EmbeddingStore
	centroids  CentroidStore
	aggregator *CentroidAggregator
	extractor  Extractor
	photos     *PhotoStore
	log        zerolog.Logger
}

func NewDatasetService(
	interns InternStore,
	embeddings EmbeddingStore,
	centroids CentroidStore,
	aggregator *CentroidAggregator,
	extractor Extractor,
	photos *PhotoStore,
	log zerolog.Logger,
) *DatasetService {
	return &DatasetService{
		interns:    interns,
		embeddings: embeddings,
		centroids:  centroids,
		aggregator: aggregator,
		extractor:  extractor,
		photos:     photos,
		log:        log,
	}
}

type UploadInput struct {
	Name     string
	Instansi string
	Kategori string
	Filename string
	Image    []byte
}

type UploadResult struct {
	InternId  int64
	Name      string
	ImagePath string
	// AlreadyIndexed is set when the path had an embedding before this upload.
	AlreadyIndexed bool
}

func (s *DatasetService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nama tidak boleh kosong", ErrInvalidInput)
	}
	if len(in.Image) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	if _, err := s.photos.DatasetPath(name, in.Filename); err != nil {
		return nil, err
	}

	intern, err := s.interns.Upsert(ctx, name, strings.TrimSpace(in.Instansi), strings.TrimSpace(in.Kategori))
	if err != nil {
		return nil, err
	}

	path, err := s.photos.SaveDatasetImage(name, in.Filename, in.Image)
	if err != nil {
		return nil, err
	}
	result := &UploadResult{InternId: intern.Id, Name: intern.Name, ImagePath: path}

	indexed, err := s.embeddings.ExistsByPath(ctx, intern.Id, path)
	if err != nil {
		return nil, err
	}
	if indexed {
		result.AlreadyIndexed = true
		return result, nil
	}

	embeddings, err := s.extractor.Extract(ctx, in.Image)
	if err != nil {
		return nil, fmt.Errorf("extract face: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, ErrNoFace
	}

	record := &models.InternEmbedding{
		InternId:  intern.Id,
		ImagePath: path,
		Embedding: pgvector.NewVector(embeddings[0]),
	}
	if err := s.embeddings.Add(ctx, record); err != nil {
		return nil, err
	}

	if _, err := s.aggregator.Recompute(ctx, intern.Id); err != nil {
		return nil, err
	}

	s.log.Info().Str("name", name).Str("path", path).Msg("file dataset tersimpan")
	return result, nil
}

type DeleteResult struct {
	DeletedEmbeddings int64
	FolderRemoved     bool
}

// Delete removes the intern from the store and its dataset folder from disk.
// ErrNotFound is returned when neither existed.
func (s *DatasetService) Delete(ctx context.Context, name string) (*DeleteResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: nama tidak boleh kosong", ErrInvalidInput)
	}

	deleted, found, err := s.interns.DeleteByName(ctx, name)
	if err != nil {
		return nil, err
	}

	removed, err := s.photos.RemoveDatasetFolder(name)
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("gagal menghapus folder file wajah")
	}

	if !found && !removed {
		return nil, fmt.Errorf("intern %q: %w", name, ErrNotFound)
	}
	return &DeleteResult{DeletedEmbeddings: deleted, FolderRemoved: removed}, nil
}

func (s *DatasetService) ListFaces(ctx context.Context) ([]repository.FaceCount, error) {
	faces, err := s.interns.ListFaces(ctx)
	if err != nil {
		return nil, err
	}
	if faces == nil {
		faces = []repository.FaceCount{}
	}
	return faces, nil
}

type ReindexResult struct {
	Report     RecomputeReport
	TotalFaces int64
}

// Reindex recomputes every centroid and counts the interns that can be matched.
func (s *DatasetService) Reindex(ctx context.Context) (*ReindexResult, error) {
	report, err := s.aggregator.RecomputeAll(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.centroids.Count(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("updated", len(report.Updated)).
		Int("failed", len(report.Failed)).
		Int64("total_faces", total).
		Msg("reload database wajah selesai")

	return &ReindexResult{Report: report, TotalFaces: total}, nil
}
