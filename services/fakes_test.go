package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"PRESENSI/helper"
	"PRESENSI/models"
	"PRESENSI/repository"
)

// -------- test fakes --------

type fakeInterns struct {
	byID   map[int64]*models.Intern
	nextID int64
	err    error
}

func newFakeInterns() *fakeInterns {
	return &fakeInterns{byID: make(map[int64]*models.Intern)}
}

func (f *fakeInterns) add(name, instansi, kategori string) *models.Intern {
	f.nextID++
	i := &models.Intern{Id: f.nextID, Name: name, Instansi: instansi, Kategori: kategori}
	f.byID[i.Id] = i
	return i
}

func (f *fakeInterns) Upsert(ctx context.Context, name, instansi, kategori string) (*models.Intern, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, i := range f.byID {
		if i.Name == name {
			if instansi != "" {
				i.Instansi = instansi
			}
			if kategori != "" {
				i.Kategori = kategori
			}
			return i, nil
		}
	}
	if instansi == "" {
		instansi = models.DefaultInstansi
	}
	if kategori == "" {
		kategori = models.DefaultKategori
	}
	return f.add(name, instansi, kategori), nil
}

func (f *fakeInterns) GetByID(ctx context.Context, id int64) (*models.Intern, error) {
	if i, ok := f.byID[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInterns) DeleteByName(ctx context.Context, name string) (int64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	for id, i := range f.byID {
		if i.Name == name {
			delete(f.byID, id)
			return 2, true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeInterns) ListFaces(ctx context.Context) ([]repository.FaceCount, error) {
	return nil, f.err
}

type fakeEmbeddings struct {
	records []models.InternEmbedding
	listErr error
}

func (f *fakeEmbeddings) add(internID int64, path string, vec ...float32) {
	f.records = append(f.records, models.InternEmbedding{
		Id:        int64(len(f.records) + 1),
		InternId:  internID,
		ImagePath: path,
		Embedding: pgvectorOf(vec),
	})
}

func (f *fakeEmbeddings) Add(ctx context.Context, e *models.InternEmbedding) error {
	e.Id = int64(len(f.records) + 1)
	f.records = append(f.records, *e)
	return nil
}

func (f *fakeEmbeddings) ListByIntern(ctx context.Context, internID int64) ([]models.InternEmbedding, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.InternEmbedding
	for _, r := range f.records {
		if r.InternId == internID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeEmbeddings) ExistsByPath(ctx context.Context, internID int64, path string) (bool, error) {
	for _, r := range f.records {
		if r.InternId == internID && r.ImagePath == path {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmbeddings) InternIDs(ctx context.Context) ([]int64, error) {
	seen := map[int64]bool{}
	var ids []int64
	for _, r := range f.records {
		if !seen[r.InternId] {
			seen[r.InternId] = true
			ids = append(ids, r.InternId)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeCentroids struct {
	interns *fakeInterns
	vectors map[int64][]float32
	writes  int
	// alternate reverses the List order on every other call.
	alternate bool
	lists     int
}

func newFakeCentroids(interns *fakeInterns) *fakeCentroids {
	return &fakeCentroids{interns: interns, vectors: make(map[int64][]float32)}
}

func (f *fakeCentroids) Upsert(ctx context.Context, internID int64, vector []float32) error {
	f.writes++
	f.vectors[internID] = vector
	return nil
}

func (f *fakeCentroids) List(ctx context.Context) ([]models.InternCentroid, error) {
	ids := make([]int64, 0, len(f.vectors))
	for id := range f.vectors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	f.lists++
	if f.alternate && f.lists%2 == 0 {
		sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	}

	out := make([]models.InternCentroid, 0, len(ids))
	for _, id := range ids {
		c := models.InternCentroid{InternId: id, Embedding: pgvectorOf(f.vectors[id])}
		if f.interns != nil {
			c.Intern = f.interns.byID[id]
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCentroids) Count(ctx context.Context) (int64, error) {
	return int64(len(f.vectors)), nil
}

type fakeLedger struct {
	clock   *helper.Clock
	entries []models.AttendanceLog
	err     error
	ctxErrs []error
}

func (f *fakeLedger) LatestToday(ctx context.Context, name string) (*models.AttendanceLog, error) {
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if f.err != nil {
		return nil, f.err
	}
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].InternName == name {
			e := f.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) Append(ctx context.Context, entry *models.AttendanceLog, at time.Time) error {
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if f.err != nil {
		return f.err
	}
	entry.LogId = int64(len(f.entries) + 1)
	entry.AbsentAt = at.In(f.clock.Location())
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLedger) ResetToday(ctx context.Context) (int64, error) {
	n := int64(len(f.entries))
	f.entries = nil
	return n, f.err
}

func (f *fakeLedger) LatestPerInternToday(ctx context.Context) ([]models.AttendanceLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := map[string]bool{}
	var out []models.AttendanceLog
	for i := len(f.entries) - 1; i >= 0; i-- {
		if !seen[f.entries[i].InternName] {
			seen[f.entries[i].InternName] = true
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

type fakeExtractor struct {
	embeddings [][]float32
	err        error
	calls      int
	// cancel, when set, is called before returning to simulate a client
	// that goes away right after extraction.
	cancel context.CancelFunc
}

func (f *fakeExtractor) Extract(ctx context.Context, image []byte) ([][]float32, error) {
	f.calls++
	if f.cancel != nil {
		f.cancel()
	}
	return f.embeddings, f.err
}

type fakeMatcher struct {
	match *repository.CentroidMatch
	err   error
}

func (f *fakeMatcher) Nearest(ctx context.Context, probe []float32) (*repository.CentroidMatch, error) {
	return f.match, f.err
}

type fakeCaptures struct {
	url   string
	err   error
	saved int
}

func (f *fakeCaptures) SaveCapture(name string, direction models.Direction, at time.Time, image []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved++
	return f.url, nil
}
