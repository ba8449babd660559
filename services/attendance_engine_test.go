package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PRESENSI/helper"
	"PRESENSI/models"
	"PRESENSI/repository"
	"PRESENSI/schedule"
)

type engineFixture struct {
	extractor *fakeExtractor
	matcher   *fakeMatcher
	ledger    *fakeLedger
	captures  *fakeCaptures
	clock     *helper.Clock
	engine    *AttendanceEngine
}

func newEngineFixture(t *testing.T, clock *helper.Clock) *engineFixture {
	t.Helper()
	f := &engineFixture{
		extractor: &fakeExtractor{embeddings: [][]float32{{1, 0}}},
		matcher: &fakeMatcher{match: &repository.CentroidMatch{
			InternId: 7, Name: "Said", Instansi: "UMS", Kategori: "Staff", Distance: 0.2,
		}},
		ledger:   &fakeLedger{clock: clock},
		captures: &fakeCaptures{url: "/images/capture.jpg"},
		clock:    clock,
	}
	f.engine = NewAttendanceEngine(f.extractor, f.matcher, f.ledger, f.captures, defaultPolicy(t), clock, 0.5, zerolog.Nop())
	return f
}

func recognize(t *testing.T, f *engineFixture, direction string) *Decision {
	t.Helper()
	d, err := f.engine.Recognize(context.Background(), RecognizeInput{Image: []byte("jpeg"), Direction: direction})
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

func TestAttendanceEngine_InvalidDirection(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 8, 0, 0))

	_, err := f.engine.Recognize(context.Background(), RecognizeInput{Image: []byte("jpeg"), Direction: "MASUK"})
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Zero(t, f.extractor.calls)
}

func TestAttendanceEngine_NoFace(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 8, 0, 0))
	f.extractor.embeddings = nil

	d := recognize(t, f, "IN")
	assert.Equal(t, OutcomeNoFace, d.Status)
	assert.Empty(t, d.Name)
	assert.Empty(t, f.ledger.entries)
}

func TestAttendanceEngine_ExtractorErrorIsNoFace(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 8, 0, 0))
	f.extractor.embeddings = nil
	f.extractor.err = errors.New("model offline")

	d := recognize(t, f, "IN")
	assert.Equal(t, OutcomeNoFace, d.Status)
}

func TestAttendanceEngine_SystemEmpty(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 8, 0, 0))
	f.matcher.match = nil

	d := recognize(t, f, "IN")
	assert.Equal(t, OutcomeSystemEmpty, d.Status)
	assert.Empty(t, f.ledger.entries)
}

func TestAttendanceEngine_Threshold(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     Outcome
	}{
		{name: "below", distance: 0.49, want: OutcomeSuccess},
		{name: "equal is accepted", distance: 0.5, want: OutcomeSuccess},
		{name: "above", distance: 0.51, want: OutcomeUnrecognized},
		{name: "no direction", distance: 2.0, want: OutcomeUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t, clockAt(t, 8, 0, 0))
			f.matcher.match.Distance = tt.distance

			d := recognize(t, f, "IN")
			assert.Equal(t, tt.want, d.Status)
			if tt.want == OutcomeUnrecognized {
				assert.Empty(t, d.Name)
				assert.Nil(t, d.Distance)
				assert.Empty(t, f.ledger.entries)
			}
		})
	}
}

func TestAttendanceEngine_SuccessWritesLog(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 8, 29, 59))

	d := recognize(t, f, "in")
	assert.Equal(t, OutcomeSuccess, d.Status)
	assert.Equal(t, "Said", d.Name)
	assert.Equal(t, models.DirectionIn, d.Type)
	assert.Equal(t, schedule.StatusOnTime, d.Classification)
	assert.Equal(t, "Tepat Waktu", d.AttendanceStatus)
	assert.Equal(t, "08:29:59", d.LogTime)
	assert.Equal(t, "/images/capture.jpg", d.ImageURL)
	assert.Equal(t, "Selamat datang, Said. Absensi masuk berhasil dicatat.", d.Message)
	require.NotNil(t, d.Distance)
	assert.InDelta(t, 0.2, *d.Distance, 1e-9)

	require.Len(t, f.ledger.entries, 1)
	entry := f.ledger.entries[0]
	assert.Equal(t, "Said", entry.InternName)
	assert.Equal(t, "Staff", entry.Kategori)
	assert.Equal(t, models.DirectionIn, entry.Type)
	require.NotNil(t, entry.InternId)
	assert.Equal(t, int64(7), *entry.InternId)
}

func TestAttendanceEngine_LateArrival(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 8, 30, 1))

	d := recognize(t, f, "IN")
	assert.Equal(t, schedule.StatusLate, d.Classification)
	assert.Equal(t, "Maaf, Said. Absensi masuk Anda dicatat sebagai Terlambat.", d.Message)
}

func TestAttendanceEngine_EarlyLeave(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 17, 29, 59))

	d := recognize(t, f, "OUT")
	assert.Equal(t, schedule.StatusEarlyLeave, d.Classification)
	assert.Equal(t, "Pulang Cepat", d.AttendanceStatus)
}

func TestAttendanceEngine_DuplicateSameDirection(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 8, 10, 0))
	prior := time.Date(2025, 10, 16, 8, 0, 5, 0, f.clock.Location())
	f.ledger.entries = []models.AttendanceLog{{LogId: 1, InternName: "Said", Type: models.DirectionIn, AbsentAt: prior}}

	d := recognize(t, f, "IN")
	assert.Equal(t, OutcomeDuplicate, d.Status)
	assert.Equal(t, "08:00:05", d.LogTime)
	assert.Equal(t, "Said, Anda sudah Absen Masuk hari ini.", d.Message)
	assert.True(t, d.At.Equal(prior))
	assert.Len(t, f.ledger.entries, 1)
	assert.Zero(t, f.captures.saved)
}

func TestAttendanceEngine_OppositeDirectionIsAllowed(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 17, 45, 0))
	f.ledger.entries = []models.AttendanceLog{{LogId: 1, InternName: "Said", Type: models.DirectionIn}}

	d := recognize(t, f, "OUT")
	assert.Equal(t, OutcomeSuccess, d.Status)
	assert.Equal(t, schedule.StatusOnTime, d.Classification)
	assert.Len(t, f.ledger.entries, 2)
}

func TestAttendanceEngine_CaptureFailureStillLogs(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 8, 0, 0))
	f.captures.err = errors.New("disk full")

	d := recognize(t, f, "IN")
	assert.Equal(t, OutcomeSuccess, d.Status)
	assert.Empty(t, d.ImageURL)
	require.Len(t, f.ledger.entries, 1)
	assert.Empty(t, f.ledger.entries[0].ImageURL)
}

func TestAttendanceEngine_StoreErrorIsReturned(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 8, 0, 0))
	f.ledger.err = errors.New("connection reset")

	_, err := f.engine.Recognize(context.Background(), RecognizeInput{Image: []byte("jpeg"), Direction: "IN"})
	assert.Error(t, err)
}

func TestAttendanceEngine_RunsToCompletionAfterExtraction(t *testing.T) {
	f := newEngineFixture(t, clockAt(t, 8, 0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.extractor.cancel = cancel

	d, err := f.engine.Recognize(ctx, RecognizeInput{Image: []byte("jpeg"), Direction: "IN"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, d.Status)
	for _, ctxErr := range f.ledger.ctxErrs {
		assert.NoError(t, ctxErr)
	}
}
