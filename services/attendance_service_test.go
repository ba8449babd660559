package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PRESENSI/models"
	"PRESENSI/schedule"
)

func TestAttendanceService_Today(t *testing.T) {
	clock := clockAt(t, 16, 0, 0)
	loc := clock.Location()
	ledger := &fakeLedger{clock: clock, entries: []models.AttendanceLog{
		{InternName: "Said", Kategori: "Staff", Type: models.DirectionIn, AbsentAt: time.Date(2025, 10, 16, 8, 45, 0, 0, loc)},
		{InternName: "Nani", Kategori: "Mahasiswa_Internship", Type: models.DirectionOut, AbsentAt: time.Date(2025, 10, 16, 15, 0, 0, 0, loc), ImageURL: "/images/n.jpg"},
	}}
	svc := NewAttendanceService(ledger, defaultPolicy(t), clock, zerolog.Nop())

	entries, err := svc.Today(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Nani", entries[0].Name)
	assert.Equal(t, "PULANG (Tepat Waktu)", entries[0].Status)
	assert.Equal(t, "15:00:00", entries[0].Timestamp)
	assert.Equal(t, "/images/n.jpg", entries[0].ImagePath)

	assert.Equal(t, "Said", entries[1].Name)
	assert.Equal(t, schedule.StatusLate, entries[1].Classification)
	assert.Equal(t, "MASUK (Terlambat)", entries[1].Status)
}

func TestAttendanceService_ResetToday(t *testing.T) {
	clock := clockAt(t, 16, 0, 0)
	ledger := &fakeLedger{clock: clock, entries: []models.AttendanceLog{{InternName: "Said"}, {InternName: "Nani"}}}
	svc := NewAttendanceService(ledger, defaultPolicy(t), clock, zerolog.Nop())

	deleted, err := svc.ResetToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = svc.ResetToday(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
