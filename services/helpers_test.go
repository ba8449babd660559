package services

import (
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/require"

	"PRESENSI/helper"
	"PRESENSI/schedule"
)

func pgvectorOf(v []float32) pgvector.Vector {
	return pgvector.NewVector(v)
}

func jakarta(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func clockAt(t *testing.T, hour, min, sec int) *helper.Clock {
	t.Helper()
	loc := jakarta(t)
	now := time.Date(2025, 10, 16, hour, min, sec, 0, loc)
	return helper.NewClockFunc(loc, func() time.Time { return now })
}

func defaultPolicy(t *testing.T) *schedule.Policy {
	t.Helper()
	p, err := schedule.NewPolicy(schedule.DefaultRules(), jakarta(t))
	require.NoError(t, err)
	return p
}
