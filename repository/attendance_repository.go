package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"PRESENSI/helper"
	"PRESENSI/models"
)

// AttendanceRepository is the attendance ledger. It is the only place where
// timestamps are converted to the zone-naive form stored in absent_at, and
// every log it returns carries AbsentAt in the clock's local zone.
type AttendanceRepository struct {
	db    *gorm.DB
	clock *helper.Clock
}

func NewAttendanceRepository(db *gorm.DB, clock *helper.Clock) *AttendanceRepository {
	return &AttendanceRepository{db: db, clock: clock}
}

// Append always inserts; duplicate rules belong to the caller.
func (r *AttendanceRepository) Append(ctx context.Context, entry *models.AttendanceLog, at time.Time) error {
	entry.AbsentAt = r.clock.Naive(at)
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append attendance log for %q: %w", entry.InternName, err)
	}
	entry.AbsentAt = r.clock.FromNaive(entry.AbsentAt)
	return nil
}

// LatestToday returns the newest entry of the intern today, or nil.
func (r *AttendanceRepository) LatestToday(ctx context.Context, internName string) (*models.AttendanceLog, error) {
	start, end := r.clock.TodayRange()

	var entry models.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("intern_name = ? AND absent_at >= ? AND absent_at < ?", internName, start, end).
		Order("absent_at DESC, log_id DESC").
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest attendance of %q: %w", internName, err)
	}

	entry.AbsentAt = r.clock.FromNaive(entry.AbsentAt)
	return &entry, nil
}

// LatestPerInternToday returns the newest entry of every intern seen today, newest first.
func (r *AttendanceRepository) LatestPerInternToday(ctx context.Context) ([]models.AttendanceLog, error) {
	start, end := r.clock.TodayRange()

	var entries []models.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("absent_at >= ? AND absent_at < ?", start, end).
		Order("absent_at DESC, log_id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list today's attendance: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	latest := make([]models.AttendanceLog, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.InternName]; ok {
			continue
		}
		seen[e.InternName] = struct{}{}
		e.AbsentAt = r.clock.FromNaive(e.AbsentAt)
		latest = append(latest, e)
	}
	return latest, nil
}

// ResetToday deletes every entry of the current local day and returns how
// many were removed. Earlier days are untouched.
func (r *AttendanceRepository) ResetToday(ctx context.Context) (int64, error) {
	start, end := r.clock.TodayRange()

	res := r.db.WithContext(ctx).
		Where("absent_at >= ? AND absent_at < ?", start, end).
		Delete(&models.AttendanceLog{})
	if res.Error != nil {
		return 0, fmt.Errorf("reset today's attendance: %w", res.Error)
	}
	return res.RowsAffected, nil
}
