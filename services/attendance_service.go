package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"PRESENSI/helper"
	"PRESENSI/models"
	"PRESENSI/schedule"
)

// AttendanceService serves the reporting and reset side of the ledger.
type AttendanceService struct {
	ledger Ledger
	policy *schedule.Policy
	clock  *helper.Clock
	log    zerolog.Logger
}

func NewAttendanceService(ledger Ledger, policy *schedule.Policy, clock *helper.Clock, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{ledger: ledger, policy: policy, clock: clock, log: log}
}

type TodayEntry struct {
	Name           string           `json:"name"`
	Instansi       string           `json:"instansi"`
	Kategori       string           `json:"kategori"`
	Type           models.Direction `json:"type"`
	Classification schedule.Status  `json:"classification"`
	Status         string           `json:"status"`
	Timestamp      string           `json:"timestamp"`
	ImagePath      string           `json:"image_path"`
}

// Today lists the latest event of every intern today, newest first.
func (s *AttendanceService) Today(ctx context.Context) ([]TodayEntry, error) {
	logs, err := s.ledger.LatestPerInternToday(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]TodayEntry, 0, len(logs))
	for _, l := range logs {
		status := s.policy.Classify(l.Kategori, l.Type, l.AbsentAt)
		entries = append(entries, TodayEntry{
			Name:           l.InternName,
			Instansi:       l.Instansi,
			Kategori:       l.Kategori,
			Type:           l.Type,
			Classification: status,
			Status:         displayStatus(l.Type, status),
			Timestamp:      s.clock.FormatHMS(l.AbsentAt),
			ImagePath:      l.ImageURL,
		})
	}
	return entries, nil
}

func displayStatus(direction models.Direction, status schedule.Status) string {
	switch direction {
	case models.DirectionIn:
		return fmt.Sprintf("MASUK (%s)", status.Label())
	case models.DirectionOut:
		return fmt.Sprintf("PULANG (%s)", status.Label())
	default:
		return "N/A"
	}
}

// ResetToday deletes today's log. The scheduled job and the admin endpoint both land here.
func (s *AttendanceService) ResetToday(ctx context.Context) (int64, error) {
	deleted, err := s.ledger.ResetToday(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("deleted", deleted).Msg("reset absensi hari ini")
	return deleted, nil
}
