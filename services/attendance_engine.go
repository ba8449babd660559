package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"PRESENSI/helper"
	"PRESENSI/models"
	"PRESENSI/repository"
	"PRESENSI/schedule"
)

type Outcome string

const (
	OutcomeNoFace       Outcome = "no_face"
	OutcomeSystemEmpty  Outcome = "system_empty"
	OutcomeUnrecognized Outcome = "unrecognized"
	OutcomeDuplicate    Outcome = "duplicate"
	OutcomeSuccess      Outcome = "success"
)

// Decision is the kiosk answer to one recognition attempt.
type Decision struct {
	Status           Outcome          `json:"status"`
	Message          string           `json:"message"`
	Name             string           `json:"name,omitempty"`
	Instansi         string           `json:"instansi,omitempty"`
	Kategori         string           `json:"kategori,omitempty"`
	Type             models.Direction `json:"type,omitempty"`
	Distance         *float64         `json:"distance,omitempty"`
	Classification   schedule.Status  `json:"classification,omitempty"`
	AttendanceStatus string           `json:"attendance_status,omitempty"`
	LogTime          string           `json:"log_time,omitempty"`
	ImageURL         string           `json:"image_url"`
	Latency          string           `json:"latency"`

	// At is the event time of a success or the prior entry of a duplicate.
	At time.Time `json:"-"`
}

type RecognizeInput struct {
	Image     []byte
	Direction string
}

type CaptureSaver interface {
	SaveCapture(name string, direction models.Direction, at time.Time, image []byte) (string, error)
}

type AttendanceEngine struct {
	extractor Extractor
	matcher   Matcher
	ledger    Ledger
	captures  CaptureSaver
	policy    *schedule.Policy
	clock     *helper.Clock
	threshold float64
	log       zerolog.Logger
}

func NewAttendanceEngine(
	extractor Extractor,
	matcher Matcher,
	ledger Ledger,
	captures CaptureSaver,
	policy *schedule.Policy,
	clock *helper.Clock,
	threshold float64,
	log zerolog.Logger,
) *AttendanceEngine {
	return &AttendanceEngine{
		extractor: extractor,
		matcher:   matcher,
		ledger:    ledger,
		captures:  captures,
		policy:    policy,
		clock:     clock,
		threshold: threshold,
		log:       log,
	}
}

// Recognize decides one kiosk attempt. Only a success writes anything.
// Store failures are returned as errors; every other outcome is a Decision.
func (e *AttendanceEngine) Recognize(ctx context.Context, in RecognizeInput) (*Decision, error) {
	direction, err := models.ParseDirection(in.Direction)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, in.Direction)
	}
	started := time.Now()

	// 1. Ekstraksi wajah
	embeddings, err := e.extractor.Extract(ctx, in.Image)
	if err != nil {
		e.log.Warn().Err(err).Msg("ekstraksi wajah gagal")
	}
	if len(embeddings) == 0 {
		return e.finish(started, &Decision{Status: OutcomeNoFace, Message: "Wajah tidak terdeteksi."}), nil
	}

	// Setelah ekstraksi berhasil keputusan tidak boleh terputus di tengah jalan.
	ctx = context.WithoutCancel(ctx)

	// 2. Cari centroid terdekat
	match, err := e.matcher.Nearest(ctx, embeddings[0])
	if err != nil {
		return nil, fmt.Errorf("match face: %w", err)
	}
	if match == nil {
		return e.finish(started, &Decision{Status: OutcomeSystemEmpty, Message: "Sistem kosong, lakukan indexing."}), nil
	}

	// 3. Ambang batas jarak
	if math.IsNaN(match.Distance) || match.Distance > e.threshold {
		e.log.Info().Float64("distance", match.Distance).Msg("wajah tidak dikenali")
		return e.finish(started, &Decision{Status: OutcomeUnrecognized, Message: "Data Wajah Anda Belum Terdaftar Di Sistem"}), nil
	}

	// 4. Cek duplikat arah yang sama hari ini
	prior, err := e.ledger.LatestToday(ctx, match.Name)
	if err != nil {
		return nil, fmt.Errorf("check latest attendance: %w", err)
	}
	if prior != nil && prior.Type == direction {
		d := e.identified(match, direction, OutcomeDuplicate, duplicateMessage(match.Name, direction))
		d.LogTime = e.clock.FormatHMS(prior.AbsentAt)
		d.At = prior.AbsentAt
		return e.finish(started, d), nil
	}

	// 5. Simpan foto (best effort), catat log, klasifikasi
	now := e.clock.Now()
	imageURL, err := e.captures.SaveCapture(match.Name, direction, now, in.Image)
	if err != nil {
		e.log.Error().Err(err).Str("name", match.Name).Msg("gagal menyimpan gambar absensi")
		imageURL = ""
	}

	internID := match.InternId
	entry := &models.AttendanceLog{
		InternId:   &internID,
		InternName: match.Name,
		Instansi:   match.Instansi,
		Kategori:   match.Kategori,
		ImageURL:   imageURL,
		Type:       direction,
	}
	if err := e.ledger.Append(ctx, entry, now); err != nil {
		return nil, err
	}

	status := e.policy.Classify(match.Kategori, direction, now)
	d := e.identified(match, direction, OutcomeSuccess, successMessage(match.Name, direction, status))
	d.Classification = status
	d.AttendanceStatus = status.Label()
	d.LogTime = e.clock.FormatHMS(now)
	d.ImageURL = imageURL
	d.At = now

	e.log.Info().
		Str("name", match.Name).
		Str("type", string(direction)).
		Str("status", string(status)).
		Float64("distance", match.Distance).
		Msg("absensi berhasil")

	return e.finish(started, d), nil
}

func (e *AttendanceEngine) identified(match *repository.CentroidMatch, direction models.Direction, outcome Outcome, message string) *Decision {
	distance := match.Distance
	return &Decision{
		Status:   outcome,
		Message:  message,
		Name:     match.Name,
		Instansi: match.Instansi,
		Kategori: match.Kategori,
		Type:     direction,
		Distance: &distance,
	}
}

func (e *AttendanceEngine) finish(started time.Time, d *Decision) *Decision {
	d.Latency = fmt.Sprintf("%.2fs", time.Since(started).Seconds())
	return d
}

func duplicateMessage(name string, direction models.Direction) string {
	if direction == models.DirectionIn {
		return fmt.Sprintf("%s, Anda sudah Absen Masuk hari ini.", name)
	}
	return "Absensi Pulang Anda sudah dicatat hari ini. Sampai jumpa besok."
}

func successMessage(name string, direction models.Direction, status schedule.Status) string {
	switch {
	case direction == models.DirectionIn && status == schedule.StatusLate:
		return fmt.Sprintf("Maaf, %s. Absensi masuk Anda dicatat sebagai Terlambat.", name)
	case direction == models.DirectionIn:
		return fmt.Sprintf("Selamat datang, %s. Absensi masuk berhasil dicatat.", name)
	case status == schedule.StatusEarlyLeave:
		return fmt.Sprintf("Peringatan, %s. Absensi keluar Anda dicatat sebagai Pulang Cepat.", name)
	default:
		return fmt.Sprintf("Terima kasih, %s. Absensi keluar berhasil dicatat. Sampai jumpa besok.", name)
	}
}
