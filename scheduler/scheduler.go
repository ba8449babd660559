// Package scheduler runs the daily attendance reset.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

const ResetJobTag = "daily_attendance_reset"

// Task is the work done once a day. It returns the number of deleted logs.
type Task func(ctx context.Context) (int64, error)

type DailyReset struct {
	sched   *gocron.Scheduler
	at      string
	task    Task
	timeout time.Duration
	log     zerolog.Logger
	job     *gocron.Job
}

// New prepares a job that runs task every day at the local time at ("HH:MM").
// Nothing runs until Start.
func New(loc *time.Location, at string, task Task, log zerolog.Logger) *DailyReset {
	return &DailyReset{
		sched:   gocron.NewScheduler(loc),
		at:      at,
		task:    task,
		timeout: time.Minute,
		log:     log.With().Str("job", ResetJobTag).Logger(),
	}
}

func (d *DailyReset) Start() error {
	job, err := d.sched.Every(1).Day().At(d.at).Tag(ResetJobTag).SingletonMode().Do(d.run)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", ResetJobTag, err)
	}
	d.job = job
	d.sched.StartAsync()

	d.log.Info().Str("at", d.at).Time("next_run", job.NextRun()).Msg("scheduler reset harian aktif")
	return nil
}

// Stop waits for a running reset to finish.
func (d *DailyReset) Stop() {
	d.sched.Stop()
	d.log.Info().Msg("scheduler dihentikan")
}

func (d *DailyReset) NextRun() time.Time {
	if d.job == nil {
		return time.Time{}
	}
	return d.job.NextRun()
}

func (d *DailyReset) run() {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	deleted, err := d.task(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("reset absensi otomatis gagal")
		return
	}
	d.log.Info().Int64("deleted", deleted).Msg("reset absensi otomatis berhasil")
}
