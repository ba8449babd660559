package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"PRESENSI/controllers/absen"
	"PRESENSI/controllers/auth"
	"PRESENSI/controllers/face"
	"PRESENSI/routes"
	"PRESENSI/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the kiosk HTTP API and the daily reset job",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return serve(cmd.Context(), a)
}

// serve migrates the schema, then runs the HTTP API and the reset job until
// ctx is cancelled or a termination signal arrives.
func serve(ctx context.Context, a *app) error {
	log := a.log

	if err := a.migrate(ctx); err != nil {
		return fmt.Errorf("migrasi database gagal: %w", err)
	}

	reset := scheduler.New(a.clock.Location(), a.cfg.Schedule.DailyResetAt, a.attendance.ResetToday, log)
	if err := reset.Start(); err != nil {
		return err
	}
	defer reset.Stop()

	router := routes.NewRouter(routes.Handlers{
		Absen: absen.NewController(a.engine, a.attendance, log),
		Face:  face.NewController(a.dataset, log),
		Auth:  auth.NewController(a.cfg.Auth, log),
	}, routes.Options{
		Environment: a.cfg.Environment,
		JWTKey:      a.cfg.Auth.JWTKey,
		CapturesDir: a.cfg.Storage.CapturedImagesDir,
	}, log)

	addr := fmt.Sprintf("%s:%d", a.cfg.HTTP.Host, a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting presensi service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
