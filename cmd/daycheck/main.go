package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"daycheck/internal/cli"
	apphttp "daycheck/internal/http"
	"daycheck/internal/notify"
	"daycheck/internal/repository"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("DAYCHECK_LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	store := cli.OpenStore(logger, cfg.DBPath)
	defer store.Close()

	repo := repository.New(store)

	reminder := notify.NewReminder(repo)
	reminder.RegisterCategory()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Reminder state is always read fresh at launch, never trusted from
	// a previous run.
	state := reminder.Status(ctx)
	logger.Info("Reminder state at launch", "state", state.String())

	if cfg.Reminder.Enabled {
		state = reminder.Schedule(ctx, cfg.Reminder.Hour, cfg.Reminder.Minute, true)
		logger.Info("Daily checkup reminder configured",
			"state", state.String(), "time", cfg.ReminderTime())
	}

	srv := apphttp.NewServer(":"+cfg.Port, repo, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting daycheck server", "port", cfg.Port, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		reminder.Cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
