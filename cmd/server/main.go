package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riverqueue/river"

	"meeting-service/internal/app"
	"meeting-service/internal/calendar"
	"meeting-service/internal/config"
	"meeting-service/internal/jobs"
	"meeting-service/internal/notifications"
	"meeting-service/internal/repositories"
	"meeting-service/internal/server"
	"meeting-service/internal/usecases"
	"meeting-service/internal/utils"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := utils.NewLogger(cfg.Env, utils.ParseLogLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = utils.StoreLoggerInContext(ctx, logger)

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := repositories.RunMigrations(ctx, pool, logger); err != nil {
			return err
		}
	}

	dispatcher, riverClient, err := newDispatcher(ctx, cfg, pool, logger)
	if err != nil {
		return err
	}

	var opts []usecases.Option
	google := calendar.NewGoogleCalendar(cfg.Google, cfg.Location())
	if google != nil {
		opts = append(opts, usecases.WithBusyIntervalSource(google))
	}
	uc := usecases.NewUsecases(
		repositories.NewDatabase(pool),
		repositories.NewPgRepository(),
		dispatcher,
		usecases.Settings{
			Location:     cfg.Location(),
			SlotDuration: cfg.SlotDuration(),
			Availability: cfg.AvailabilityPolicy(),
			ReminderLead: cfg.ReminderLead(),
		},
		opts...,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	utils.RegisterMetrics(registry)

	auth, err := app.NewAuthenticator(cfg.JWTSecret, cfg.StaticTokens)
	if err != nil {
		return err
	}
	handlers := app.New(uc, nil)
	if google != nil {
		handlers.OAuth = google
	}
	router := server.NewRouter(cfg, logger)
	metrics := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	if err := handlers.Routes(router, auth.Middleware(), pool, metrics); err != nil {
		return err
	}

	scheduler := jobs.NewScheduler(logger, cfg.Timezone)
	if err := jobs.RegisterMeetingJobs(scheduler, uc.NewMeetingUsecase(), cfg.ReminderCron, cfg.ExpiryCron); err != nil {
		return err
	}
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	if riverClient != nil {
		defer stopQueue(riverClient, logger)
	}

	return server.Run(ctx, server.NewServer(router, cfg.Port, cfg.RequestTimeout()), logger)
}

func newDispatcher(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger,
) (usecases.NotificationDispatcher, *river.Client[pgx.Tx], error) {
	if cfg.NotificationsMode != config.NotificationsQueue {
		return notifications.LogDispatcher{}, nil, nil
	}

	if cfg.RunMigrations {
		if err := notifications.MigrateQueue(ctx, pool, logger); err != nil {
			return nil, nil, err
		}
	}
	client, err := notifications.NewRiverClient(pool, notifications.LogSender{}, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Start(ctx); err != nil {
		return nil, nil, err
	}
	return notifications.NewQueueDispatcher(client), client, nil
}

// stopQueue lets running jobs finish, then cancels them if they take too long.
func stopQueue(client *river.Client[pgx.Tx], logger *slog.Logger) {
	softCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Stop(softCtx); err == nil {
		logger.Info("job queue stopped")
		return
	}

	logger.Warn("job queue soft stop timed out, cancelling running jobs")
	hardCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.StopAndCancel(hardCtx); err != nil {
		logger.Error("job queue hard stop failed", "error", err.Error())
	}
}
