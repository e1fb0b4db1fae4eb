package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"carebook/internal/api"
	"carebook/internal/config"
	"carebook/internal/database"
	"carebook/internal/directory"
	"carebook/internal/events"
	"carebook/internal/metrics"
	"carebook/internal/notify"
	"carebook/internal/sheets"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("CAREBOOK_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.Directory.BaseURL == "" {
		logger.Fatal().Msg("set directory.base_url in config")
	}

	db, err := database.New(cfg.Database.Path, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer db.Close()

	client := directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.APIKey)
	var rdb *redis.Client
	if cfg.Redis.Address != "" && cfg.Directory.CacheTTLSeconds > 0 {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		client.UseRedisCache(rdb, cfg.DirectoryCacheTTL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus()
	subscribeLogging(bus, &logger)

	if cfg.Sheets.Enabled {
		sheetSvc, err := sheets.NewService(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("create sheets service")
		}
		subscribeSheetsSync(ctx, bus, sheetSvc, db, client, &logger)
	}

	if cfg.Notifications.Enabled && cfg.Notifications.TelegramBotToken != "" {
		notifier, err := notify.NewTelegramNotifier(cfg.Notifications.TelegramBotToken)
		if err != nil {
			logger.Fatal().Err(err).Msg("create telegram notifier")
		}
		scheduler := notify.NewScheduler(db, client, notifier,
			cfg.Notifications.RatePerSecond, cfg.Notifications.SendHour, &logger)
		go scheduler.Start(ctx)
	}

	if cfg.Backup.Enabled {
		backup := database.NewBackupService(db.Path(), cfg, &logger)
		go backup.Start(ctx)
	}

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, db, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	server := api.NewHTTPServer(
		fmt.Sprintf(":%d", cfg.Server.Port),
		cfg.Server.APIKey,
		db, client, bus, &logger,
	)

	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			logger.Error().Err(err).Msg("API server shutdown")
		}
	}()

	logger.Info().Msg("scheduling service started")
	if err := server.Start(); err != nil {
		logger.Fatal().Err(err).Msg("API server error")
	}
}

// subscribeLogging records every published domain event.
func subscribeLogging(bus *events.Bus, logger *zerolog.Logger) {
	handler := func(event events.Event) error {
		logger.Info().
			Str("event_id", event.ID).
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("domain event")
		return nil
	}
	bus.Subscribe(events.TypeAvailabilitySaved, handler)
	bus.Subscribe(events.TypeTaskToggled, handler)
}

// subscribeSheetsSync pushes the caregiver's schedule to the operations
// spreadsheet every time availability is saved.
func subscribeSheetsSync(ctx context.Context, bus *events.Bus, svc *sheets.Service, db *database.DB, client *directory.Client, logger *zerolog.Logger) {
	bus.Subscribe(events.TypeAvailabilitySaved, func(event events.Event) error {
		var payload events.AvailabilitySaved
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}

		avail, ok, err := db.LoadAvailability(ctx, payload.CaregiverID)
		if err != nil || !ok {
			return err
		}
		bookings, err := client.GetBookings(ctx, payload.CaregiverID)
		if err != nil {
			logger.Error().Err(err).Str("caregiver_id", payload.CaregiverID).Msg("sheets sync: fetch bookings")
			return err
		}

		return svc.SyncSchedule(ctx, payload.CaregiverID, avail, bookings)
	})
}

func startHealthServer(ctx context.Context, port int, db *database.DB, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := db.PingContext(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
