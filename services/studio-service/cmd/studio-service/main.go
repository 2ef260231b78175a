package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/yaelle-pmu/studio/libs/config"
	"github.com/yaelle-pmu/studio/libs/db"
	"github.com/yaelle-pmu/studio/libs/httpx"
	"github.com/yaelle-pmu/studio/libs/kafkax"
	otelx "github.com/yaelle-pmu/studio/libs/otel"
	"github.com/yaelle-pmu/studio/libs/redisx"
	"github.com/yaelle-pmu/studio/libs/runtime"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/email"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/events"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/generation"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/handlers"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/recordstore"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/storage"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/studio"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// openStore picks the record store backend: Postgres when DATABASE_URL is set,
// Redis when REDIS_URL is set, in-memory otherwise.
func openStore(ctx context.Context, logger *slog.Logger) (recordstore.Store, []runtime.ReadyCheck, func(), error) {
	if dbURL := config.String("DATABASE_URL", ""); dbURL != "" {
		pool, err := db.Open(ctx, dbURL, db.Options{})
		if err != nil {
			return nil, nil, nil, err
		}
		store := recordstore.NewPostgres(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		logger.Info("record store: postgres")
		return store, []runtime.ReadyCheck{{Name: "db", Check: db.ReadyCheck(pool)}}, pool.Close, nil
	}
	if redisURL := config.String("REDIS_URL", ""); redisURL != "" {
		rdb, err := redisx.Open(ctx, redisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("record store: redis")
		store := recordstore.NewRedis(rdb, config.String("REDIS_KEY_PREFIX", "{yaelle}:"))
		return store, []runtime.ReadyCheck{{Name: "redis", Check: redisx.ReadyCheck(rdb)}}, func() { _ = rdb.Close() }, nil
	}
	logger.Warn("record store: in-memory, data is lost on restart")
	return recordstore.NewMemory(), nil, func() {}, nil
}

func main() {
	runtime.LoadDotEnv(nil)

	service := config.String("SERVICE_NAME", "studio-service")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger, closeLog, err := runtime.NewLogger(service, runtime.LogOptions{
		Level: config.String("LOG_LEVEL", "info"),
		File:  config.String("LOG_FILE", ""),
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = closeLog() }()

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	store, checks, closeStore, err := openStore(ctx, logger)
	if err != nil {
		logger.Error("record store init failed", "err", err)
		os.Exit(1)
	}
	defer closeStore()

	brokers := config.String("KAFKA_BROKERS", "")
	publishTimeout, err := config.Duration("KAFKA_PUBLISH_TIMEOUT", 5*time.Second)
	if err != nil {
		panic(err)
	}
	publisher := events.NewPublisher(events.KafkaConfig{Brokers: brokers, Timeout: publishTimeout}, logger)
	defer func() { _ = publisher.Close() }()

	cfg := studio.Config{
		Brand:  config.String("STUDIO_BRAND", "Yaelle PMU Art"),
		Events: publisher,
		Logger: logger,
	}
	if tz := config.String("STUDIO_TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			logger.Error("invalid STUDIO_TIMEZONE", "value", tz, "err", err)
			os.Exit(1)
		}
		cfg.Location = loc
	}
	if host := config.String("SMTP_HOST", ""); host != "" {
		smtpPort, err := config.Int("SMTP_PORT", 587)
		if err != nil {
			panic(err)
		}
		cfg.Mailer = email.NewSMTPSender(email.SMTPConfig{
			Host:     host,
			Port:     smtpPort,
			Username: config.String("SMTP_USERNAME", ""),
			Password: config.String("SMTP_PASSWORD", ""),
			From:     config.String("SMTP_FROM", ""),
		})
	} else {
		logger.Warn("smtp not configured; campaigns will only be prepared")
	}
	if genURL := config.String("GENERATION_URL", ""); genURL != "" {
		genTimeout, err := config.Duration("GENERATION_TIMEOUT", 60*time.Second)
		if err != nil {
			panic(err)
		}
		cfg.Generator = generation.NewClient(genURL, otelx.NewHTTPClient(genTimeout))
	} else {
		logger.Warn("GENERATION_URL not set; content generation disabled")
	}

	repo := storage.NewRepository(store, logger)
	svc := studio.New(repo, cfg)
	h := handlers.NewStudioHandler(svc, logger)

	checks = append(checks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	mux := runtime.NewBaseMuxWithReady(checks...)
	mux.HandleFunc("/api/v1/public/book", h.Book)
	mux.HandleFunc("/api/v1/services", h.Services)
	mux.HandleFunc("/api/v1/appointments", h.ListAppointments)
	mux.HandleFunc("/api/v1/appointments/stats", h.Stats)
	mux.HandleFunc("/api/v1/appointments/status", h.UpdateStatus)
	mux.HandleFunc("/api/v1/appointments/delete", h.DeleteAppointment)
	mux.HandleFunc("/api/v1/appointments/export", h.Export)
	mux.HandleFunc("/api/v1/clients", h.Clients)
	mux.HandleFunc("/api/v1/clients/detail", h.ClientDetail)
	mux.HandleFunc("/api/v1/clients/update", h.UpdateClient)
	mux.HandleFunc("/api/v1/clients/delete", h.DeleteClient)
	mux.HandleFunc("/api/v1/treatments", h.AddTreatment)
	mux.HandleFunc("/api/v1/treatments/delete", h.DeleteTreatment)
	mux.HandleFunc("/api/v1/posts", h.Posts)
	mux.HandleFunc("/api/v1/posts/detail", h.PostDetail)
	mux.HandleFunc("/api/v1/posts/delete", h.DeletePost)
	mux.HandleFunc("/api/v1/campaigns/recipients", h.Recipients)
	mux.HandleFunc("/api/v1/campaigns/send", h.SendCampaign)
	mux.HandleFunc("/api/v1/marketing/generate", h.Generate)
	mux.HandleFunc("/api/v1/admin/clear", h.ClearAll)

	bodyLimit, err := config.Int("MAX_BODY_BYTES", 20<<20)
	if err != nil {
		panic(err)
	}
	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithRecover(logger),
		httpx.WithCORS(httpx.DashboardCORS(config.List("CORS_ALLOWED_ORIGINS"))),
		httpx.WithBodyLimit(int64(bodyLimit)),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "studio")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Serve logs its own failures; returning lets the deferred cleanups run.
	_ = runtime.Serve(ctx, srv, logger, 10*time.Second)
}
