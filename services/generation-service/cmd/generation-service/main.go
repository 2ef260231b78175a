package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/yaelle-pmu/studio/libs/config"
	"github.com/yaelle-pmu/studio/libs/httpx"
	otelx "github.com/yaelle-pmu/studio/libs/otel"
	"github.com/yaelle-pmu/studio/libs/redisx"
	"github.com/yaelle-pmu/studio/libs/runtime"
	"github.com/yaelle-pmu/studio/services/generation-service/internal/applog"
	"github.com/yaelle-pmu/studio/services/generation-service/internal/handlers"
	"github.com/yaelle-pmu/studio/services/generation-service/internal/images"
	"github.com/yaelle-pmu/studio/services/generation-service/internal/llm"
	"github.com/yaelle-pmu/studio/services/generation-service/internal/prompts"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	runtime.LoadDotEnv(nil)

	service := config.String("SERVICE_NAME", "generation-service")
	port, err := config.Port("PORT", "3000")
	if err != nil {
		panic(err)
	}
	logFile := config.String("LOG_FILE", "generation.log")
	if strings.EqualFold(logFile, "off") {
		logFile = ""
	}
	logger, closeLog, err := runtime.NewLogger(service, runtime.LogOptions{
		Level: config.String("LOG_LEVEL", "info"),
		File:  logFile,
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

	apiKey, err := config.RequiredString("ANTHROPIC_API_KEY")
	if err != nil {
		logger.Error("missing configuration", "err", err)
		os.Exit(1)
	}
	maxTokens, err := config.IntAtLeast("LLM_MAX_TOKENS", llm.DefaultMaxTokens, 1)
	if err != nil {
		panic(err)
	}
	llmTimeout, err := config.Duration("LLM_TIMEOUT", 60*time.Second)
	if err != nil {
		panic(err)
	}
	llmRetries, err := config.IntAtLeast("LLM_MAX_RETRIES", llm.DefaultMaxRetries, 0)
	if err != nil {
		panic(err)
	}
	completer := llm.NewClient(llm.Config{
		APIKey:     apiKey,
		BaseURL:    config.String("ANTHROPIC_BASE_URL", llm.DefaultBaseURL),
		Model:      config.String("LLM_MODEL", llm.DefaultModel),
		MaxTokens:  maxTokens,
		MaxRetries: llmRetries,
	}, otelx.NewHTTPClient(llmTimeout))

	imageAttempts, err := config.IntAtLeast("IMAGE_MAX_ATTEMPTS", 3, 1)
	if err != nil {
		panic(err)
	}
	imageTimeout, err := config.Duration("IMAGE_TIMEOUT", 15*time.Second)
	if err != nil {
		panic(err)
	}
	fetcher := images.NewFetcher(images.FetcherConfig{
		BaseURL:     config.String("STOCK_IMAGE_BASE_URL", images.DefaultBaseURL),
		MaxAttempts: uint(imageAttempts),
	}, otelx.NewHTTPClient(imageTimeout))

	studio := prompts.Studio{
		Name:     config.String("STUDIO_BRAND", "Yaelle PMU Art"),
		Location: config.String("STUDIO_LOCATION", "Limassol, Cyprus"),
	}
	h := handlers.NewGenerateHandler(completer, fetcher, studio, applog.NewFile(logFile), logger)

	rateLimit, err := config.IntAtLeast("GENERATE_RATE_LIMIT", 20, 1)
	if err != nil {
		panic(err)
	}
	rateWindow, err := config.Duration("GENERATE_RATE_WINDOW", time.Minute)
	if err != nil {
		panic(err)
	}

	var (
		limiter httpx.Limiter = httpx.NewRateLimiter(rateLimit, rateWindow)
		checks  []runtime.ReadyCheck
	)
	if redisURL := config.String("REDIS_URL", ""); redisURL != "" {
		rdb, err := redisx.Open(ctx, redisURL)
		if err != nil {
			logger.Error("redis connection failed", "err", err)
			os.Exit(1)
		}
		defer func() { _ = rdb.Close() }()
		limiter = httpx.NewRedisRateLimiter(rdb, rateLimit, rateWindow, "rl:generate", logger, config.Bool("RATE_LIMIT_FAIL_OPEN", true))
		checks = append(checks, runtime.ReadyCheck{Name: "redis", Check: redisx.ReadyCheck(rdb)})
	}

	mux := runtime.NewBaseMuxWithReady(checks...)
	mux.Handle("/api/generate", limiter.Middleware()(http.HandlerFunc(h.Generate)))
	mux.HandleFunc("/api/logs", h.Logs)

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithRecover(logger),
		httpx.WithCORS(httpx.DashboardCORS(config.List("CORS_ALLOWED_ORIGINS"))),
		httpx.WithBodyLimit(1<<20),
		httpx.WithTimeout(llmTimeout+imageTimeout*time.Duration(imageAttempts)),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "generation")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Serve logs its own failures; returning lets the deferred cleanups run.
	_ = runtime.Serve(ctx, srv, logger, 10*time.Second)
}
