package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	_ "customerapi/docs"
	"customerapi/pkg/api"
	"customerapi/pkg/customer/memory"
	"customerapi/pkg/logger"
	"customerapi/pkg/otel"
)

// Config collects the runtime settings. Values come from the environment,
// optionally seeded from a .env file in the working directory.
type Config struct {
	ListenAddress    string        `env:"LISTEN_ADDRESS, default=127.0.0.1:3000"`
	SnapshotPath     string        `env:"SNAPSHOT_PATH, default=data/customers.json"`
	OtelHost         string        `env:"OTEL_HOST"`
	TraceProbability float64       `env:"TRACE_PROBABILITY, default=1"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT, default=20s"`
}

// @title Customer API
// @version 1.0
// @description API for managing customer records
// @host localhost:3000
// @BasePath /
func main() {
	_ = godotenv.Load()

	log := logger.New(os.Stdout, logger.LevelInfo, "customerapi", otel.GetTraceID)
	defer log.Sync()

	ctx := context.Background()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Error(ctx, "parse config", "error", err)
		os.Exit(1)
	}

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: "customerapi",
		Host:        cfg.OtelHost,
		Probability: cfg.TraceProbability,
	})
	if err != nil {
		log.Error(ctx, "init tracing", "error", err)
		return
	}
	defer shutdown(context.Background())
	tracer := tp.Tracer("customerapi")

	repo, err := memory.FromFile(cfg.SnapshotPath)
	if err != nil {
		log.Error(ctx, "load snapshot", "path", cfg.SnapshotPath, "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           api.NewServer(repo, log, tracer).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.ListenAddress)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		log.Error(ctx, "server error", "error", err)
	case <-shutdownCtx.Done():
		log.Info(ctx, "shutdown started")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			log.Error(ctx, "graceful shutdown failed", "error", err)
		}
	}
}
