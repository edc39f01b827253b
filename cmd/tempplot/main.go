package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kjstillabower/tempplot/internal/config"
	"github.com/kjstillabower/tempplot/internal/observability"
	"github.com/kjstillabower/tempplot/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	runID := uuid.New().String()
	logger = observability.WithRunID(logger, runID)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", zap.Error(err))
		return 1
	}
	logger.Debug("config loaded",
		zap.String("env", cfg.EnvName),
		zap.String("input", cfg.InputPath),
		zap.String("output", cfg.OutputPath))

	svc := service.NewPlotService(logger)
	_, runErr := svc.Run(context.Background(), cfg.InputPath, cfg.OutputPath)

	if cfg.MetricsTextfile != "" || cfg.PushgatewayURL != "" {
		host := instanceName(logger, os.Hostname)
		exportCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := observability.ExportMetrics(exportCtx, observability.ExportConfig{
			Textfile:       cfg.MetricsTextfile,
			PushgatewayURL: cfg.PushgatewayURL,
			Job:            cfg.MetricsJob,
			Instance:       host,
		})
		cancel()
		if err != nil {
			logger.Warn("metrics export failed", zap.Error(err))
		}
	}

	if err := observability.FlushTelemetry(context.Background(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry flush: %v\n", err)
	}
	if runErr != nil {
		return 1
	}
	return 0
}

// unknownInstance labels pushed metrics when the hostname cannot be read.
const unknownInstance = "unknown"

// instanceName returns the Pushgateway instance label for this host.
func instanceName(logger *zap.Logger, hostname func() (string, error)) string {
	host, err := hostname()
	if err != nil || host == "" {
		logger.Debug("hostname unavailable, using default instance",
			zap.String("instance", unknownInstance), zap.Error(err))
		return unknownInstance
	}
	return host
}
