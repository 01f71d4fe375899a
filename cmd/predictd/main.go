// Command predictd runs the daily suspension prediction pipeline as a
// long-lived service with health, readiness, and metrics endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/stormsignal/suspension-pipeline/internal/adapter/http"
	kafkaadapter "github.com/stormsignal/suspension-pipeline/internal/adapter/kafka"
	"github.com/stormsignal/suspension-pipeline/internal/adapter/store"
	"github.com/stormsignal/suspension-pipeline/internal/config"
	"github.com/stormsignal/suspension-pipeline/internal/domain"
	"github.com/stormsignal/suspension-pipeline/internal/observability"
	"github.com/stormsignal/suspension-pipeline/internal/pipeline"
	"github.com/stormsignal/suspension-pipeline/internal/scorer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	units := domain.DefaultUnitTable()

	holidays, err := store.LoadHolidays(cfg.HolidaysPath)
	if err != nil {
		logger.Error("failed to load holidays", "error", err)
		os.Exit(1)
	}

	fileStore := store.NewFileStore(store.Paths{
		Archive:     cfg.ArchivePath,
		Forecast:    cfg.ForecastPath,
		Typhoon:     cfg.TyphoonPath,
		FloodRisk:   cfg.FloodRiskPath,
		Holidays:    cfg.HolidaysPath,
		Predictions: cfg.PredictionsPath,
	}, units, logger)

	var s scorer.Scorer
	if cfg.Scorer == "rest" {
		rest := scorer.NewRESTScorer(cfg.ClassifierURL, cfg.ClassifierVersion, cfg.ClassifierTimeout, logger)
		s = scorer.NewCachedScorer(rest, cfg.ScoreCacheSize)
		logger.Info("classifier scorer enabled", "url", cfg.ClassifierURL, "cache_size", cfg.ScoreCacheSize)
	} else {
		s = scorer.NewRuleScorer()
		logger.Info("rule-based scorer enabled")
	}

	writers := []pipeline.PredictionWriter{fileStore}
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		writers = append(writers, kafkaWriter)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(units, fileStore, s, writers, holidays,
		cfg.DecisionThreshold, cfg.RunInterval, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
