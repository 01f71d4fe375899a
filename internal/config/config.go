// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Prediction run settings.
	RunInterval       time.Duration
	DecisionThreshold float64

	// Scorer selection: "rest" calls the classifier service, "rules" uses
	// the built-in fallback.
	Scorer            string
	ClassifierURL     string
	ClassifierTimeout time.Duration
	ClassifierVersion string
	ScoreCacheSize    int

	// Data file locations.
	ArchivePath     string
	ForecastPath    string
	TyphoonPath     string
	FloodRiskPath   string
	HolidaysPath    string
	PredictionsPath string

	// Optional Kafka publishing of completed prediction batches.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	runInterval, err := parseDuration("RUN_INTERVAL", "24h")
	if err != nil {
		return nil, err
	}
	classifierTimeout, err := parseDuration("CLASSIFIER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	threshold, err := parseThreshold()
	if err != nil {
		return nil, err
	}

	kafkaEnabled := os.Getenv("KAFKA_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		RunInterval:       runInterval,
		DecisionThreshold: threshold,

		Scorer:            envOrDefault("SCORER", "rest"),
		ClassifierURL:     envOrDefault("CLASSIFIER_URL", "http://localhost:8000/predict"),
		ClassifierTimeout: classifierTimeout,
		ClassifierVersion: envOrDefault("CLASSIFIER_VERSION", "xgb-v2"),
		ScoreCacheSize:    parseCacheSize(),

		ArchivePath:     envOrDefault("ARCHIVE_PATH", "data/weather_archive.json"),
		ForecastPath:    envOrDefault("FORECAST_PATH", "data/forecast.json"),
		TyphoonPath:     envOrDefault("TYPHOON_PATH", "data/typhoon_status.json"),
		FloodRiskPath:   envOrDefault("FLOOD_RISK_PATH", "data/flood_risk.json"),
		HolidaysPath:    envOrDefault("HOLIDAYS_PATH", "data/holidays.json"),
		PredictionsPath: envOrDefault("PREDICTIONS_PATH", "data/predictions.json"),

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "suspension-predictions"),
	}

	switch cfg.Scorer {
	case "rest", "rules":
	default:
		return nil, fmt.Errorf("invalid SCORER %q: must be rest or rules", cfg.Scorer)
	}
	if cfg.Scorer == "rest" && cfg.ClassifierURL == "" {
		return nil, errors.New("CLASSIFIER_URL is required when SCORER is rest")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseThreshold() (float64, error) {
	s := envOrDefault("DECISION_THRESHOLD", "0.5")
	t, err := strconv.ParseFloat(s, 64)
	if err != nil || t <= 0 || t >= 1 {
		return 0, errors.New("invalid DECISION_THRESHOLD: must be in (0, 1)")
	}
	return t, nil
}

func parseCacheSize() int {
	if s := os.Getenv("SCORE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
