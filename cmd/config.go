package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"repairbooking/internal/core/application/usecases/commands"
	"repairbooking/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	defaultHTTPPort        = "8082"
	defaultDBSslMode       = "disable"
	defaultOutboxBatchSize = 100
)

type Config struct {
	HTTPPort                       string
	DBHost                         string
	DBPort                         string
	DBUser                         string
	DBPassword                     string
	DBName                         string
	DBSslMode                      string
	KafkaHost                      string
	KafkaBookingStatusChangedTopic string
	OutboxBatchSize                int
	OutboxRelaySchedule            string
	MetricsSchedule                string
}

// LoadConfig reads the configuration from the environment. Variables found in a .env
// file in the working directory are loaded first; a missing file is not an error.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := configFromEnv()
	if err != nil {
		return Config{}, fmt.Errorf("environment loading: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func configFromEnv() (Config, error) {
	batchSize, err := getEnvInt("OUTBOX_BATCH_SIZE", defaultOutboxBatchSize)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:                       getEnv("HTTP_PORT", defaultHTTPPort),
		DBHost:                         os.Getenv("DB_HOST"),
		DBPort:                         os.Getenv("DB_PORT"),
		DBUser:                         os.Getenv("DB_USER"),
		DBPassword:                     os.Getenv("DB_PASSWORD"),
		DBName:                         os.Getenv("DB_NAME"),
		DBSslMode:                      getEnv("DB_SSLMODE", defaultDBSslMode),
		KafkaHost:                      os.Getenv("KAFKA_HOST"),
		KafkaBookingStatusChangedTopic: os.Getenv("KAFKA_BOOKING_STATUS_CHANGED_TOPIC"),
		OutboxBatchSize:                batchSize,
		OutboxRelaySchedule:            getEnv("OUTBOX_RELAY_SCHEDULE", jobs.DefaultOutboxRelaySchedule),
		MetricsSchedule:                getEnv("METRICS_SCHEDULE", jobs.DefaultBookingMetricsSchedule),
	}, nil
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var errList []error

	required := []struct {
		name  string
		value string
	}{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_PASSWORD", c.DBPassword},
		{"DB_NAME", c.DBName},
		{"KAFKA_HOST", c.KafkaHost},
		{"KAFKA_BOOKING_STATUS_CHANGED_TOPIC", c.KafkaBookingStatusChangedTopic},
	}
	for _, r := range required {
		if r.value == "" {
			errList = append(errList, fmt.Errorf("%s is required", r.name))
		}
	}

	if c.OutboxBatchSize < 1 || c.OutboxBatchSize > commands.MaxOutboxBatchSize {
		errList = append(errList, fmt.Errorf(
			"OUTBOX_BATCH_SIZE must be between 1 and %d, got %d", commands.MaxOutboxBatchSize, c.OutboxBatchSize,
		))
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.OutboxRelaySchedule); err != nil {
		errList = append(errList, fmt.Errorf("OUTBOX_RELAY_SCHEDULE is invalid: %w", err))
	}
	if _, err := parser.Parse(c.MetricsSchedule); err != nil {
		errList = append(errList, fmt.Errorf("METRICS_SCHEDULE is invalid: %w", err))
	}

	return errors.Join(errList...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", key, v, err)
	}
	return n, nil
}
