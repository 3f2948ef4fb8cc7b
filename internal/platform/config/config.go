// Package config builds process configuration from the environment so main
// stays lean. All values are read once at startup and never mutated.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"otsus/internal/decision"
)

// Server captures process-level configuration.
type Server struct {
	Addr string

	// PseudonymKey keys the hash applied to personal codes before they touch
	// any store or audit sink.
	PseudonymKey string

	// PostgresURL enables the durable decision and audit stores when set.
	PostgresURL string

	// RedisURL enables the TTL-bounded decision trail when Postgres is not
	// configured.
	RedisURL       string
	RedisRetention time.Duration

	// KafkaBrokers enables the audit Kafka sink when non-empty.
	KafkaBrokers []string
	AuditTopic   string
	AuditBuffer  int

	RequestTimeout    time.Duration
	ReadHeaderTimeout time.Duration

	// Decision holds the engine constants, defaults overridable per
	// environment for deterministic testing with alternate thresholds.
	Decision decision.Config
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:           envString("OTSUS_ADDR", ":8080"),
		PseudonymKey:   envString("OTSUS_PSEUDONYM_KEY", "dev-pseudonym-key-change-in-production"),
		PostgresURL:    os.Getenv("OTSUS_POSTGRES_URL"),
		RedisURL:       os.Getenv("OTSUS_REDIS_URL"),
		RedisRetention: envDuration("OTSUS_REDIS_RETENTION", 24*time.Hour),
		AuditTopic:     envString("OTSUS_AUDIT_TOPIC", "otsus.decisions"),
		AuditBuffer:    envInt("OTSUS_AUDIT_BUFFER", 256),
		RequestTimeout:    envDuration("OTSUS_REQUEST_TIMEOUT", 10*time.Second),
		ReadHeaderTimeout: envDuration("OTSUS_READ_HEADER_TIMEOUT", 5*time.Second),
		Decision:       decisionFromEnv(),
	}

	if brokers := os.Getenv("OTSUS_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}

func decisionFromEnv() decision.Config {
	cfg := decision.DefaultConfig()
	cfg.MinLoanAmount = envInt("OTSUS_MIN_LOAN_AMOUNT", cfg.MinLoanAmount)
	cfg.MaxLoanAmount = envInt("OTSUS_MAX_LOAN_AMOUNT", cfg.MaxLoanAmount)
	cfg.MinLoanPeriod = envInt("OTSUS_MIN_LOAN_PERIOD", cfg.MinLoanPeriod)
	cfg.MaxLoanPeriod = envInt("OTSUS_MAX_LOAN_PERIOD", cfg.MaxLoanPeriod)
	cfg.ScoreThreshold = envFloat("OTSUS_SCORE_THRESHOLD", cfg.ScoreThreshold)
	cfg.MinAge = envInt("OTSUS_MIN_AGE", cfg.MinAge)
	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
