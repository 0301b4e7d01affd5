package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr       string
	AdminToken string

	// DatabaseURL selects the registration store: postgres when set,
	// in-memory (with seeded demo subjects) otherwise.
	DatabaseURL string

	Redis RedisConfig

	// Kafka selects the notification dispatcher: a kafka publisher when
	// brokers are set, an in-process channel dispatcher otherwise.
	KafkaBrokers     []string
	DispositionTopic string

	// SummaryCacheTTL bounds staleness of cached status-count summaries.
	SummaryCacheTTL time.Duration
}

// RedisConfig mirrors the go-redis knobs we expose through the environment.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("FLOCK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	adminToken := os.Getenv("FLOCK_ADMIN_TOKEN")
	if adminToken == "" {
		// Development default; override in any shared environment.
		adminToken = "dev-admin-token"
	}

	topic := os.Getenv("KAFKA_DISPOSITION_TOPIC")
	if topic == "" {
		topic = "flock.registration.dispositions"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:             addr,
		AdminToken:       adminToken,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Redis:            redisFromEnv(),
		KafkaBrokers:     brokers,
		DispositionTopic: topic,
		SummaryCacheTTL:  durationEnv("SUMMARY_CACHE_TTL", 30*time.Second),
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     intEnv("REDIS_POOL_SIZE", 10),
		MinIdleConns: intEnv("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  durationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func intEnv(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}
