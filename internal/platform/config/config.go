package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. FromEnv builds it from
// environment variables so main stays lean.
type Config struct {
	Addr string

	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig

	// SigningKeyPEM holds the ECDSA P-256 private key used to sign vote and
	// session tokens. Loaded once at startup; never logged.
	SigningKeyPEM string

	// VoteYear is the campaign year embedded in eligibility ids.
	VoteYear int

	// CampaignStart is the not-before floor applied to vote tokens. The
	// historical default is the 2021 campaign opening instant.
	CampaignStart time.Time

	// TokenTTL bounds both token kinds.
	TokenTTL time.Duration

	// ServiceTag prefixes eligibility ids ("<tag>-<year>-<voter id>").
	ServiceTag string
}

// PostgresConfig configures the voter record store.
type PostgresConfig struct {
	URL string
}

// RedisConfig configures the ephemeral key/value store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the activity log publisher. Empty brokers disable
// publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

const defaultCampaignStart = 1633060800 // 2021-10-01T04:00:00Z

// FromEnv builds a Config from environment variables, applying development
// defaults where unset.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr: envOr("VOTEGATE_ADDR", ":8080"),
		Postgres: PostgresConfig{
			URL: os.Getenv("VOTEGATE_POSTGRES_URL"),
		},
		Redis: RedisConfig{
			// Empty URL selects the in-process ephemeral store.
			URL:          os.Getenv("VOTEGATE_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		SigningKeyPEM: os.Getenv("VOTEGATE_SIGNING_KEY"),
		TokenTTL:      7 * 24 * time.Hour,
		ServiceTag:    envOr("VOTEGATE_SERVICE_TAG", "thvote"),
	}

	if path := os.Getenv("VOTEGATE_SIGNING_KEY_FILE"); cfg.SigningKeyPEM == "" && path != "" {
		pem, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read signing key file: %w", err)
		}
		cfg.SigningKeyPEM = string(pem)
	}

	year, err := envInt("VOTEGATE_VOTE_YEAR", time.Now().Year())
	if err != nil {
		return Config{}, err
	}
	cfg.VoteYear = year

	start, err := envInt("VOTEGATE_CAMPAIGN_START", defaultCampaignStart)
	if err != nil {
		return Config{}, err
	}
	cfg.CampaignStart = time.Unix(int64(start), 0).UTC()

	if brokers := os.Getenv("VOTEGATE_KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
		cfg.Kafka.Topic = envOr("VOTEGATE_KAFKA_TOPIC", "votegate.activity")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
