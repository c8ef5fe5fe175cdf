package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all recognized environment options. Defaults mirror the
// dispute handling rules the bank operates under: disputes may be filed up
// to 60 days after a transaction and up to $10,000.
type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DataFile string `env:"DATA_FILE" env-default:"data/synthetic_transactions.json"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" env-default:"gpt-4o"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`

	MaxDisputeAmount  float64 `env:"MAX_DISPUTE_AMOUNT" env-default:"10000.0"`
	DisputeWindowDays int     `env:"DISPUTE_WINDOW_DAYS" env-default:"60"`

	// Optional: when set, disputes are persisted to Postgres instead of
	// process memory.
	DatabaseDSN string `env:"DATABASE_DSN"`

	// Optional: when set, dispute-created events are published to Kafka.
	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-separator:","`
	KafkaDisputeTopic string   `env:"KAFKA_DISPUTE_TOPIC" env-default:"disputes.created"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return &cfg, nil
}
