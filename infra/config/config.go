package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, loaded from the environment.
type Config struct {
	App   AppConfig   `envPrefix:"APP_"`
	Kafka KafkaConfig `envPrefix:"KAFKA_"`
}

// AppConfig holds the application settings.
type AppConfig struct {
	Name     string `env:"NAME" envDefault:"janus"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// KafkaConfig controls the outbound event broadcaster. Disabled by default;
// the engine is fully usable without a broker.
type KafkaConfig struct {
	Enabled      bool     `env:"ENABLED" envDefault:"false"`
	Brokers      []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic        string   `env:"TOPIC" envDefault:"book-events"`
	BatchTimeout int      `env:"BATCH_TIMEOUT_MS" envDefault:"10"`
}

// Load reads configuration from the environment, with a best-effort .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
