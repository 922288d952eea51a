package config

import (
	"github.com/Gobusters/ectoenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName    string `env:"APP_NAME" env-default:"wisteria"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs bool   `env:"PRETTY_LOGS" env-default:"false"`

	// Tracing
	TracingEnabled bool `env:"TRACING_ENABLED" env-default:"false"`

	// Graph Database (Memgraph)
	GraphEnabled    bool   `env:"GRAPH_ENABLED" env-default:"false"`
	GraphDBHost     string `env:"GRAPH_DB_HOST" env-default:"localhost"`
	GraphDBPort     int    `env:"GRAPH_DB_PORT" env-default:"7687"`
	GraphDBUser     string `env:"GRAPH_DB_USER" env-default:""`
	GraphDBPassword string `env:"GRAPH_DB_PASSWORD" env-default:""`

	// Kafka Producer settings
	EventsEnabled     bool     `env:"EVENTS_ENABLED" env-default:"false"`
	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaOutputTopic  string   `env:"KAFKA_OUTPUT_TOPIC" env-default:"customer-events"`
	KafkaBatchSize    int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression  string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`

	// Reconciliation
	TrackingPrefix string `env:"TRACKING_PREFIX" env-default:"NEW-"`
	TrackingStart  int    `env:"TRACKING_START" env-default:"1"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
