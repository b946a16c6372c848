package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server        ServerConfig        `envconfig:"SERVER"`
	Database      DatabaseConfig      `envconfig:"DB"`
	Redis         RedisConfig         `envconfig:"REDIS"`
	Storage       StorageConfig       `envconfig:"STORAGE"`
	Summarization SummarizationConfig `envconfig:"SUMMARIZATION"`
	Transcription TranscriptionConfig `envconfig:"TRANSCRIPTION"`
	Worker        WorkerConfig        `envconfig:"WORKER"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	MaxBodyBytes    int64    `envconfig:"MAX_BODY_BYTES" default:"10485760"`
}

// DatabaseConfig holds database configuration. Driver "memory" skips
// Postgres entirely and keeps all state in process, for development and
// tests.
type DatabaseConfig struct {
	Driver   string `envconfig:"DRIVER" default:"postgres"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"5432"`
	User     string `envconfig:"USER" default:"postgres"`
	Password string `envconfig:"PASSWORD" default:"postgres"`
	Name     string `envconfig:"NAME" default:"meeting_summarizer"`
	SSLMode  string `envconfig:"SSLMODE" default:"disable"`
	MaxConns int    `envconfig:"MAX_CONNS" default:"25"`
	MinConns int    `envconfig:"MIN_CONNS" default:"5"`
}

// RedisConfig holds Redis configuration. Redis is optional; when disabled
// the in-memory cache is used instead.
type RedisConfig struct {
	Enabled  bool   `envconfig:"ENABLED" default:"false"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD" default:""`
	DB       int    `envconfig:"DB" default:"0"`
	TTL      time.Duration `envconfig:"TTL" default:"1h"`
}

// StorageConfig holds object storage configuration for audio recordings
type StorageConfig struct {
	Endpoint        string `envconfig:"ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"BUCKET" default:"meeting-recordings"`
	UseSSL          bool   `envconfig:"USE_SSL" default:"false"`
}

// SummarizationConfig selects and configures the summarization backends
type SummarizationConfig struct {
	Provider         string        `envconfig:"PROVIDER" default:"rule-based"`
	OllamaBaseURL    string        `envconfig:"OLLAMA_BASE_URL" default:"http://localhost:11434"`
	OllamaModel      string        `envconfig:"OLLAMA_MODEL" default:"llama3.1:8b"`
	OpenAIAPIKey     string        `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIModel      string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	AnthropicAPIKey  string        `envconfig:"ANTHROPIC_API_KEY" default:""`
	AnthropicModel   string        `envconfig:"ANTHROPIC_MODEL" default:"claude-3-5-haiku-20241022"`
	RequestTimeout   time.Duration `envconfig:"REQUEST_TIMEOUT" default:"120s"`
	HealthTimeout    time.Duration `envconfig:"HEALTH_TIMEOUT" default:"5s"`
}

// TranscriptionConfig configures the speech-to-text provider
type TranscriptionConfig struct {
	AssemblyAIAPIKey string        `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	PollInterval     time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	Timeout          time.Duration `envconfig:"TIMEOUT" default:"15m"`
}

// WorkerConfig configures the background job workers
type WorkerConfig struct {
	Concurrency  int           `envconfig:"CONCURRENCY" default:"2"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"3s"`
	MaxRetries   int           `envconfig:"MAX_RETRIES" default:"3"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Summarization.Provider {
	case "rule-based", "ollama", "openai", "anthropic", "auto":
	default:
		return fmt.Errorf("unsupported SUMMARIZATION_PROVIDER %q", c.Summarization.Provider)
	}
	if c.Summarization.Provider == "openai" && c.Summarization.OpenAIAPIKey == "" {
		return fmt.Errorf("SUMMARIZATION_OPENAI_API_KEY is required for the openai provider")
	}
	if c.Summarization.Provider == "anthropic" && c.Summarization.AnthropicAPIKey == "" {
		return fmt.Errorf("SUMMARIZATION_ANTHROPIC_API_KEY is required for the anthropic provider")
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
