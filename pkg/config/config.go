package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Fireflies FirefliesConfig
	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Todoist   TodoistConfig
	Telegram  TelegramConfig
	Pipeline  PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string `envconfig:"PORT" default:"8080"`
	Host            string `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"meeting_intel"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"5"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds object storage configuration for raw payload archival
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-intel"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// FirefliesConfig holds transcript provider configuration
type FirefliesConfig struct {
	APIKey  string `envconfig:"FIREFLIES_API_KEY"`
	BaseURL string `envconfig:"FIREFLIES_BASE_URL" default:"https://api.fireflies.ai/graphql"`
}

// AnthropicConfig holds summarization model configuration
type AnthropicConfig struct {
	APIKey    string `envconfig:"ANTHROPIC_API_KEY"`
	BaseURL   string `envconfig:"ANTHROPIC_BASE_URL" default:"https://api.anthropic.com"`
	Model     string `envconfig:"ANTHROPIC_MODEL" default:"claude-3-5-sonnet-20241022"`
	MaxTokens int    `envconfig:"ANTHROPIC_MAX_TOKENS" default:"4096"`
}

// OpenAIConfig holds embedding provider configuration
type OpenAIConfig struct {
	APIKey         string `envconfig:"OPENAI_API_KEY"`
	BaseURL        string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	EmbeddingModel string `envconfig:"OPENAI_EMBEDDING_MODEL" default:"text-embedding-ada-002"`
}

// TodoistConfig holds task tracker configuration
type TodoistConfig struct {
	APIToken string `envconfig:"TODOIST_API_TOKEN"`
	BaseURL  string `envconfig:"TODOIST_BASE_URL" default:"https://api.todoist.com/rest/v2"`
}

// TelegramConfig holds notification bot configuration
type TelegramConfig struct {
	BotToken      string `envconfig:"TELEGRAM_BOT_TOKEN"`
	BaseURL       string `envconfig:"TELEGRAM_BASE_URL" default:"https://api.telegram.org"`
	DefaultChatID int64  `envconfig:"TELEGRAM_DEFAULT_CHAT_ID" default:"0"`
}

// PipelineConfig holds tunables for ingestion and retrieval
type PipelineConfig struct {
	ChunkSize        int `envconfig:"PIPELINE_CHUNK_SIZE" default:"1000"`
	ChunkOverlap     int `envconfig:"PIPELINE_CHUNK_OVERLAP" default:"200"`
	RetrievalTopK    int `envconfig:"PIPELINE_RETRIEVAL_TOP_K" default:"5"`
	TranscriptLimit  int `envconfig:"PIPELINE_TRANSCRIPT_CHAR_LIMIT" default:"150000"`
	WorkerInterval   int `envconfig:"PIPELINE_WORKER_INTERVAL_SECONDS" default:"30"`
	SummaryLockTTL   int `envconfig:"PIPELINE_SUMMARY_LOCK_TTL_SECONDS" default:"300"`
	WebhookDedupeTTL int `envconfig:"PIPELINE_WEBHOOK_DEDUPE_TTL_SECONDS" default:"3600"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Fireflies.APIKey == "" {
		return fmt.Errorf("FIREFLIES_API_KEY is required")
	}
	if c.Anthropic.APIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
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
