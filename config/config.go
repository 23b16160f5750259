package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Neo4j         Neo4jConfig
	Gemini        GeminiConfig
	Rag           RagConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Neo4jConfig holds graph database connection configuration
type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

// GeminiConfig holds Gemini provider configuration
type GeminiConfig struct {
	APIKey          string
	BaseURL         string
	GenerationModel string
	EmbeddingModel  string
	Timeout         time.Duration
}

// RagConfig holds retrieval and answer-shaping tuning knobs.
// PrimaryWidth grounds the answer; RelatedWidth only sources discovery cards.
type RagConfig struct {
	PrimaryWidth  int
	RelatedWidth  int
	MaxRelated    int
	SummaryLength int
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or console
}

// New creates a new Config instance by loading environment variables
func New() (*Config, error) {
	// Load .env file if it exists (no-op when absent)
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("PORT", 3000),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Neo4j: Neo4jConfig{
			URI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
			User:     getEnv("NEO4J_USER", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", ""),
			Database: getEnv("NEO4J_DATABASE", "neo4j"),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			BaseURL:         getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			GenerationModel: getEnv("GEMINI_GENERATION_MODEL", "gemini-flash-latest"),
			EmbeddingModel:  getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			Timeout:         getEnvAsDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
		Rag: RagConfig{
			PrimaryWidth:  getEnvAsInt("RAG_PRIMARY_WIDTH", 5),
			RelatedWidth:  getEnvAsInt("RAG_RELATED_WIDTH", 10),
			MaxRelated:    getEnvAsInt("RAG_MAX_RELATED", 4),
			SummaryLength: getEnvAsInt("RAG_SUMMARY_LENGTH", 120),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if c.Neo4j.URI == "" {
		return fmt.Errorf("neo4j URI is required")
	}
	if c.Neo4j.User == "" {
		return fmt.Errorf("neo4j user is required")
	}
	if c.IsProduction() {
		if c.Neo4j.Password == "" {
			return fmt.Errorf("neo4j password is required in production")
		}
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini API key is required in production")
		}
	}
	if c.Rag.PrimaryWidth < 1 {
		return fmt.Errorf("primary retrieval width must be at least 1")
	}
	if c.Rag.RelatedWidth < c.Rag.PrimaryWidth {
		return fmt.Errorf("related retrieval width must not be smaller than the primary width")
	}
	if c.Rag.MaxRelated < 0 {
		return fmt.Errorf("max related articles must not be negative")
	}
	if c.Rag.SummaryLength < 1 {
		return fmt.Errorf("summary length must be at least 1")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
