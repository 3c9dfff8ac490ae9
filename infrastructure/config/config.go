package config

import (
	"fmt"
	"os"
	"strconv"

	domaincfg "kgraph/domain/config"
)

// Store backend selection.
const (
	StoreBackendMemory   = "memory"
	StoreBackendDynamoDB = "dynamodb"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Persistence
	StoreBackend  string // "memory" or "dynamodb"
	AWSRegion     string
	DynamoDBTable string
	GSI1IndexName string // outgoing-edge lookups by source node
	GSI2IndexName string // incoming-edge lookups by target node
	EventBusName  string // empty disables event publishing

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool
	EnableAuth    bool

	// Graph rules and limits
	Domain *domaincfg.DomainConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		StoreBackend:  getEnv("STORE_BACKEND", StoreBackendMemory),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "kgraph"),
		GSI1IndexName: getEnv("GSI1_INDEX_NAME", "OutgoingEdgeIndex"),
		GSI2IndexName: getEnv("GSI2_INDEX_NAME", "IncomingEdgeIndex"),
		EventBusName:  getEnv("EVENT_BUS_NAME", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "kgraph"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
		EnableAuth:    getEnvBool("ENABLE_AUTH", false),

		Domain: domaincfg.LoadDomainConfig(getEnv("ENVIRONMENT", "development")),
	}

	// Policy flags and traversal limits can be tuned per deployment.
	cfg.Domain.CaseSensitiveLabels = getEnvBool("CASE_SENSITIVE_LABELS", cfg.Domain.CaseSensitiveLabels)
	cfg.Domain.TransitivePrerequisites = getEnvBool("TRANSITIVE_PREREQUISITES", cfg.Domain.TransitivePrerequisites)
	cfg.Domain.MaxPathDepth = getEnvInt("MAX_PATH_DEPTH", cfg.Domain.MaxPathDepth)
	cfg.Domain.MaxPathResults = getEnvInt("MAX_PATH_RESULTS", cfg.Domain.MaxPathResults)
	cfg.Domain.DefaultMaxDepth = getEnvInt("DEFAULT_MAX_DEPTH", cfg.Domain.DefaultMaxDepth)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreBackendMemory, StoreBackendDynamoDB:
	default:
		return fmt.Errorf("unknown STORE_BACKEND: %q", c.StoreBackend)
	}

	if c.StoreBackend == StoreBackendDynamoDB && c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required with the dynamodb backend")
	}

	if c.Environment == "production" {
		if c.EnableAuth && c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production when auth is enabled")
		}
		if c.StoreBackend == StoreBackendMemory {
			return fmt.Errorf("the memory backend is not allowed in production")
		}
	}

	return c.Domain.Validate()
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
