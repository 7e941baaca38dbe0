package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backend identifiers accepted by STORAGE_TYPE.
const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// DefaultPath is where LoadFromEnv looks for an optional YAML file.
const DefaultPath = "config/config.yaml"

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port" env:"PORT"`
	Host string `yaml:"host" env:"SERVER_HOST"`
}

// GetHost returns the server host, with ECS/Lambda detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	return c.Host
}

// Addr returns host:port for http.Server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.GetHost(), c.Port)
}

// StorageConfig selects and configures the subscriber storage backend.
type StorageConfig struct {
	Type             string `yaml:"type" env:"STORAGE_TYPE"`
	DynamoDBTable    string `yaml:"dynamodb_table" env:"DYNAMODB_TABLE"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint" env:"DYNAMODB_ENDPOINT"` // local DynamoDB, e.g. http://localhost:8000
	AWSRegion        string `yaml:"aws_region" env:"AWS_REGION"`
	AWSProfile       string `yaml:"aws_profile" env:"AWS_PROFILE_OVERRIDE"` // Empty string uses default credential chain
	RedisURL         string `yaml:"redis_url" env:"REDIS_URL"`
	RedisKeyPrefix   string `yaml:"redis_key_prefix" env:"REDIS_KEY_PREFIX"`
	DatabaseURL      string `yaml:"database_url" env:"DATABASE_URL"`
}

// GetAWSProfile returns the AWS profile to load credentials from.
func (c StorageConfig) GetAWSProfile() string {
	if c.AWSProfile == "none" || c.AWSProfile == "iam" {
		return ""
	}
	// On ECS/Lambda, don't use a profile - use IAM role
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return ""
	}
	return c.AWSProfile
}

// LogConfig holds structured logger settings.
type LogConfig struct {
	Level     string `yaml:"level" env:"LOG_LEVEL"`
	RedactPII string `yaml:"redact_pii" env:"LOG_REDACT_PII"`
}

// ShouldRedactPII defaults to true when unset or unparseable.
func (c LogConfig) ShouldRedactPII() bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.RedactPII))
	if err != nil {
		return true
	}
	return v
}

// Load reads and parses a YAML configuration file, then applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file (if present) and the YAML file at path (if present)
// before reading env vars, so the service runs from env alone on Lambda/ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}

	c.Storage.Type = strings.ToLower(strings.TrimSpace(c.Storage.Type))
	if c.Storage.Type == "" {
		c.Storage.Type = StorageDynamoDB
	}
	if c.Storage.DynamoDBTable == "" {
		c.Storage.DynamoDBTable = "newsletter_subscribers"
	}
	if c.Storage.AWSRegion == "" {
		c.Storage.AWSRegion = "us-east-1"
	}
	if c.Storage.RedisURL == "" {
		c.Storage.RedisURL = "redis://localhost:6379/0"
	}
	if c.Storage.RedisKeyPrefix == "" {
		c.Storage.RedisKeyPrefix = "newsletter:subscriber:"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory, StorageDynamoDB, StorageRedis:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	return nil
}
