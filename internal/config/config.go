package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mensah/schoolms/internal/pkg/apperrors"
)

// StorageEngine selects the persistence backend.
type StorageEngine string

const (
	// EngineFile is the single-process JSON file store (default).
	EngineFile StorageEngine = "file"
	// EnginePostgres is the relational store.
	EnginePostgres StorageEngine = "postgres"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Storage struct {
		Engine   StorageEngine `yaml:"engine" env:"STORAGE_ENGINE"`
		FilePath string        `yaml:"file_path" env:"STORAGE_FILE_PATH"`
	} `yaml:"storage"`

	Database struct {
		Host            string `yaml:"host" env:"STORAGE_HOST"`
		Port            string `yaml:"port" env:"STORAGE_PORT"`
		User            string `yaml:"user" env:"STORAGE_USER"`
		Password        string `yaml:"password" env:"STORAGE_PASSWORD"`
		DBName          string `yaml:"dbname" env:"STORAGE_DATABASE"`
		SSLMode         string `yaml:"sslmode" env:"STORAGE_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"STORAGE_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"STORAGE_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"STORAGE_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Missing config file is fine, defaults plus env cover it
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Storage.Engine = EngineFile
	config.Storage.FilePath = ".store/file.json"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 5
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "schoolms.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid. A selected
// relational backend with missing connection parameters is fatal here, never
// a silent fallback to the file store.
func validateConfig(config *Config) error {
	switch config.Storage.Engine {
	case EngineFile:
		if config.Storage.FilePath == "" {
			return apperrors.NewConfigurationError("storage file path is required")
		}
	case EnginePostgres:
		if config.Database.User == "" {
			return apperrors.NewConfigurationError("database user is required")
		}
		if config.Database.Password == "" {
			return apperrors.NewConfigurationError("database password is required")
		}
		if config.Database.Host == "" {
			return apperrors.NewConfigurationError("database host is required")
		}
		if config.Database.DBName == "" {
			return apperrors.NewConfigurationError("database name is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return apperrors.NewConfigurationError("invalid connection max lifetime: " + err.Error())
		}
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown storage engine %q", config.Storage.Engine))
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return apperrors.NewConfigurationError("invalid JWT access token expiration: " + err.Error())
	}

	return nil
}

// GetPostgresDSN returns the postgres connection string
func (c *Config) GetPostgresDSN() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
