package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Accounts  AccountsConfig  `yaml:"accounts"`
	API       APIConfig       `yaml:"api"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

// StorageConfig selects the record store
type StorageConfig struct {
	Type    string `yaml:"type"`     // "file" or "postgres"
	DataDir string `yaml:"data_dir"` // For file storage
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	Autosave      string `yaml:"autosave"`
	OverdueReport string `yaml:"overdue_report"`
}

// AccountsConfig contains staff account settings
type AccountsConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

// APIConfig contains HTTP API limits
type APIConfig struct {
	ReloadPerMinute int `yaml:"reload_per_minute"`
	ReloadBurst     int `yaml:"reload_burst"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("CLUB_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("CLUB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("CLUB_STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}
	if val := os.Getenv("CLUB_DATA_DIR"); val != "" {
		c.Storage.DataDir = val
	}

	// Scheduler
	if val := os.Getenv("CLUB_AUTOSAVE_SCHEDULE"); val != "" {
		c.Scheduler.Autosave = val
	}
	if val := os.Getenv("CLUB_OVERDUE_REPORT_SCHEDULE"); val != "" {
		c.Scheduler.OverdueReport = val
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = 10
	}

	// Storage validation
	if c.Storage.Type == "" {
		c.Storage.Type = "file"
	}
	switch c.Storage.Type {
	case "file":
		if c.Storage.DataDir == "" {
			c.Storage.DataDir = "data"
		}
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	default:
		return fmt.Errorf("unknown storage type: %q", c.Storage.Type)
	}

	// Scheduler defaults
	if c.Scheduler.Autosave == "" {
		c.Scheduler.Autosave = "@every 1m"
	}
	if c.Scheduler.OverdueReport == "" {
		c.Scheduler.OverdueReport = "0 0 8 * * *" // 8 AM UTC
	}

	// Accounts defaults
	if c.Accounts.BcryptCost == 0 {
		c.Accounts.BcryptCost = 10
	}
	if c.Accounts.BcryptCost < 4 || c.Accounts.BcryptCost > 31 {
		return fmt.Errorf("invalid bcrypt cost: %d", c.Accounts.BcryptCost)
	}

	// API defaults
	if c.API.ReloadPerMinute <= 0 {
		c.API.ReloadPerMinute = 2
	}
	if c.API.ReloadBurst <= 0 {
		c.API.ReloadBurst = 1
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ShutdownTimeout bounds the graceful HTTP shutdown
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}
