package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application settings.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	RefData  RefDataConfig  `yaml:"refdata"`
	Log      LogConfig      `yaml:"log"`
	Export   ExportConfig   `yaml:"export"`
}

// ServerConfig - HTTP server settings
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig describes the row store connection.
// Driver is "postgres" or "sqlite"; SQLitePath is used only by the latter.
type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	DBName     string `yaml:"dbname"`
	SSLMode    string `yaml:"sslmode"`
	SQLitePath string `yaml:"sqlite_path"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// RefDataConfig locates the local reference data file (department list).
type RefDataConfig struct {
	Path string `yaml:"path"`
}

// LogConfig - logging settings; File enables a rotated log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// ExportConfig sets the filename prefixes of CSV exports.
type ExportConfig struct {
	WorkPrefix   string `yaml:"work_prefix"`
	BackupPrefix string `yaml:"backup_prefix"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Database: DatabaseConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Password:   "postgres",
			DBName:     "logbook",
			SSLMode:    "disable",
			SQLitePath: "data/logbook.db",
		},
		RefData: RefDataConfig{Path: "data/refdata.bolt"},
		Log:     LogConfig{Level: "info", Format: "json", MaxSizeMB: 50, MaxBackups: 3},
		Export:  ExportConfig{WorkPrefix: "IT_Logbook", BackupPrefix: "Backup_DB_Logs"},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by LOGBOOK_CONFIG, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("LOGBOOK_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("DB_NAME", c.Database.DBName)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.SQLitePath = getEnv("DB_SQLITE_PATH", c.Database.SQLitePath)

	c.RefData.Path = getEnv("REFDATA_PATH", c.RefData.Path)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)

	c.Export.WorkPrefix = getEnv("EXPORT_WORK_PREFIX", c.Export.WorkPrefix)
	c.Export.BackupPrefix = getEnv("EXPORT_BACKUP_PREFIX", c.Export.BackupPrefix)
}

// getEnv returns the environment variable or the fallback value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
