package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DB     DBConfig
	Import ImportConfig
	Log    LogConfig
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ImportConfig holds spreadsheet import settings.
type ImportConfig struct {
	// RefYear is the year that year-less spreadsheet dates resolve to.
	// Zero means the current year.
	RefYear int `mapstructure:"ref_year"`
	// BatchSize is the multi-row insert batch size for high-volume tables.
	BatchSize int `mapstructure:"batch_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from environment variables with the PPETRACK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PPETRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "ppetrack")
	v.SetDefault("db.password", "ppetrack_secret")
	v.SetDefault("db.name", "ppetrack_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Import defaults
	v.SetDefault("import.ref_year", 0)
	v.SetDefault("import.batch_size", 500)

	// Log defaults
	v.SetDefault("log.level", "info")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"db.host":           "PPETRACK_DB_HOST",
		"db.port":           "PPETRACK_DB_PORT",
		"db.user":           "PPETRACK_DB_USER",
		"db.password":       "PPETRACK_DB_PASSWORD",
		"db.name":           "PPETRACK_DB_NAME",
		"db.sslmode":        "PPETRACK_DB_SSLMODE",
		"db.max_open":       "PPETRACK_DB_MAX_OPEN",
		"db.max_idle":       "PPETRACK_DB_MAX_IDLE",
		"import.ref_year":   "PPETRACK_IMPORT_REF_YEAR",
		"import.batch_size": "PPETRACK_IMPORT_BATCH_SIZE",
		"log.level":         "PPETRACK_LOG_LEVEL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Import = ImportConfig{
		RefYear:   v.GetInt("import.ref_year"),
		BatchSize: v.GetInt("import.batch_size"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}
	return cfg, nil
}
