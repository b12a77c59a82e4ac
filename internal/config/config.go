package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Business  BusinessConfig  `mapstructure:"business"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	StandardWorkingDays int    `mapstructure:"STANDARD_WORKING_DAYS"`
	ScheduleCacheTTL    string `mapstructure:"SCHEDULE_CACHE_TTL"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("STANDARD_WORKING_DAYS", 22)
	viper.SetDefault("SCHEDULE_CACHE_TTL", "24h")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Africa/Cairo")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Business.StandardWorkingDays <= 0 {
		return fmt.Errorf("STANDARD_WORKING_DAYS must be greater than 0")
	}

	// Validate schedule cache TTL
	if _, err := time.ParseDuration(c.Business.ScheduleCacheTTL); err != nil {
		return fmt.Errorf("SCHEDULE_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetScheduleCacheTTL returns the schedule cache TTL as duration
func (c *Config) GetScheduleCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Business.ScheduleCacheTTL)
	return ttl
}

// GetSchedulerLocation returns the scheduler timezone
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, _ := time.LoadLocation(c.Scheduler.Timezone)
	return loc
}
