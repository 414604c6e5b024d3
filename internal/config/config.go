package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Dispatch  DispatchConfig
	Directory DirectoryConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// DispatchConfig controls the emergency escalation timers. The cab fallback
// must be longer than the ambulance countdown or it would always win.
type DispatchConfig struct {
	CountdownSeconds   int `mapstructure:"countdown_seconds"`
	CabFallbackSeconds int `mapstructure:"cab_fallback_seconds"`
}

func (c DispatchConfig) Countdown() time.Duration {
	return time.Duration(c.CountdownSeconds) * time.Second
}

func (c DispatchConfig) CabFallback() time.Duration {
	return time.Duration(c.CabFallbackSeconds) * time.Second
}

type DirectoryConfig struct {
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

func (c DirectoryConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("dispatch.countdown_seconds", 120)
	viper.SetDefault("dispatch.cab_fallback_seconds", 125)
	viper.SetDefault("directory.cache_ttl_seconds", 60)
	viper.SetDefault("ratelimit.rps", 50)
	viper.SetDefault("ratelimit.burst", 100)
	viper.SetDefault("logging.level", "info")
}
