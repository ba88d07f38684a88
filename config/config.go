package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds all configuration for the server. Tags use
// mapstructure for viper unmarshalling; every field can come from a
// config.yaml or from the environment.
type ServerConfig struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`

	CacheBackend   string `mapstructure:"CACHE_BACKEND"` // "memory" or "redis"
	RedisURL       string `mapstructure:"REDIS_URL"`
	RedisKeyPrefix string `mapstructure:"REDIS_KEY_PREFIX"`

	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`

	AccessTokenTTLMin   int `mapstructure:"ACCESS_TOKEN_TTL_MIN"`
	RefreshTokenTTLHour int `mapstructure:"REFRESH_TOKEN_TTL_HOUR"`
	BcryptCost          int `mapstructure:"BCRYPT_COST"`
}

// AccessTokenTTL returns the access-token lifetime as a duration.
func (c *ServerConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMin) * time.Minute
}

// RefreshTokenTTL returns how long stored pairs stay refreshable.
func (c *ServerConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLHour) * time.Hour
}

// LoadConfig reads configuration from file, environment variables, and
// defaults, in increasing order of precedence for env over file.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/vaporized/")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("REDIS_KEY_PREFIX", "vaporized")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/vaporized_dev")
	v.SetDefault("MONGO_DB_NAME", "vaporized_dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("ACCESS_TOKEN_TTL_MIN", 60)    // 1 hour
	v.SetDefault("REFRESH_TOKEN_TTL_HOUR", 720) // 30 days
	v.SetDefault("BCRYPT_COST", 0)              // 0 selects bcrypt.DefaultCost

	if err := v.ReadInConfig(); err != nil {
		// A missing config file means defaults plus env; anything else
		// (permissions, malformed yaml) is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
