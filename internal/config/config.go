package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	UserTokenTTL   time.Duration
	AdminTokenTTL  time.Duration
	NewsCacheTTL   time.Duration
	AllowedOrigins string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("UNION")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Union Portal API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.user_ttl", "168h")
	v.SetDefault("token.admin_ttl", "24h")
	v.SetDefault("news.cache_ttl", "5m")
	v.SetDefault("cors.origins", "*")

	userTTL, err := time.ParseDuration(v.GetString("token.user_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid user token ttl: %w", err)
	}

	adminTTL, err := time.ParseDuration(v.GetString("token.admin_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid admin token ttl: %w", err)
	}

	newsTTL, err := time.ParseDuration(v.GetString("news.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid news cache ttl: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		DatabaseURL:    v.GetString("database.url"),
		RedisURL:       v.GetString("redis.url"),
		JWTSecret:      v.GetString("jwt.secret"),
		UserTokenTTL:   userTTL,
		AdminTokenTTL:  adminTTL,
		NewsCacheTTL:   newsTTL,
		AllowedOrigins: v.GetString("cors.origins"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
