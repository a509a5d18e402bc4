package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Session   SessionConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// IsProduction reports whether internal error details must be hidden from clients.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	// Store is "redis" (default) or "memory" for a single-instance setup without Redis
	Store         string
	Secret        string
	CookieName    string
	ShortLifetime time.Duration
	LongLifetime  time.Duration
}

type UploadConfig struct {
	Root         string
	MaxImageSize int64
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// TrustProxy honours X-Real-IP / X-Forwarded-For; set it only behind a proxy that overwrites them
	TrustProxy bool
}

type CORSConfig struct {
	AllowedOrigin string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("SESSION_STORE", "redis")
	viper.SetDefault("SESSION_COOKIE_NAME", "portal_session")
	viper.SetDefault("UPLOAD_ROOT", "./public")
	viper.SetDefault("UPLOAD_MAX_IMAGE_SIZE", 4*1024*1024)
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("RATE_LIMIT_TRUST_PROXY", false)
	viper.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	if err := viper.ReadInConfig(); err != nil {
		// Environment variables alone are enough when no .env file is shipped.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	shortLifetime, err := time.ParseDuration(viper.GetString("SESSION_SHORT_LIFETIME"))
	if err != nil {
		shortLifetime = 24 * time.Hour
	}

	longLifetime, err := time.ParseDuration(viper.GetString("SESSION_LONG_LIFETIME"))
	if err != nil {
		longLifetime = 30 * 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			Name:        viper.GetString("DB_NAME"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Store:         viper.GetString("SESSION_STORE"),
			Secret:        viper.GetString("SESSION_SECRET"),
			CookieName:    viper.GetString("SESSION_COOKIE_NAME"),
			ShortLifetime: shortLifetime,
			LongLifetime:  longLifetime,
		},
		Upload: UploadConfig{
			Root:         viper.GetString("UPLOAD_ROOT"),
			MaxImageSize: viper.GetInt64("UPLOAD_MAX_IMAGE_SIZE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
			TrustProxy:        viper.GetBool("RATE_LIMIT_TRUST_PROXY"),
		},
		CORS: CORSConfig{
			AllowedOrigin: viper.GetString("CORS_ALLOWED_ORIGIN"),
		},
	}

	if config.Session.Secret == "" {
		return nil, errors.New("SESSION_SECRET must be set")
	}

	if config.Session.Store != "redis" && config.Session.Store != "memory" {
		return nil, fmt.Errorf("unknown SESSION_STORE %q", config.Session.Store)
	}

	return config, nil
}
