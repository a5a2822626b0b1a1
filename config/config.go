package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Tracking   TrackingConfig
	RateLimit  RateLimitConfig
	Firebase   FirebaseConfig
	Cloudinary CloudinaryConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type TrackingConfig struct {
	// BroadcastInterval is how often the live hub pushes a locations snapshot.
	BroadcastInterval time.Duration
	// StaleAfter drops guards whose last sample is older than this from snapshots.
	StaleAfter time.Duration
	// ReminderWindow is how far ahead the shift reminder sweeper looks.
	ReminderWindow time.Duration
	ReminderSweep  time.Duration
}

type RateLimitConfig struct {
	// Requests allowed per caller within Window.
	Requests int
	Window   time.Duration
}

type FirebaseConfig struct {
	ServiceAccountPath string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         env("PORT", "8080"),
			Env:          env("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             env("DATABASE_DSN", "vigil:vigil@tcp(localhost:3306)/vigil?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  env("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: env("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "vigil",
		},
		Tracking: TrackingConfig{
			BroadcastInterval: time.Duration(envInt("LIVE_BROADCAST_INTERVAL_SEC", 5)) * time.Second,
			StaleAfter:        10 * time.Minute,
			ReminderWindow:    30 * time.Minute,
			ReminderSweep:     time.Minute,
		},
		RateLimit: RateLimitConfig{
			Requests: envInt("RATE_LIMIT_REQUESTS", 300),
			Window:   time.Duration(envInt("RATE_LIMIT_WINDOW_SEC", 60)) * time.Second,
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: env("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: env("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    env("CLOUDINARY_API_KEY", ""),
			APISecret: env("CLOUDINARY_API_SECRET", ""),
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
