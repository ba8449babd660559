package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Claims yang disimpan di dalam token admin
type JWTClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	Driver          string // "mysql" atau "postgres"
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RecognitionConfig struct {
	DistanceThreshold float64
	EmbeddingDim      int
	ExtractorURL      string
	ExtractorTimeout  time.Duration
}

type StorageConfig struct {
	FacesDir          string
	CapturedImagesDir string
}

type ScheduleConfig struct {
	Timezone     string
	DailyResetAt string // HH:MM, waktu lokal
}

type AuthConfig struct {
	JWTKey            []byte
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPasswordHash string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Recognition RecognitionConfig
	Storage     StorageConfig
	Schedule    ScheduleConfig
	Auth        AuthConfig
}

// Location returns the configured local zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Schedule.Timezone, err)
	}
	return loc, nil
}

func Load() (*Config, error) {
	// File .env hanya ada di lokal, di produksi variabel datang dari environment.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Recognition: RecognitionConfig{
			DistanceThreshold: v.GetFloat64("DISTANCE_THRESHOLD"),
			EmbeddingDim:      v.GetInt("EMBEDDING_DIM"),
			ExtractorURL:      v.GetString("EXTRACTOR_URL"),
			ExtractorTimeout:  v.GetDuration("EXTRACTOR_TIMEOUT"),
		},
		Storage: StorageConfig{
			FacesDir:          v.GetString("FACES_DIR"),
			CapturedImagesDir: v.GetString("CAPTURED_IMAGES_DIR"),
		},
		Schedule: ScheduleConfig{
			Timezone:     v.GetString("TIMEZONE"),
			DailyResetAt: v.GetString("DAILY_RESET_AT"),
		},
		Auth: AuthConfig{
			JWTKey:            []byte(v.GetString("JWT_KEY")),
			TokenTTL:          v.GetDuration("JWT_TTL"),
			AdminUsername:     v.GetString("ADMIN_USERNAME"),
			AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8000)
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DISTANCE_THRESHOLD", 0.5)
	v.SetDefault("EMBEDDING_DIM", 512)
	v.SetDefault("EXTRACTOR_URL", "http://localhost:5000")
	v.SetDefault("EXTRACTOR_TIMEOUT", "10s")
	v.SetDefault("FACES_DIR", "data/dataset")
	v.SetDefault("CAPTURED_IMAGES_DIR", "data/captured_images")
	v.SetDefault("TIMEZONE", "Asia/Jakarta")
	v.SetDefault("DAILY_RESET_AT", "00:00")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("ADMIN_USERNAME", "admin")
}

func validate(cfg *Config) error {
	if cfg.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.DB.Driver != "mysql" && cfg.DB.Driver != "postgres" {
		return fmt.Errorf("DB_DRIVER must be mysql or postgres, got %q", cfg.DB.Driver)
	}
	if len(cfg.Auth.JWTKey) == 0 {
		return fmt.Errorf("JWT_KEY is required")
	}
	if cfg.Recognition.DistanceThreshold <= 0 || cfg.Recognition.DistanceThreshold > 2 {
		return fmt.Errorf("DISTANCE_THRESHOLD must be in (0, 2], got %v", cfg.Recognition.DistanceThreshold)
	}
	if cfg.Recognition.EmbeddingDim <= 0 {
		return fmt.Errorf("EMBEDDING_DIM must be positive")
	}
	if _, err := time.Parse("15:04", cfg.Schedule.DailyResetAt); err != nil {
		return fmt.Errorf("DAILY_RESET_AT must be HH:MM, got %q", cfg.Schedule.DailyResetAt)
	}
	if _, err := cfg.Location(); err != nil {
		return err
	}
	return nil
}
