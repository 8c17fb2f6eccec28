// internal/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Supabase    SupabaseConfig
	AI          AIConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Stripe      StripeConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	URL          string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
	AutoMigrate  bool
}

// SupabaseConfig points at the hosted auth provider. Access tokens are
// verified locally when JWTSecret is set, otherwise against the provider.
type SupabaseConfig struct {
	URL        string
	ServiceKey string
	AnonKey    string
	JWTSecret  string
}

type AIConfig struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
	VisionModel  string
	Timeout      int // in seconds
}

type RedisConfig struct {
	URL           string
	Host          string
	Port          string
	Password      string
	DB            int
	BrandVoiceTTL int // in seconds
}

type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
	MaxUploadMB     int
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RequestsPerSecond   float64
	Burst               int
	GenerationPerMinute int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", getEnv("NODE_ENV", "development")),
		Server: ServerConfig{
			Port:         getEnv("PORT", "5000"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 120), // generation calls are slow
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "ecommerce_ai"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
			AutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Supabase: SupabaseConfig{
			URL:        strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
			ServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
			AnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
			JWTSecret:  getEnv("SUPABASE_JWT_SECRET", ""),
		},
		AI: AIConfig{
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			BaseURL:      getEnv("OPENAI_BASE_URL", ""),
			DefaultModel: getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			VisionModel:  getEnv("OPENAI_VISION_MODEL", "gpt-4o"),
			Timeout:      getEnvAsInt("OPENAI_TIMEOUT", 60),
		},
		Redis: RedisConfig{
			URL:           getEnv("REDIS_URL", ""),
			Host:          getEnv("REDIS_HOST", ""),
			Port:          getEnv("REDIS_PORT", "6379"),
			Password:      getEnv("REDIS_PASSWORD", ""),
			DB:            getEnvAsInt("REDIS_DB", 0),
			BrandVoiceTTL: getEnvAsInt("REDIS_BRAND_VOICE_TTL", 300),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
			Region:          getEnv("STORAGE_REGION", "us-east-1"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("STORAGE_BUCKET", "product-images"),
			PublicURL:       strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", ""), "/"),
			MaxUploadMB:     getEnvAsInt("STORAGE_MAX_UPLOAD_MB", 5),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:               getEnvAsInt("RATE_LIMIT_BURST", 20),
			GenerationPerMinute: getEnvAsInt("RATE_LIMIT_GENERATION_PER_MINUTE", 20),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	// Supabase storage speaks S3 under /storage/v1/s3.
	if config.Storage.Endpoint == "" && config.Supabase.URL != "" {
		config.Storage.Endpoint = config.Supabase.URL + "/storage/v1/s3"
	}
	if config.Storage.PublicURL == "" && config.Supabase.URL != "" {
		config.Storage.PublicURL = config.Supabase.URL + "/storage/v1/object/public"
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	var errs []error

	if c.Database.URL == "" {
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DATABASE_URL or DB_HOST is required"))
		}
		if c.Database.Password == "" && c.IsProduction() {
			errs = append(errs, errors.New("database password is required in production"))
		}
	}

	if c.Supabase.URL == "" {
		errs = append(errs, errors.New("SUPABASE_URL is required"))
	}
	if c.Supabase.ServiceKey == "" && c.Supabase.JWTSecret == "" {
		errs = append(errs, errors.New("SUPABASE_SERVICE_KEY or SUPABASE_JWT_SECRET is required"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (a AIConfig) Configured() bool {
	return a.APIKey != ""
}

func (a AIConfig) RequestTimeout() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Host != ""
}

func (s StorageConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) * 1024 * 1024
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
