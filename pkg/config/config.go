package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Seed sources for the in-memory dataset.
const (
	SeedSourceNone     = "none"
	SeedSourcePostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Analytics AnalyticsConfig
	ETL       ETLConfig
	Reports   ReportsConfig
	Admin     AdminConfig

	SeedSource      string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Issuer            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AnalyticsConfig governs caching and thresholds of the quality analytics endpoints.
type AnalyticsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	TrendSeed    int64
	TrendJitter  float64

	LowGPAThreshold         float64
	LowRetentionThreshold   float64
	HighRatioThreshold      float64
	LowUtilizationThreshold float64
}

// ETLConfig configures the background job queue used for reloads and exports.
type ETLConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// ReportsConfig configures report export storage.
type ReportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

// AdminConfig seeds the bootstrap administrator account.
type AdminConfig struct {
	Email    string
	Password string
	FullName string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.SeedSource = strings.ToLower(v.GetString("SEED_SOURCE"))
	cfg.ShutdownTimeout = parseDuration(v.GetString("SHUTDOWN_TIMEOUT"), 10*time.Second)

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Issuer:            v.GetString("JWT_ISSUER"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 15*time.Minute),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Analytics = AnalyticsConfig{
		CacheEnabled:            v.GetBool("ANALYTICS_CACHE_ENABLED"),
		CacheTTL:                parseDuration(v.GetString("ANALYTICS_CACHE_TTL"), 10*time.Minute),
		TrendSeed:               v.GetInt64("ANALYTICS_TREND_SEED"),
		TrendJitter:             v.GetFloat64("ANALYTICS_TREND_JITTER"),
		LowGPAThreshold:         v.GetFloat64("RISK_LOW_GPA"),
		LowRetentionThreshold:   v.GetFloat64("RISK_LOW_RETENTION"),
		HighRatioThreshold:      v.GetFloat64("RISK_HIGH_RATIO"),
		LowUtilizationThreshold: v.GetFloat64("RISK_LOW_UTILIZATION"),
	}

	cfg.ETL = ETLConfig{
		Workers:    v.GetInt("ETL_WORKERS"),
		MaxRetries: v.GetInt("ETL_MAX_RETRIES"),
		RetryDelay: parseDuration(v.GetString("ETL_RETRY_DELAY"), 2*time.Second),
	}

	cfg.Reports = ReportsConfig{
		StorageDir:      v.GetString("REPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("REPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("REPORTS_SIGNED_URL_TTL"), 24*time.Hour),
	}

	cfg.Admin = AdminConfig{
		Email:    v.GetString("ADMIN_EMAIL"),
		Password: v.GetString("ADMIN_PASSWORD"),
		FullName: v.GetString("ADMIN_FULL_NAME"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("SEED_SOURCE", SeedSourceNone)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "academic_admin")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "academic-quality-api")
	v.SetDefault("JWT_EXPIRATION", "15m")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ANALYTICS_CACHE_ENABLED", false)
	v.SetDefault("ANALYTICS_CACHE_TTL", "10m")
	v.SetDefault("ANALYTICS_TREND_SEED", 1)
	v.SetDefault("ANALYTICS_TREND_JITTER", 5.0)
	v.SetDefault("RISK_LOW_GPA", 2.8)
	v.SetDefault("RISK_LOW_RETENTION", 75.0)
	v.SetDefault("RISK_HIGH_RATIO", 25.0)
	v.SetDefault("RISK_LOW_UTILIZATION", 50.0)

	v.SetDefault("ETL_WORKERS", 1)
	v.SetDefault("ETL_MAX_RETRIES", 3)
	v.SetDefault("ETL_RETRY_DELAY", "2s")

	v.SetDefault("REPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("REPORTS_SIGNED_URL_SECRET", "dev_reports_secret")
	v.SetDefault("REPORTS_SIGNED_URL_TTL", "24h")

	v.SetDefault("ADMIN_EMAIL", "admin@example.edu")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("ADMIN_FULL_NAME", "Administrator")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
