package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store driver names accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Grading  GradingConfig
	Gateway  GatewayConfig
	Cache    CacheConfig
}

// StoreConfig selects the backing store implementation.
type StoreConfig struct {
	Driver string
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
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	InviteTTL  time.Duration
}

// AuthConfig tunes the login flows. DemoMode restores the historical demo
// behaviour where any password is accepted for a known username and the
// change-password endpoint skips the current-password check.
type AuthConfig struct {
	DemoMode      bool
	StudentSecret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// GradingConfig points at the TOML file holding grade bands and attendance
// status labels.
type GradingConfig struct {
	File string
}

// CacheConfig governs the settings read-through cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// GatewayConfig configures the outbound client used when this process fronts
// a remote copy of the API. Resolution order for the base URL: explicit
// override, desktop wrapper endpoint, mobile wrapper default, cloud-hosting
// relative path, then a relative /api.
type GatewayConfig struct {
	BaseURL    string
	DesktopURL string
	MobileURL  string
	CloudPath  string
	Timeout    time.Duration
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{Driver: v.GetString("STORE_DRIVER")}

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
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		InviteTTL:  parseDuration(v.GetString("INVITE_TOKEN_TTL"), 72*time.Hour),
	}

	cfg.Auth = AuthConfig{
		DemoMode:      v.GetBool("AUTH_DEMO_MODE"),
		StudentSecret: v.GetString("AUTH_STUDENT_SECRET"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Grading = GradingConfig{File: v.GetString("GRADING_FILE")}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_SETTINGS_CACHE"),
		TTL:     parseDuration(v.GetString("SETTINGS_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Gateway = GatewayConfig{
		BaseURL:    v.GetString("GATEWAY_BASE_URL"),
		DesktopURL: v.GetString("GATEWAY_DESKTOP_URL"),
		MobileURL:  v.GetString("GATEWAY_MOBILE_URL"),
		CloudPath:  v.GetString("GATEWAY_CLOUD_PATH"),
		Timeout:    parseDuration(v.GetString("GATEWAY_TIMEOUT"), 30*time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "school_exam")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("INVITE_TOKEN_TTL", "72h")

	v.SetDefault("AUTH_DEMO_MODE", true)
	v.SetDefault("AUTH_STUDENT_SECRET", "student123")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GRADING_FILE", "grading.toml")

	v.SetDefault("ENABLE_SETTINGS_CACHE", false)
	v.SetDefault("SETTINGS_CACHE_TTL", "5m")

	v.SetDefault("GATEWAY_BASE_URL", "")
	v.SetDefault("GATEWAY_DESKTOP_URL", "")
	v.SetDefault("GATEWAY_MOBILE_URL", "")
	v.SetDefault("GATEWAY_CLOUD_PATH", "")
	v.SetDefault("GATEWAY_TIMEOUT", "30s")
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
