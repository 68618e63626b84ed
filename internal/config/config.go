package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Identity providers accepted by IDENTITY_PROVIDER.
const (
	ProviderFirebase = "firebase"
	ProviderGoogle   = "google"
	ProviderHMAC     = "hmac"
)

// Config holds all configuration for the service.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`

	MongoURI      string        `mapstructure:"MONGO_URI"`
	MongoDatabase string        `mapstructure:"MONGO_DATABASE"`
	MongoTimeout  time.Duration `mapstructure:"MONGO_TIMEOUT"`

	IdentityProvider  string `mapstructure:"IDENTITY_PROVIDER"`
	FirebaseProjectID string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleClientID    string `mapstructure:"GOOGLE_CLIENT_ID"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	TokenCacheTTL time.Duration `mapstructure:"TOKEN_CACHE_TTL"`

	NATSURL string `mapstructure:"NATS_URL"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	FrontendURL        string `mapstructure:"FRONTEND_URL"`
	StaticDir          string `mapstructure:"STATIC_DIR"`
	DefaultDisplayName string `mapstructure:"DEFAULT_DISPLAY_NAME"`

	PrometheusMetricsPort  string        `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ShutdownTimeout        time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
	LogOutputFile string `mapstructure:"LOG_OUTPUT_FILE"`
}

var defaults = map[string]any{
	"SERVICE_NAME":                "tidar-web-app",
	"HTTP_PORT":                   "3000",
	"MONGO_URI":                   "mongodb://localhost:27017",
	"MONGO_DATABASE":              "tidar",
	"MONGO_TIMEOUT":               "10s",
	"IDENTITY_PROVIDER":           ProviderFirebase,
	"FIREBASE_PROJECT_ID":         "",
	"GOOGLE_CLIENT_ID":            "",
	"JWT_SECRET":                  "",
	"REDIS_ADDR":                  "",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"TOKEN_CACHE_TTL":             "5m",
	"NATS_URL":                    "",
	"SMTP_HOST":                   "",
	"SMTP_PORT":                   587,
	"SMTP_USERNAME":               "",
	"SMTP_PASSWORD":               "",
	"SMTP_FROM":                   "",
	"FRONTEND_URL":                "",
	"STATIC_DIR":                  "public",
	"DEFAULT_DISPLAY_NAME":        "Nama Pengguna",
	"PROMETHEUS_METRICS_PORT":     "9090",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"SHUTDOWN_TIMEOUT":            "15s",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
	"LOG_OUTPUT_FILE":             "stdout",
}

// LoadConfig reads an optional .env file and then the process environment.
// Environment variables win over .env values because godotenv never overrides them.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.IdentityProvider = strings.ToLower(strings.TrimSpace(cfg.IdentityProvider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected identity provider has what it needs.
func (c *Config) Validate() error {
	switch c.IdentityProvider {
	case ProviderFirebase:
		if c.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required for the firebase identity provider")
		}
	case ProviderGoogle:
		if c.GoogleClientID == "" {
			return errors.New("GOOGLE_CLIENT_ID is required for the google identity provider")
		}
	case ProviderHMAC:
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required for the hmac identity provider")
		}
	default:
		return fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider)
	}
	if c.MongoURI == "" || c.MongoDatabase == "" {
		return errors.New("MONGO_URI and MONGO_DATABASE are required")
	}
	return nil
}

// AllowedOrigins splits FRONTEND_URL into trimmed, non-empty origins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// SMTPEnabled reports whether verification notices can be mailed.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}
