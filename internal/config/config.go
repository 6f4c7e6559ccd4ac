package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	S3       S3Config
	Vision   VisionConfig
	Renderer RendererConfig
	Alert    AlertConfig
	Parse    ParseConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// S3Config holds AWS S3 settings for generated label artifacts.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// VisionConfig holds document-vision service settings.
type VisionConfig struct {
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// RendererConfig holds external label-renderer settings.
type RendererConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// AlertConfig holds manual-review alert delivery settings.
type AlertConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// ParseConfig holds document intake limits.
type ParseConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
	MaxPDFPages   int   `mapstructure:"max_pdf_pages"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the ETIQO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ETIQO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "etiqo-labels")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Vision defaults
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.timeout_secs", 60)

	// Renderer defaults
	v.SetDefault("renderer.endpoint", "http://localhost:9090")
	v.SetDefault("renderer.api_key", "")
	v.SetDefault("renderer.timeout_secs", 60)

	// Alert defaults
	v.SetDefault("alert.provider", "noop")
	v.SetDefault("alert.region", "eu-west-1")
	v.SetDefault("alert.from_address", "noreply@etiqo.es")
	v.SetDefault("alert.from_name", "ETIQO")
	v.SetDefault("alert.to_address", "")

	// Parse defaults
	v.SetDefault("parse.max_file_size_mb", 25)
	v.SetDefault("parse.max_pdf_pages", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "ETIQO_SERVER_PORT",
		"server.read_timeout":   "ETIQO_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "ETIQO_SERVER_WRITE_TIMEOUT",
		"server.environment":    "ETIQO_SERVER_ENVIRONMENT",
		"s3.region":             "ETIQO_S3_REGION",
		"s3.bucket":             "ETIQO_S3_BUCKET",
		"s3.endpoint":           "ETIQO_S3_ENDPOINT",
		"s3.access_key":         "ETIQO_S3_ACCESS_KEY",
		"s3.secret_key":         "ETIQO_S3_SECRET_KEY",
		"s3.presign_expiry":     "ETIQO_S3_PRESIGN_EXPIRY",
		"vision.api_key":        "ETIQO_VISION_API_KEY",
		"vision.timeout_secs":   "ETIQO_VISION_TIMEOUT_SECS",
		"renderer.endpoint":     "ETIQO_RENDERER_ENDPOINT",
		"renderer.api_key":      "ETIQO_RENDERER_API_KEY",
		"renderer.timeout_secs": "ETIQO_RENDERER_TIMEOUT_SECS",
		"alert.provider":        "ETIQO_ALERT_PROVIDER",
		"alert.region":          "ETIQO_ALERT_REGION",
		"alert.from_address":    "ETIQO_ALERT_FROM_ADDRESS",
		"alert.from_name":       "ETIQO_ALERT_FROM_NAME",
		"alert.to_address":      "ETIQO_ALERT_TO_ADDRESS",
		"parse.max_file_size_mb": "ETIQO_PARSE_MAX_FILE_SIZE_MB",
		"parse.max_pdf_pages":    "ETIQO_PARSE_MAX_PDF_PAGES",
		"log.level":              "ETIQO_LOG_LEVEL",
		"log.format":             "ETIQO_LOG_FORMAT",
		"cors.allowed_origins":   "ETIQO_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ETIQO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ETIQO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Vision = VisionConfig{
		APIKey:      v.GetString("vision.api_key"),
		TimeoutSecs: v.GetInt("vision.timeout_secs"),
	}
	cfg.Renderer = RendererConfig{
		Endpoint:    v.GetString("renderer.endpoint"),
		APIKey:      v.GetString("renderer.api_key"),
		TimeoutSecs: v.GetInt("renderer.timeout_secs"),
	}
	cfg.Alert = AlertConfig{
		Provider:    v.GetString("alert.provider"),
		Region:      v.GetString("alert.region"),
		FromAddress: v.GetString("alert.from_address"),
		FromName:    v.GetString("alert.from_name"),
		ToAddress:   v.GetString("alert.to_address"),
	}
	cfg.Parse = ParseConfig{
		MaxFileSizeMB: v.GetInt64("parse.max_file_size_mb"),
		MaxPDFPages:   v.GetInt("parse.max_pdf_pages"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitAndTrim(v.GetString("cors.allowed_origins")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and limit sanity.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if c.S3.Bucket == "" {
		return fmt.Errorf("s3 bucket must not be empty")
	}
	if c.Renderer.Endpoint == "" {
		return fmt.Errorf("renderer endpoint must not be empty")
	}
	if c.Parse.MaxFileSizeMB <= 0 {
		return fmt.Errorf("parse max file size must be positive")
	}
	if c.Parse.MaxPDFPages < 0 {
		return fmt.Errorf("parse max pdf pages must not be negative")
	}
	if c.Alert.Provider != "noop" && c.Alert.Provider != "ses" {
		return fmt.Errorf("unknown alert provider: %s", c.Alert.Provider)
	}
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
