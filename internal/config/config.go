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
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Storage   StorageConfig
	Render    RenderConfig
	Upload    UploadConfig
	Log       LogConfig
	CORS      CORSConfig
	Email     EmailConfig
	Retention RetentionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings for the admin gate.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// AdminConfig holds the single-operator admin credentials. PasswordHash is a
// bcrypt hash; when empty, Password is compared directly (development only).
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

// StorageConfig holds object storage settings. Provider is "local" or "s3".
type StorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BaseDir    string `mapstructure:"base_dir"`
	UploadsDir string `mapstructure:"uploads_dir"`
	RendersDir string `mapstructure:"renders_dir"`
	Region     string `mapstructure:"region"`
	Bucket     string `mapstructure:"bucket"`
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
}

// RenderConfig holds document renderer settings.
type RenderConfig struct {
	WkhtmltopdfPath string        `mapstructure:"wkhtmltopdf_path"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// UploadConfig holds PDF upload intake settings.
type UploadConfig struct {
	MaxFileSizeMB int64   `mapstructure:"max_file_size_mb"`
	RatePerSec    float64 `mapstructure:"rate_per_sec"`
	RateBurst     int     `mapstructure:"rate_burst"`
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

// EmailConfig holds deliverable mailing settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// RetentionConfig holds archive/cleanup day thresholds.
type RetentionConfig struct {
	ArchiveAfterDays int `mapstructure:"archive_after_days"`
	CleanupAfterDays int `mapstructure:"cleanup_after_days"`
}

// Load reads configuration from environment variables with the FINVOICE_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FINVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "finvoice")
	v.SetDefault("db.password", "finvoice_secret")
	v.SetDefault("db.name", "finvoice_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.token_expiry", "12h")
	v.SetDefault("jwt.issuer", "finvoice")

	// Admin gate defaults
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin")
	v.SetDefault("admin.password_hash", "")

	// Storage defaults
	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.base_dir", "data")
	v.SetDefault("storage.uploads_dir", "uploads")
	v.SetDefault("storage.renders_dir", "renders")
	v.SetDefault("storage.region", "ap-south-1")
	v.SetDefault("storage.bucket", "finvoice-documents")
	v.SetDefault("storage.endpoint", "")

	// Render defaults
	v.SetDefault("render.wkhtmltopdf_path", "")
	v.SetDefault("render.timeout", "20s")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)
	v.SetDefault("upload.rate_per_sec", 2)
	v.SetDefault("upload.rate_burst", 5)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@finvoice.local")
	v.SetDefault("email.from_name", "Finvoice")

	// Retention defaults
	v.SetDefault("retention.archive_after_days", 365)
	v.SetDefault("retention.cleanup_after_days", 365)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "FINVOICE_SERVER_PORT",
		"server.read_timeout":      "FINVOICE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "FINVOICE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "FINVOICE_SERVER_ENVIRONMENT",
		"db.host":                  "FINVOICE_DB_HOST",
		"db.port":                  "FINVOICE_DB_PORT",
		"db.user":                  "FINVOICE_DB_USER",
		"db.password":              "FINVOICE_DB_PASSWORD",
		"db.name":                  "FINVOICE_DB_NAME",
		"db.sslmode":               "FINVOICE_DB_SSLMODE",
		"db.max_open":              "FINVOICE_DB_MAX_OPEN",
		"db.max_idle":              "FINVOICE_DB_MAX_IDLE",
		"jwt.secret":               "FINVOICE_JWT_SECRET",
		"jwt.token_expiry":         "FINVOICE_JWT_TOKEN_EXPIRY",
		"jwt.issuer":               "FINVOICE_JWT_ISSUER",
		"admin.username":           "FINVOICE_ADMIN_USERNAME",
		"admin.password":           "FINVOICE_ADMIN_PASSWORD",
		"admin.password_hash":      "FINVOICE_ADMIN_PASSWORD_HASH",
		"storage.provider":         "FINVOICE_STORAGE_PROVIDER",
		"storage.base_dir":         "FINVOICE_STORAGE_BASE_DIR",
		"storage.uploads_dir":      "FINVOICE_STORAGE_UPLOADS_DIR",
		"storage.renders_dir":      "FINVOICE_STORAGE_RENDERS_DIR",
		"storage.region":           "FINVOICE_STORAGE_REGION",
		"storage.bucket":           "FINVOICE_STORAGE_BUCKET",
		"storage.endpoint":         "FINVOICE_STORAGE_ENDPOINT",
		"storage.access_key":       "FINVOICE_STORAGE_ACCESS_KEY",
		"storage.secret_key":       "FINVOICE_STORAGE_SECRET_KEY",
		"render.wkhtmltopdf_path":  "FINVOICE_RENDER_WKHTMLTOPDF_PATH",
		"render.timeout":           "FINVOICE_RENDER_TIMEOUT",
		"upload.max_file_size_mb":  "FINVOICE_UPLOAD_MAX_FILE_SIZE_MB",
		"upload.rate_per_sec":      "FINVOICE_UPLOAD_RATE_PER_SEC",
		"upload.rate_burst":        "FINVOICE_UPLOAD_RATE_BURST",
		"log.level":                "FINVOICE_LOG_LEVEL",
		"log.format":               "FINVOICE_LOG_FORMAT",
		"cors.allowed_origins":     "FINVOICE_CORS_ALLOWED_ORIGINS",
		"email.provider":           "FINVOICE_EMAIL_PROVIDER",
		"email.region":             "FINVOICE_EMAIL_REGION",
		"email.from_address":       "FINVOICE_EMAIL_FROM_ADDRESS",
		"email.from_name":          "FINVOICE_EMAIL_FROM_NAME",
		"retention.archive_after_days": "FINVOICE_RETENTION_ARCHIVE_AFTER_DAYS",
		"retention.cleanup_after_days": "FINVOICE_RETENTION_CLEANUP_AFTER_DAYS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FINVOICE_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FINVOICE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("jwt.secret"),
		TokenExpiry: v.GetDuration("jwt.token_expiry"),
		Issuer:      v.GetString("jwt.issuer"),
	}
	cfg.Admin = AdminConfig{
		Username:     v.GetString("admin.username"),
		Password:     v.GetString("admin.password"),
		PasswordHash: v.GetString("admin.password_hash"),
	}
	cfg.Storage = StorageConfig{
		Provider:   v.GetString("storage.provider"),
		BaseDir:    v.GetString("storage.base_dir"),
		UploadsDir: v.GetString("storage.uploads_dir"),
		RendersDir: v.GetString("storage.renders_dir"),
		Region:     v.GetString("storage.region"),
		Bucket:     v.GetString("storage.bucket"),
		Endpoint:   v.GetString("storage.endpoint"),
		AccessKey:  v.GetString("storage.access_key"),
		SecretKey:  v.GetString("storage.secret_key"),
	}
	cfg.Render = RenderConfig{
		WkhtmltopdfPath: v.GetString("render.wkhtmltopdf_path"),
		Timeout:         v.GetDuration("render.timeout"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
		RatePerSec:    v.GetFloat64("upload.rate_per_sec"),
		RateBurst:     v.GetInt("upload.rate_burst"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Retention = RetentionConfig{
		ArchiveAfterDays: v.GetInt("retention.archive_after_days"),
		CleanupAfterDays: v.GetInt("retention.cleanup_after_days"),
	}

	return cfg, nil
}
