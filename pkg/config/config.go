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

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Sheet    SheetConfig
	Grading  GradingConfig
	Uploads  UploadConfig
	Teacher  TeacherGateConfig
	Snapshot SnapshotConfig
	Audit    AuditConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
}

// SheetConfig points the service at the spreadsheet web-app endpoint.
type SheetConfig struct {
	Endpoint      string
	Timeout       time.Duration
	ConfirmWrites bool
}

// GradingConfig holds the attendance grading policy.
type GradingConfig struct {
	RequiredSessions int
	PassThreshold    float64
}

// UploadConfig caps inbound payload sizes.
type UploadConfig struct {
	MaxSubmissionBytes        int64
	MaxAnnouncementImageBytes int64
}

// TeacherGateConfig configures the shared teacher access code and the
// capability token it grants.
type TeacherGateConfig struct {
	AccessCode     string
	AccessCodeHash string
	JWTSecret      string
	JWTExpiration  time.Duration
}

// SnapshotConfig tunes the in-memory snapshot store and its optional
// redis-backed cache.
type SnapshotConfig struct {
	CacheEnabled     bool
	CacheTTL         time.Duration
	RefreshInterval  time.Duration
	SubmissionLookup string
}

// AuditConfig gates the postgres mutation audit log.
type AuditConfig struct {
	Enabled bool
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

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
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

	cfg.Sheet = SheetConfig{
		Endpoint:      v.GetString("SHEET_ENDPOINT"),
		Timeout:       parseDuration(v.GetString("SHEET_TIMEOUT"), 15*time.Second),
		ConfirmWrites: v.GetBool("SHEET_CONFIRM_WRITES"),
	}

	cfg.Grading = GradingConfig{
		RequiredSessions: v.GetInt("REQUIRED_SESSIONS"),
		PassThreshold:    v.GetFloat64("PASS_THRESHOLD"),
	}

	cfg.Uploads = UploadConfig{
		MaxSubmissionBytes:        v.GetInt64("MAX_SUBMISSION_BYTES"),
		MaxAnnouncementImageBytes: v.GetInt64("MAX_ANNOUNCEMENT_IMAGE_BYTES"),
	}

	cfg.Teacher = TeacherGateConfig{
		AccessCode:     v.GetString("TEACHER_ACCESS_CODE"),
		AccessCodeHash: v.GetString("TEACHER_ACCESS_CODE_HASH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiration:  parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
	}

	cfg.Snapshot = SnapshotConfig{
		CacheEnabled:     v.GetBool("ENABLE_SNAPSHOT_CACHE"),
		CacheTTL:         parseDuration(v.GetString("SNAPSHOT_CACHE_TTL"), 5*time.Minute),
		RefreshInterval:  parseDuration(v.GetString("SNAPSHOT_REFRESH_INTERVAL"), 10*time.Minute),
		SubmissionLookup: strings.ToLower(v.GetString("SUBMISSION_LOOKUP_POLICY")),
	}

	cfg.Audit = AuditConfig{
		Enabled: v.GetBool("ENABLE_AUDIT_LOG"),
	}

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

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SHEET_ENDPOINT", "")
	v.SetDefault("SHEET_TIMEOUT", "15s")
	v.SetDefault("SHEET_CONFIRM_WRITES", false)

	v.SetDefault("REQUIRED_SESSIONS", 20)
	v.SetDefault("PASS_THRESHOLD", 80)

	v.SetDefault("MAX_SUBMISSION_BYTES", 2*1024*1024)
	v.SetDefault("MAX_ANNOUNCEMENT_IMAGE_BYTES", 1536*1024)

	v.SetDefault("TEACHER_ACCESS_CODE", "")
	v.SetDefault("TEACHER_ACCESS_CODE_HASH", "")
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")

	v.SetDefault("ENABLE_SNAPSHOT_CACHE", false)
	v.SetDefault("SNAPSHOT_CACHE_TTL", "5m")
	v.SetDefault("SNAPSHOT_REFRESH_INTERVAL", "10m")
	v.SetDefault("SUBMISSION_LOOKUP_POLICY", "first")

	v.SetDefault("ENABLE_AUDIT_LOG", false)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "club_api")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
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
