package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Redis    RedisConfig    `yaml:"redis"`
	Profile  ProfileConfig  `yaml:"profile"`
	Study    StudyConfig    `yaml:"study"`
	SRS      SRSConfig      `yaml:"srs"`
	Reminder ReminderConfig `yaml:"reminder"`
	LLM      LLMConfig      `yaml:"llm"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// StorageConfig selects the key-value backend that holds profile bundles.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"sqlite"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SQLiteConfig holds the embedded database file location.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"./vocabcoach.db"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// ProfileConfig holds session and persistence settings.
type ProfileConfig struct {
	PersistDebounce     time.Duration `yaml:"persist_debounce"     env:"PROFILE_PERSIST_DEBOUNCE"     env-default:"1s"`
	SaveTimeout         time.Duration `yaml:"save_timeout"         env:"PROFILE_SAVE_TIMEOUT"         env-default:"10s"`
	DefaultDailyGoal    int           `yaml:"default_daily_goal"   env:"PROFILE_DEFAULT_DAILY_GOAL"   env-default:"10"`
	QuarantineRetention time.Duration `yaml:"quarantine_retention" env:"PROFILE_QUARANTINE_RETENTION" env-default:"0s"` // 0 keeps quarantined bundles forever
}

// StudyConfig holds study controller settings.
type StudyConfig struct {
	Timezone        string `yaml:"timezone"          env:"STUDY_TIMEZONE"          env-default:"Local"`
	TimerCheckpoint int    `yaml:"timer_checkpoint"  env:"STUDY_TIMER_CHECKPOINT"  env-default:"30"`
	MinQuizWords    int    `yaml:"min_quiz_words"    env:"STUDY_MIN_QUIZ_WORDS"    env-default:"4"`
	MaxQuizWords    int    `yaml:"max_quiz_words"    env:"STUDY_MAX_QUIZ_WORDS"    env-default:"10"`
	MaxBatchSize    int    `yaml:"max_batch_size"    env:"STUDY_MAX_BATCH_SIZE"    env-default:"20"`
	MaxPassageWords int    `yaml:"max_passage_words" env:"STUDY_MAX_PASSAGE_WORDS" env-default:"10"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// SRSConfig holds spaced-repetition intervals.
type SRSConfig struct {
	IntervalsRaw string `yaml:"intervals" env:"SRS_INTERVALS" env-default:"24h,72h,168h,720h"`

	// Intervals is parsed from IntervalsRaw during validation.
	Intervals []time.Duration `yaml:"-" env:"-"`
}

// ReminderConfig holds the due-review reminder schedule.
type ReminderConfig struct {
	Enabled   bool          `yaml:"enabled"    env:"REMINDER_ENABLED"    env-default:"true"`
	Every     time.Duration `yaml:"every"      env:"REMINDER_EVERY"      env-default:"1h"`
	StartHour int           `yaml:"start_hour" env:"REMINDER_START_HOUR" env-default:"8"`
	EndHour   int           `yaml:"end_hour"   env:"REMINDER_END_HOUR"   env-default:"21"`
}

// LLMConfig holds content generator settings. An empty APIKey switches the
// generator to offline mode.
type LLMConfig struct {
	APIKey            string        `yaml:"api_key"             env:"LLM_API_KEY"`
	Model             string        `yaml:"model"               env:"LLM_MODEL"               env-default:"claude-opus-4-6"`
	MaxTokens         int64         `yaml:"max_tokens"          env:"LLM_MAX_TOKENS"          env-default:"4096"`
	Timeout           time.Duration `yaml:"timeout"             env:"LLM_TIMEOUT"             env-default:"60s"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"LLM_REQUESTS_PER_MINUTE" env-default:"20"`
}
