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

// Config application-wide configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Poller   PollerConfig   `mapstructure:"poller"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig PostgreSQL settings
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// DSN builds the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig is optional; with Enabled=false the app runs without blacklist and publish locks.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig session token settings
type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
	SessionFile string        `mapstructure:"session_file"`
}

// StorageConfig local directories for uploaded files
type StorageConfig struct {
	SubmissionsDir string `mapstructure:"submissions_dir"`
	MaterialsDir   string `mapstructure:"materials_dir"`
}

// PollerConfig notification check intervals
type PollerConfig struct {
	GradeInterval        time.Duration `mapstructure:"grade_interval"`
	AnnouncementInterval time.Duration `mapstructure:"announcement_interval"`
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration.
// Precedence: environment > config file > .env > defaults
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	// ── defaults ──
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "campus_lms")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.session_ttl", "12h")
	v.SetDefault("auth.session_file", ".lms_session")

	v.SetDefault("storage.submissions_dir", "submissions")
	v.SetDefault("storage.materials_dir", "course_materials")

	v.SetDefault("poller.grade_interval", "30s")
	v.SetDefault("poller.announcement_interval", "5m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("LMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the app cannot run without
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("invalid config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("invalid config: auth.session_ttl must be positive")
	}
	if c.Poller.GradeInterval <= 0 || c.Poller.AnnouncementInterval <= 0 {
		return fmt.Errorf("invalid config: poller intervals must be positive")
	}
	if c.Storage.SubmissionsDir == "" || c.Storage.MaterialsDir == "" {
		return fmt.Errorf("invalid config: storage directories must not be empty")
	}
	return nil
}
