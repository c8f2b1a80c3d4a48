package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"shiptrack/internal/adapters/out/postgres"
	"shiptrack/internal/adapters/out/redis"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DB    postgres.Config
	Redis redis.Config

	CacheTTL             time.Duration
	SessionSecret        string
	SessionTTL           time.Duration
	SessionPurgeSchedule string
	PasswordCost         int
}

// LoadConfig reads envFile into the environment when it exists, then reads
// the configuration from the environment. Variables already set win over
// the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		HTTPPort: v.GetString("HTTP_PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
		DB: postgres.Config{
			Driver:     v.GetString("DB_DRIVER"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Redis: redis.Config{
			Addr:     v.GetString("REDIS_ADDR"),
			Username: v.GetString("REDIS_USERNAME"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		CacheTTL:             v.GetDuration("CACHE_TTL"),
		SessionSecret:        v.GetString("SESSION_SECRET"),
		SessionTTL:           v.GetDuration("SESSION_TTL"),
		SessionPurgeSchedule: v.GetString("SESSION_PURGE_SCHEDULE"),
		PasswordCost:         v.GetInt("BCRYPT_COST"),
	}
	return cfg, cfg.validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", postgres.DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "shiptrack")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "shiptrack.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_USERNAME", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_PURGE_SCHEDULE", "@every 1h")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
}

func (c Config) validate() error {
	var problems []error
	if c.DB.Driver != postgres.DriverPostgres && c.DB.Driver != postgres.DriverSQLite {
		problems = append(problems, fmt.Errorf("DB_DRIVER must be %q or %q, got %q",
			postgres.DriverPostgres, postgres.DriverSQLite, c.DB.Driver))
	}
	if c.CacheTTL <= 0 {
		problems = append(problems, errors.New("CACHE_TTL must be a positive duration"))
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, errors.New("SESSION_TTL must be a positive duration"))
	}
	if c.PasswordCost < bcrypt.MinCost || c.PasswordCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(problems...)
}
