package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type AppCfg struct{ Env, Port, LogLevel string }

type DBCfg struct {
	Driver         string
	DSN            string
	ConnectTimeout time.Duration
}

type RedisCfg struct{ Addr string }

type PagingCfg struct {
	DefaultPageSize int
	MaxPageSize     int
}

// RateLimitCfg configures the global fixed-window limiter
type RateLimitCfg struct {
	PermitLimit int
	Window      time.Duration
}

type Cfg struct {
	App       AppCfg
	DB        DBCfg
	Redis     RedisCfg
	Paging    PagingCfg
	RateLimit RateLimitCfg
	// CORSOrigins lists allowed browser origins; empty disables CORS headers.
	CORSOrigins []string
}

func Load() Cfg {
	// 1) Load .env into process env (if file exists)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("ignoring unreadable .env")
	}

	// 2) Read from env via viper
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	cfg := fromViper(v)

	// 3) Fail fast on required settings
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DB_CONNECT_TIMEOUT", "30s")
	v.SetDefault("PAGE_SIZE_DEFAULT", 5)
	v.SetDefault("PAGE_SIZE_MAX", 10)
	v.SetDefault("RATE_LIMIT_PERMITS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("CORS_ORIGINS", "")
}

func fromViper(v *viper.Viper) Cfg {
	var origins []string
	for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return Cfg{
		App: AppCfg{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBCfg{
			Driver:         strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			DSN:            v.GetString("DB_DSN"),
			ConnectTimeout: v.GetDuration("DB_CONNECT_TIMEOUT"),
		},
		Redis: RedisCfg{Addr: strings.TrimSpace(v.GetString("REDIS_ADDR"))},
		Paging: PagingCfg{
			DefaultPageSize: v.GetInt("PAGE_SIZE_DEFAULT"),
			MaxPageSize:     v.GetInt("PAGE_SIZE_MAX"),
		},
		RateLimit: RateLimitCfg{
			PermitLimit: v.GetInt("RATE_LIMIT_PERMITS"),
			Window:      v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		CORSOrigins: origins,
	}
}

// Validate checks settings that have no usable default.
func (c Cfg) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.DSN == "" {
			return errors.New("DB_DSN is required for the postgres store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %s|%s, got %q", DriverPostgres, DriverMemory, c.DB.Driver)
	}
	if c.Paging.MaxPageSize <= 0 {
		return errors.New("PAGE_SIZE_MAX must be positive")
	}
	if c.Paging.DefaultPageSize <= 0 || c.Paging.DefaultPageSize > c.Paging.MaxPageSize {
		return fmt.Errorf("PAGE_SIZE_DEFAULT must be in 1..%d", c.Paging.MaxPageSize)
	}
	if c.Redis.Addr != "" && (c.RateLimit.PermitLimit <= 0 || c.RateLimit.Window <= 0) {
		return errors.New("RATE_LIMIT_PERMITS and RATE_LIMIT_WINDOW must be positive")
	}
	if _, err := zerolog.ParseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// SetupLogging configures the global zerolog logger.
func (c Cfg) SetupLogging() {
	level, err := zerolog.ParseLevel(c.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if c.App.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
