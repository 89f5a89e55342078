package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "catalogo"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Data    DataConfig
	Session SessionConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Session.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CATALOGO_APP_ENV" default:"dev"`
	Port         string `envconfig:"CATALOGO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CATALOGO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CATALOGO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DataConfig locates the tabular data files and static assets.
type DataConfig struct {
	Dir        string `envconfig:"CATALOGO_DATA_DIR" default:"data"`
	AssetRoot  string `envconfig:"CATALOGO_ASSET_ROOT" default:"images"`
	AdminFile  string `envconfig:"CATALOGO_ADMIN_FILE" default:"admin.json"`
	StaticDir  string `envconfig:"CATALOGO_STATIC_DIR" default:"static"`
	SeedOnBoot bool   `envconfig:"CATALOGO_SEED_ON_BOOT" default:"false"`
}

type SessionConfig struct {
	Backend    string        `envconfig:"CATALOGO_SESSION_BACKEND" default:"memory"`
	CookieName string        `envconfig:"CATALOGO_SESSION_COOKIE" default:"catalogo_session"`
	TTL        time.Duration `envconfig:"CATALOGO_SESSION_TTL" default:"24h"`
}

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

func (s SessionConfig) validate() error {
	switch strings.ToLower(s.Backend) {
	case SessionBackendMemory, SessionBackendRedis:
		return nil
	}
	return fmt.Errorf("unknown session backend %q", s.Backend)
}

type RedisConfig struct {
	URL          string        `envconfig:"CATALOGO_REDIS_URL"`
	Address      string        `envconfig:"CATALOGO_REDIS_ADDR"`
	Password     string        `envconfig:"CATALOGO_REDIS_PASSWORD"`
	DB           int           `envconfig:"CATALOGO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CATALOGO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CATALOGO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CATALOGO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CATALOGO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CATALOGO_REDIS_WRITE_TIMEOUT" default:"5s"`
}
