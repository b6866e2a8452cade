package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FIELDVISITS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FIELDVISITS_DB_DSN"
	EnvDBHost = "FIELDVISITS_DB_HOST"
	EnvDBUser = "FIELDVISITS_DB_USER"
	EnvDBName = "FIELDVISITS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Schedule     ScheduleConfig
	Cron         CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FIELDVISITS_APP_ENV" required:"true"`
	Port         string `envconfig:"FIELDVISITS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FIELDVISITS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FIELDVISITS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"FIELDVISITS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"FIELDVISITS_DB_DSN"`
	Driver string `envconfig:"FIELDVISITS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FIELDVISITS_DB_HOST"`
	LegacyPort     int    `envconfig:"FIELDVISITS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FIELDVISITS_DB_USER"`
	LegacyPassword string `envconfig:"FIELDVISITS_DB_PASSWORD"`
	LegacyName     string `envconfig:"FIELDVISITS_DB_NAME"`
	LegacySSLMode  string `envconfig:"FIELDVISITS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FIELDVISITS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FIELDVISITS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FIELDVISITS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FIELDVISITS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FIELDVISITS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FIELDVISITS_REDIS_ADDR"`
	Password     string        `envconfig:"FIELDVISITS_REDIS_PASSWORD"`
	DB           int           `envconfig:"FIELDVISITS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FIELDVISITS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FIELDVISITS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FIELDVISITS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FIELDVISITS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FIELDVISITS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FIELDVISITS_AUTO_MIGRATE" default:"false"`
}

// ScheduleConfig tunes the assignment and transfer surfaces.
type ScheduleConfig struct {
	DefaultVisitType       string        `envconfig:"FIELDVISITS_SCHEDULE_DEFAULT_VISIT_TYPE" default:"periodic"`
	TransferIdempotencyTTL time.Duration `envconfig:"FIELDVISITS_TRANSFER_IDEMPOTENCY_TTL" default:"168h"`
}

// CronConfig tunes the housekeeping worker.
type CronConfig struct {
	Interval       time.Duration `envconfig:"FIELDVISITS_CRON_INTERVAL" default:"24h"`
	StaleVisitDays int           `envconfig:"FIELDVISITS_CRON_STALE_VISIT_DAYS" default:"30"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
