package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	Password  PasswordConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Features  FeatureFlagsConfig
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
	Env          string `envconfig:"VERTO_APP_ENV" required:"true"`
	Port         string `envconfig:"VERTO_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"VERTO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VERTO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"VERTO_DB_DSN"`

	Host     string `envconfig:"VERTO_DB_HOST"`
	Port     int    `envconfig:"VERTO_DB_PORT" default:"5432"`
	User     string `envconfig:"VERTO_DB_USER"`
	Password string `envconfig:"VERTO_DB_PASSWORD"`
	Name     string `envconfig:"VERTO_DB_NAME" default:"verto-inventory"`
	SSLMode  string `envconfig:"VERTO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VERTO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VERTO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VERTO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VERTO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"VERTO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VERTO_JWT_ISSUER" default:"verto-inventory"`
	ExpirationMinutes int    `envconfig:"VERTO_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VERTO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VERTO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VERTO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VERTO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VERTO_ARGON_KEY_LEN" default:"32"`
}

type CacheConfig struct {
	DefaultTTL    time.Duration `envconfig:"VERTO_CACHE_DEFAULT_TTL" default:"5m"`
	SweepInterval time.Duration `envconfig:"VERTO_CACHE_SWEEP_INTERVAL" default:"2m"`
	MaxKeys       int           `envconfig:"VERTO_CACHE_MAX_KEYS" default:"1000"`
}

type RateLimitConfig struct {
	GlobalWindow time.Duration `envconfig:"VERTO_RATE_LIMIT_GLOBAL_WINDOW" default:"15m"`
	GlobalLimit  int           `envconfig:"VERTO_RATE_LIMIT_GLOBAL_LIMIT" default:"100"`
	AuthWindow   time.Duration `envconfig:"VERTO_RATE_LIMIT_AUTH_WINDOW" default:"5m"`
	AuthLimit    int           `envconfig:"VERTO_RATE_LIMIT_AUTH_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VERTO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VERTO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
