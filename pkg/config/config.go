package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every configuration variable.
const EnvPrefix = "RESTODEALS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	CORS     CORSConfig
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
	Env          string `envconfig:"RESTODEALS_APP_ENV" required:"true"`
	Port         string `envconfig:"RESTODEALS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RESTODEALS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RESTODEALS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"RESTODEALS_DB_DSN"`

	Host     string `envconfig:"RESTODEALS_DB_HOST"`
	Port     int    `envconfig:"RESTODEALS_DB_PORT" default:"5432"`
	User     string `envconfig:"RESTODEALS_DB_USER"`
	Password string `envconfig:"RESTODEALS_DB_PASSWORD"`
	Name     string `envconfig:"RESTODEALS_DB_NAME"`
	SSLMode  string `envconfig:"RESTODEALS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RESTODEALS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RESTODEALS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RESTODEALS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RESTODEALS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a postgres DSN from discrete parts when one is not
// provided directly.
func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	if db.Host == "" {
		missing = append(missing, "RESTODEALS_DB_HOST")
	}
	if db.User == "" {
		missing = append(missing, "RESTODEALS_DB_USER")
	}
	if db.Name == "" {
		missing = append(missing, "RESTODEALS_DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("either RESTODEALS_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     db.Host + ":" + strconv.Itoa(db.Port),
		Path:     "/" + db.Name,
		RawQuery: "sslmode=" + db.SSLMode,
	}
	db.DSN = dsn.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"RESTODEALS_REDIS_URL"`
	Address      string        `envconfig:"RESTODEALS_REDIS_ADDR"`
	Password     string        `envconfig:"RESTODEALS_REDIS_PASSWORD"`
	DB           int           `envconfig:"RESTODEALS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RESTODEALS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RESTODEALS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RESTODEALS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RESTODEALS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RESTODEALS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RESTODEALS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RESTODEALS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"RESTODEALS_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RESTODEALS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RESTODEALS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RESTODEALS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RESTODEALS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RESTODEALS_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"RESTODEALS_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}
