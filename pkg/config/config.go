package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Store         StoreConfig
	Printer       PrinterConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.App.validate(); err != nil {
		return nil, err
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ICEWHEELS_APP_ENV" required:"true"`
	Port         string `envconfig:"ICEWHEELS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ICEWHEELS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ICEWHEELS_LOG_WARN_STACK" default:"false"`
}

// validate rejects blank values that envconfig's required tag lets
// through when the variable is set but empty.
func (a AppConfig) validate() error {
	if strings.TrimSpace(a.Env) == "" {
		return fmt.Errorf("%s must not be empty", EnvAppEnv)
	}
	if strings.TrimSpace(a.Port) == "" {
		return fmt.Errorf("%s must not be empty", EnvAppPort)
	}
	return nil
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ICEWHEELS_DB_DSN"`
	Driver string `envconfig:"ICEWHEELS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ICEWHEELS_DB_HOST"`
	LegacyPort     int    `envconfig:"ICEWHEELS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ICEWHEELS_DB_USER"`
	LegacyPassword string `envconfig:"ICEWHEELS_DB_PASSWORD"`
	LegacyName     string `envconfig:"ICEWHEELS_DB_NAME"`
	LegacySSLMode  string `envconfig:"ICEWHEELS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ICEWHEELS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ICEWHEELS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ICEWHEELS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ICEWHEELS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ICEWHEELS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ICEWHEELS_REDIS_ADDR"`
	Password     string        `envconfig:"ICEWHEELS_REDIS_PASSWORD"`
	DB           int           `envconfig:"ICEWHEELS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ICEWHEELS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ICEWHEELS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ICEWHEELS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ICEWHEELS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ICEWHEELS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ICEWHEELS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ICEWHEELS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ICEWHEELS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"ICEWHEELS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ICEWHEELS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ICEWHEELS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ICEWHEELS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ICEWHEELS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ICEWHEELS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ICEWHEELS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"ICEWHEELS_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ICEWHEELS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// StoreConfig carries the storefront identity printed on receipts.
type StoreConfig struct {
	Name           string `envconfig:"ICEWHEELS_STORE_NAME" default:"ICE ON WHEELS"`
	Byline         string `envconfig:"ICEWHEELS_STORE_BYLINE" default:"Your Favorite Ice Cream Cart"`
	Tagline        string `envconfig:"ICEWHEELS_STORE_TAGLINE" default:"Fresh & Delicious Treats"`
	Website        string `envconfig:"ICEWHEELS_STORE_WEBSITE" default:"www.iceonwheels.com"`
	CurrencySymbol string `envconfig:"ICEWHEELS_STORE_CURRENCY_SYMBOL" default:"Rs."`
}

// PrinterConfig configures the receipt printer channel.
type PrinterConfig struct {
	Kind           string        `envconfig:"ICEWHEELS_PRINTER_KIND" default:"none"`
	Address        string        `envconfig:"ICEWHEELS_PRINTER_ADDR"`
	ChunkSize      int           `envconfig:"ICEWHEELS_PRINTER_CHUNK_SIZE" default:"20"`
	ConnectTimeout time.Duration `envconfig:"ICEWHEELS_PRINTER_CONNECT_TIMEOUT" default:"5s"`
	WriteTimeout   time.Duration `envconfig:"ICEWHEELS_PRINTER_WRITE_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ICEWHEELS_AUTO_MIGRATE" default:"false"`
	SeedMenu    bool `envconfig:"ICEWHEELS_SEED_MENU" default:"false"`
	AllowSignup bool `envconfig:"ICEWHEELS_FEATURE_ALLOW_SIGNUP" default:"false"`
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
