package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Auth         AuthConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KAPE_APP_ENV" required:"true"`
	Port         string `envconfig:"KAPE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"KAPE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KAPE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"KAPE_DB_DSN"`
	Driver string `envconfig:"KAPE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"KAPE_DB_HOST"`
	LegacyPort     int    `envconfig:"KAPE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KAPE_DB_USER"`
	LegacyPassword string `envconfig:"KAPE_DB_PASSWORD"`
	LegacyName     string `envconfig:"KAPE_DB_NAME"`
	LegacySSLMode  string `envconfig:"KAPE_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"KAPE_SQLITE_PATH" default:"kape.db"`

	MaxOpenConns    int           `envconfig:"KAPE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KAPE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KAPE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KAPE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type AuthConfig struct {
	JWTSecret       string `envconfig:"KAPE_JWT_SECRET" required:"true"`
	JWTIssuer       string `envconfig:"KAPE_JWT_ISSUER" default:"kape-pos"`
	TokenTTLMinutes int    `envconfig:"KAPE_JWT_TTL_MINUTES" default:"720"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"KAPE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"KAPE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		// sqlite path is used directly, the postgres DSN is irrelevant
		return nil
	}
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
