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
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
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
	Env          string `envconfig:"SITEOPS_APP_ENV" required:"true"`
	Port         string `envconfig:"SITEOPS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SITEOPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SITEOPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SITEOPS_DB_DSN"`
	Driver string `envconfig:"SITEOPS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SITEOPS_DB_HOST"`
	LegacyPort     int    `envconfig:"SITEOPS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SITEOPS_DB_USER"`
	LegacyPassword string `envconfig:"SITEOPS_DB_PASSWORD"`
	LegacyName     string `envconfig:"SITEOPS_DB_NAME"`
	LegacySSLMode  string `envconfig:"SITEOPS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SITEOPS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SITEOPS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SITEOPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SITEOPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SITEOPS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SITEOPS_REDIS_ADDR"`
	Password     string        `envconfig:"SITEOPS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SITEOPS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SITEOPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SITEOPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SITEOPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SITEOPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SITEOPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SITEOPS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SITEOPS_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SITEOPS_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"SITEOPS_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SITEOPS_GOOGLE_APPLICATION_CREDENTIALS"`
}

// PubSubConfig names the e-invoice feed topic and subscription. The external
// invoicing integration publishes issued/received tax invoices there.
type PubSubConfig struct {
	InvoiceTopic        string `envconfig:"SITEOPS_PUBSUB_INVOICE_TOPIC"`
	InvoiceSubscription string `envconfig:"SITEOPS_PUBSUB_INVOICE_SUBSCRIPTION"`
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
