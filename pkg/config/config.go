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
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Checkout     CheckoutConfig
	Store        StoreConfig
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
	Env          string `envconfig:"BATOOL_APP_ENV" required:"true"`
	Port         string `envconfig:"BATOOL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BATOOL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BATOOL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BATOOL_DB_DSN"`
	Driver string `envconfig:"BATOOL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BATOOL_DB_HOST"`
	LegacyPort     int    `envconfig:"BATOOL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BATOOL_DB_USER"`
	LegacyPassword string `envconfig:"BATOOL_DB_PASSWORD"`
	LegacyName     string `envconfig:"BATOOL_DB_NAME"`
	LegacySSLMode  string `envconfig:"BATOOL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BATOOL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BATOOL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BATOOL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BATOOL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BATOOL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BATOOL_REDIS_ADDR"`
	Password     string        `envconfig:"BATOOL_REDIS_PASSWORD"`
	DB           int           `envconfig:"BATOOL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BATOOL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BATOOL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BATOOL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BATOOL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BATOOL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BATOOL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BATOOL_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BATOOL_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BATOOL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BATOOL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BATOOL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BATOOL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BATOOL_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BATOOL_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BATOOL_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"BATOOL_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"BATOOL_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"BATOOL_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"BATOOL_GCS_BUCKET_NAME" required:"true"`
}

// CheckoutConfig tunes the order submission pipeline.
type CheckoutConfig struct {
	ReceiptFolder     string        `envconfig:"BATOOL_CHECKOUT_RECEIPT_FOLDER" default:"receipts"`
	OrderCodePrefix   string        `envconfig:"BATOOL_CHECKOUT_ORDER_PREFIX" default:"BT"`
	MaxReceiptMB      int           `envconfig:"BATOOL_CHECKOUT_MAX_RECEIPT_MB" default:"10"`
	SubmitTimeout     time.Duration `envconfig:"BATOOL_CHECKOUT_SUBMIT_TIMEOUT" default:"30s"`
	SubmitGuardExpiry time.Duration `envconfig:"BATOOL_CHECKOUT_SUBMIT_GUARD_EXPIRY" default:"1m"`
}

// StoreConfig carries storefront identity used when synthesizing records.
type StoreConfig struct {
	EmailDomain      string `envconfig:"BATOOL_STORE_EMAIL_DOMAIN" default:"batool.app"`
	WhatsAppCountry  string `envconfig:"BATOOL_STORE_WHATSAPP_COUNTRY" default:"967"`
	CurrencyFallback string `envconfig:"BATOOL_STORE_CURRENCY_FALLBACK" default:"ر.س"`
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
