package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "PLISSE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Shopify  ShopifyConfig
	Sync     SyncConfig
	GCP      GCPConfig
	PubSub   PubSubConfig
	BigQuery BigQueryConfig

	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"PLISSE_APP_ENV" required:"true"`
	Port         string `envconfig:"PLISSE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PLISSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PLISSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"PLISSE_DB_DSN"`

	Host     string `envconfig:"PLISSE_DB_HOST"`
	Port     int    `envconfig:"PLISSE_DB_PORT" default:"5432"`
	User     string `envconfig:"PLISSE_DB_USER"`
	Password string `envconfig:"PLISSE_DB_PASSWORD"`
	Name     string `envconfig:"PLISSE_DB_NAME"`
	SSLMode  string `envconfig:"PLISSE_DB_SSLMODE" default:"disable"`

	AutoMigrate bool `envconfig:"PLISSE_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"PLISSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PLISSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PLISSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PLISSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PLISSE_REDIS_URL"`
	Address      string        `envconfig:"PLISSE_REDIS_ADDR"`
	Password     string        `envconfig:"PLISSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PLISSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PLISSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PLISSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PLISSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PLISSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PLISSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PLISSE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PLISSE_JWT_ISSUER" default:"plisse-production"`
	ExpirationMinutes      int    `envconfig:"PLISSE_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"PLISSE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PLISSE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PLISSE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PLISSE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PLISSE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PLISSE_ARGON_KEY_LEN" default:"32"`
}

// ShopifyConfig carries credentials for every regional storefront. Maps are
// keyed by the lowercase store key (nl, de, uk, fr, dk) and parsed by
// envconfig from "key:value,key:value" pairs.
type ShopifyConfig struct {
	APIVersion     string            `envconfig:"PLISSE_SHOPIFY_API_VERSION" default:"2024-01"`
	StoreDomains   map[string]string `envconfig:"PLISSE_SHOPIFY_STORE_DOMAINS"`
	StoreTokens    map[string]string `envconfig:"PLISSE_SHOPIFY_STORE_TOKENS"`
	WebhookSecrets map[string]string `envconfig:"PLISSE_SHOPIFY_WEBHOOK_SECRETS"`
	PageSize       int               `envconfig:"PLISSE_SHOPIFY_PAGE_SIZE" default:"50"`
	RequestTimeout time.Duration     `envconfig:"PLISSE_SHOPIFY_REQUEST_TIMEOUT" default:"15s"`
}

// Credentials resolves the API domain and access token for a store key.
func (s ShopifyConfig) Credentials(store string) (domain, token string, err error) {
	domain = strings.TrimSpace(s.StoreDomains[store])
	token = strings.TrimSpace(s.StoreTokens[store])
	if domain == "" || token == "" {
		return "", "", fmt.Errorf("shopify credentials missing for store %q", store)
	}
	return domain, token, nil
}

// WebhookSecret resolves the webhook HMAC secret for a store key.
func (s ShopifyConfig) WebhookSecret(store string) string {
	return strings.TrimSpace(s.WebhookSecrets[store])
}

type SyncConfig struct {
	Interval time.Duration `envconfig:"PLISSE_SYNC_INTERVAL" default:"5m"`
	LockTTL  time.Duration `envconfig:"PLISSE_SYNC_LOCK_TTL" default:"4m"`
	Overlap  time.Duration `envconfig:"PLISSE_SYNC_OVERLAP" default:"1m"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"PLISSE_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"PLISSE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"PLISSE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"PLISSE_PUBSUB_ORDERS_TOPIC" default:"plisse-order-events"`
	OrdersSubscription string `envconfig:"PLISSE_PUBSUB_ORDERS_SUBSCRIPTION" default:"plisse-order-events-analytics"`
}

// AuthRateLimitConfig throttles the login surface per IP and per email.
// A zero window disables the limiter.
type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"PLISSE_AUTH_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit    int           `envconfig:"PLISSE_AUTH_LOGIN_IP_LIMIT" default:"20"`
	LoginEmailLimit int           `envconfig:"PLISSE_AUTH_LOGIN_EMAIL_LIMIT" default:"5"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PLISSE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type BigQueryConfig struct {
	Dataset               string `envconfig:"PLISSE_BIGQUERY_DATASET" default:"production"`
	ProductionEventsTable string `envconfig:"PLISSE_BIGQUERY_PRODUCTION_EVENTS_TABLE" default:"production_events"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"PLISSE_DB_HOST": db.Host,
		"PLISSE_DB_USER": db.User,
		"PLISSE_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either PLISSE_DB_DSN or %s are required", strings.Join(missing, ", "))
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
