package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	CORS     CORSConfig
	Redis    RedisConfig
	Session  SessionConfig
	Shipping ShippingConfig
	Orders   OrdersConfig
	Geocode  GeocodeConfig
	JWT      JWTConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Shipping.FreeThreshold < 0 || cfg.Shipping.BaseCost < 0 {
		return nil, fmt.Errorf("shipping amounts must be non-negative")
	}
	// envconfig's required tag accepts present-but-empty variables.
	if strings.TrimSpace(cfg.Orders.BaseURL) == "" {
		return nil, fmt.Errorf("CALMATE_ORDERS_BASE_URL must not be empty")
	}
	if strings.TrimSpace(cfg.Orders.APIKey) == "" {
		return nil, fmt.Errorf("CALMATE_ORDERS_API_KEY must not be empty")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CALMATE_APP_ENV" required:"true"`
	Port         string `envconfig:"CALMATE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CALMATE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CALMATE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CALMATE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CALMATE_REDIS_URL"`
	Address      string        `envconfig:"CALMATE_REDIS_ADDR"`
	Password     string        `envconfig:"CALMATE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CALMATE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CALMATE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CALMATE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CALMATE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CALMATE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CALMATE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig bounds the lifetime of per-visitor cart state.
type SessionConfig struct {
	IdleTTL       time.Duration `envconfig:"CALMATE_SESSION_IDLE_TTL" default:"45m"`
	PurgeInterval time.Duration `envconfig:"CALMATE_SESSION_PURGE_INTERVAL" default:"5m"`
	ProfileTTL    time.Duration `envconfig:"CALMATE_SESSION_PROFILE_TTL" default:"4320h"`
}

// ShippingConfig carries the storefront pricing policy in CLP.
type ShippingConfig struct {
	FreeThreshold int `envconfig:"CALMATE_SHIPPING_FREE_THRESHOLD" default:"50000"`
	BaseCost      int `envconfig:"CALMATE_SHIPPING_BASE_COST" default:"5990"`
}

// OrdersConfig points at the hosted order-creation RPC.
type OrdersConfig struct {
	BaseURL string        `envconfig:"CALMATE_ORDERS_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"CALMATE_ORDERS_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"CALMATE_ORDERS_TIMEOUT" default:"30s"`
}

// GeocodeConfig drives the address autocomplete collaborator.
type GeocodeConfig struct {
	BaseURL     string        `envconfig:"CALMATE_GEOCODE_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	CountryCode string        `envconfig:"CALMATE_GEOCODE_COUNTRY" default:"cl"`
	UserAgent   string        `envconfig:"CALMATE_GEOCODE_USER_AGENT" default:"calmate-storefront/1.0"`
	Limit       int           `envconfig:"CALMATE_GEOCODE_LIMIT" default:"5"`
	MinQueryLen int           `envconfig:"CALMATE_GEOCODE_MIN_QUERY_LEN" default:"4"`
	Debounce    time.Duration `envconfig:"CALMATE_GEOCODE_DEBOUNCE" default:"500ms"`
	Timeout     time.Duration `envconfig:"CALMATE_GEOCODE_TIMEOUT" default:"10s"`
}

// JWTConfig verifies access tokens minted by the auth provider.
type JWTConfig struct {
	Secret   string `envconfig:"CALMATE_JWT_SECRET" required:"true"`
	Audience string `envconfig:"CALMATE_JWT_AUDIENCE" default:"authenticated"`
}
