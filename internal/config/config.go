package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MongoDB  MongoDBConfig  `mapstructure:"mongodb"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
	Email    EmailConfig    `mapstructure:"email"`
	Courier  CourierConfig  `mapstructure:"courier"`
	Photos   PhotosConfig   `mapstructure:"photos"`
}

type ServerConfig struct {
	Port               string   `mapstructure:"port"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	SchemaPath string `mapstructure:"schema_path"`
}

// CacheConfig selects the collection cache backend: "memory" or "redis".
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoDBConfig enables the order audit trail when URI is set.
type MongoDBConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// AuthConfig holds token settings. The bootstrap account is created as full-admin
// when no staff account exists yet.
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
	BootstrapUsername string        `mapstructure:"bootstrap_username"`
	BootstrapPassword string        `mapstructure:"bootstrap_password"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CheckoutConfig holds storefront order settings. Delivery prices are in lei.
type CheckoutConfig struct {
	Timeout       time.Duration     `mapstructure:"timeout"`
	DeliveryCosts map[string]string `mapstructure:"delivery_costs"`
}

type EmailConfig struct {
	OrderConfirmationURL string        `mapstructure:"order_confirmation_url"`
	ShippedURL           string        `mapstructure:"shipped_url"`
	APIKey               string        `mapstructure:"api_key"`
	Timeout              time.Duration `mapstructure:"timeout"`
}

type CourierConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	ClientID string        `mapstructure:"client_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type PhotosConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	AccessKey string        `mapstructure:"access_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "canvas_shop")
	v.SetDefault("database.password", "canvas_shop")
	v.SetDefault("database.name", "canvas_shop")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.schema_path", "")

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", 5*time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("mongodb.uri", "")
	v.SetDefault("mongodb.database", "canvas_shop")
	v.SetDefault("mongodb.collection", "order_audit")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("auth.bootstrap_username", "admin")
	v.SetDefault("auth.bootstrap_password", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("checkout.timeout", 15*time.Second)
	v.SetDefault("checkout.delivery_costs", map[string]string{
		"express":  "35.00",
		"standard": "20.00",
		"economic": "15.00",
	})

	// Keys without a real default are still registered so AutomaticEnv picks them up on Unmarshal.
	v.SetDefault("email.order_confirmation_url", "")
	v.SetDefault("email.shipped_url", "")
	v.SetDefault("email.api_key", "")
	v.SetDefault("email.timeout", 10*time.Second)
	v.SetDefault("courier.base_url", "")
	v.SetDefault("courier.username", "")
	v.SetDefault("courier.password", "")
	v.SetDefault("courier.client_id", "")
	v.SetDefault("courier.timeout", 20*time.Second)
	v.SetDefault("photos.base_url", "https://api.unsplash.com")
	v.SetDefault("photos.access_key", "")
	v.SetDefault("photos.timeout", 10*time.Second)
}

// Load reads the optional YAML file at configPath and overlays environment variables
// (e.g. DATABASE_HOST, AUTH_JWT_SECRET, CACHE_BACKEND).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret (AUTH_JWT_SECRET) is required")
	}
	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	return &cfg, nil
}

// DSN returns the lib/pq connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}
