// Package config holds the environment-supplied application configuration.
package config

import "time"

type Config struct {
	HTTP          HTTPConfig
	PayPal        PayPalConfig
	Notifications NotificationConfig
	Redis         RedisConfig
	AccountsDB    AccountsDBConfig
	Kafka         KafkaConfig

	ProductsPath string `env:"PRODUCTS_PATH" env-default:"data/products.json"`
}

type HTTPConfig struct {
	Port            string        `env:"PORT" env-default:"4000"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type PayPalConfig struct {
	ClientID     string `env:"PAYPAL_CLIENT_ID"`
	ClientSecret string `env:"PAYPAL_CLIENT_SECRET"`
	// "sandbox" or "live"; selects the API base URL.
	Mode string `env:"PAYPAL_MODE" env-default:"sandbox"`

	BrandName          string `env:"PAYPAL_BRAND_NAME" env-default:"Test Store"`
	Locale             string `env:"PAYPAL_LOCALE" env-default:"en-PH"`
	ShippingPreference string `env:"PAYPAL_SHIPPING_PREFERENCE" env-default:"NO_SHIPPING"`
}

// Configured reports whether both credentials are present. When false the
// create/capture endpoints answer with a configuration error instead of
// the process refusing to start.
func (c PayPalConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type NotificationConfig struct {
	ClientID     string `env:"NOTIFICATION_API_CLIENT_ID"`
	ClientSecret string `env:"NOTIFICATION_API_CLIENT_SECRET"`
	DefaultTo    string `env:"NOTIFICATION_DEFAULT_TO"`
}

func (c NotificationConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type AccountsDBConfig struct {
	Host          string `env:"ACCOUNTS_DB_HOST"`
	Port          int    `env:"ACCOUNTS_DB_PORT" env-default:"5432"`
	User          string `env:"ACCOUNTS_DB_USER" env-default:"postgres"`
	Password      string `env:"ACCOUNTS_DB_PASSWORD"`
	Name          string `env:"ACCOUNTS_DB_NAME" env-default:"storefront"`
	MigrationsDir string `env:"ACCOUNTS_DB_MIGRATIONS" env-default:"migrations"`
}

type KafkaConfig struct {
	BrokerURL        string `env:"KAFKA_BROKER_URL"`
	OrderEventsTopic string `env:"KAFKA_ORDER_EVENTS_TOPIC" env-default:"order-events"`
}
