package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/International-Combat-Archery-Alliance/middleware"
	"github.com/International-Combat-Archery-Alliance/registration-payments/api"
	"github.com/Rhymond/go-money"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	storeBackendDynamo = "dynamo"
	storeBackendMongo  = "mongo"
)

type Config struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"local"`

	StoreBackend    string        `env:"STORE_BACKEND" envDefault:"dynamo"`
	StoreTimeout    time.Duration `env:"STORE_TIMEOUT" envDefault:"1s"`
	DynamoTableName string        `env:"DYNAMO_TABLE_NAME" envDefault:"RegistrationPayments"`
	// Points the dynamo client at DynamoDB Local
	DynamoEndpoint  string `env:"DYNAMO_ENDPOINT"`
	MongoURI        string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase   string `env:"MONGO_DATABASE" envDefault:"registrations"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"registrations"`

	PaypalBaseURL      string `env:"PAYPAL_BASE_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	PaypalClientID     string `env:"PAYPAL_CLIENT_ID"`
	PaypalClientSecret string `env:"PAYPAL_CLIENT_SECRET"`
	// SSM parameter holding the client secret, used when PAYPAL_CLIENT_SECRET isn't set
	PaypalClientSecretSSMParam string        `env:"PAYPAL_CLIENT_SECRET_SSM_PARAM"`
	PaypalCurrency             string        `env:"PAYPAL_CURRENCY" envDefault:"USD"`
	PaypalTimeout              time.Duration `env:"PAYPAL_TIMEOUT" envDefault:"10s"`

	RedisURL string `env:"REDIS_URL"`

	EmailFromAddress string `env:"EMAIL_FROM_ADDRESS" envDefault:"ICAA <info@icaa.world>"`
	StaticDir        string `env:"STATIC_DIR"`

	// Origins browsers may call the API from. Empty lists fall back to the ICAA defaults.
	CorsLocalOrigins []string `env:"CORS_LOCAL_ORIGINS" envSeparator:","`
	CorsProdOrigins  []string `env:"CORS_PROD_ORIGINS" envSeparator:","`

	OtelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// loadConfig reads the config from the environment. With APP_ENV=local a .env file is
// loaded first; variables already set win over it.
func loadConfig(dotenvPaths ...string) (Config, error) {
	if shouldLoadDotenv() {
		if err := godotenv.Load(dotenvPaths...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}

func (c Config) validate() error {
	var errs []error

	if c.Env != "local" && c.Env != "prod" {
		errs = append(errs, fmt.Errorf("ENV must be local or prod, got %q", c.Env))
	}
	if c.StoreBackend != storeBackendDynamo && c.StoreBackend != storeBackendMongo {
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be %s or %s, got %q", storeBackendDynamo, storeBackendMongo, c.StoreBackend))
	}
	if c.PaypalClientID == "" {
		errs = append(errs, errors.New("PAYPAL_CLIENT_ID is required"))
	}
	if c.PaypalClientSecret == "" && c.PaypalClientSecretSSMParam == "" {
		errs = append(errs, errors.New("one of PAYPAL_CLIENT_SECRET or PAYPAL_CLIENT_SECRET_SSM_PARAM is required"))
	}
	if money.GetCurrency(c.PaypalCurrency) == nil {
		errs = append(errs, fmt.Errorf("PAYPAL_CURRENCY %q is not a currency", c.PaypalCurrency))
	}

	return errors.Join(errs...)
}

func (c Config) environment() api.Environment {
	if c.Env == "prod" {
		return api.PROD
	}
	return api.LOCAL
}

func (c Config) corsConfig() middleware.CorsConfig {
	cfg := middleware.DefaultCorsConfig()
	if len(c.CorsLocalOrigins) > 0 {
		cfg.LocalOrigins = c.CorsLocalOrigins
	}
	if len(c.CorsProdOrigins) > 0 {
		cfg.ProdOrigins = c.CorsProdOrigins
	}
	cfg.IsProduction = c.Env == "prod"

	return cfg
}
