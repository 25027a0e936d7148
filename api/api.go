package api

//go:generate go tool oapi-codegen --config openapi-codegen-config.yaml openapi.yaml

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/International-Combat-Archery-Alliance/middleware"
	"github.com/International-Combat-Archery-Alliance/registration-payments/paypal"
	"github.com/International-Combat-Archery-Alliance/registration-payments/registration"
	"github.com/Rhymond/go-money"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var openapiDoc []byte

type Environment int

const (
	LOCAL Environment = iota
	PROD
)

type DB interface {
	registration.Repository
}

type PaymentProvider interface {
	registration.PaymentProvider
	CreateOrder(ctx context.Context, amount *money.Money) (paypal.Order, error)
	Currency() string
}

var _ PaymentProvider = &paypal.Client{}

type API struct {
	db          DB
	provider    PaymentProvider
	emailSender email.Sender
	fromAddress string
	logger      *slog.Logger
	env         Environment
	metrics     *metrics
	gatherer    prometheus.Gatherer
	staticDir   string
	corsConfig  *middleware.CorsConfig
}

var _ StrictServerInterface = (*API)(nil)

type Option func(a *API)

// WithStaticDir serves the front-end bundle in dir at "/".
func WithStaticDir(dir string) Option {
	return func(a *API) {
		a.staticDir = dir
	}
}

// WithRegistry registers the API's metrics with reg and serves it at /metrics.
// Defaults to the prometheus default registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *API) {
		a.metrics = newMetrics(reg)
		a.gatherer = reg
	}
}

// WithCorsConfig sets the origins browsers may call the API from. IsProduction is
// always taken from the API's environment.
func WithCorsConfig(cfg middleware.CorsConfig) Option {
	return func(a *API) {
		a.corsConfig = &cfg
	}
}

func NewAPI(db DB, provider PaymentProvider, emailSender email.Sender, fromAddress string, logger *slog.Logger, env Environment, opts ...Option) *API {
	a := &API{
		db:          db,
		provider:    provider,
		emailSender: emailSender,
		fromAddress: fromAddress,
		logger:      logger,
		env:         env,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.metrics == nil {
		a.metrics = newMetrics(prometheus.DefaultRegisterer)
		a.gatherer = prometheus.DefaultGatherer
	}

	if a.corsConfig == nil {
		cfg := middleware.DefaultCorsConfig()
		a.corsConfig = &cfg
	}
	a.corsConfig.IsProduction = env == PROD

	return a
}

// GetSwagger loads the embedded OpenAPI document the request validator checks against.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(openapiDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi doc: %w", err)
	}

	err = swagger.Validate(loader.Context)
	if err != nil {
		return nil, fmt.Errorf("openapi doc is invalid: %w", err)
	}

	return swagger, nil
}

// Handler builds the full HTTP handler: routes plus every middleware.
func (a *API) Handler() (http.Handler, error) {
	swagger, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	// Validate against whatever host the request came in on
	swagger.Servers = nil

	r := http.NewServeMux()

	strictHandler := NewStrictHandlerWithOptions(a, []StrictMiddlewareFunc{}, StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  a.requestErrorHandler,
		ResponseErrorHandlerFunc: a.responseErrorHandler,
	})
	HandlerFromMux(strictHandler, r)

	r.HandleFunc("GET /healthz", a.GetHealthz)
	r.Handle("GET /metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{}))

	if a.staticDir != "" {
		r.Handle("GET /", http.FileServer(http.Dir(a.staticDir)))
	}

	return middleware.UseMiddlewares(
		r,
		a.openapiValidateMiddleware(swagger, "/api/"),
		limitBodyMiddleware(maxBodyBytes),
		a.recoverMiddleware(),
		a.metricsMiddleware(),
		a.requestIdMiddleware(),
		middleware.AccessLogging(a.logger),
		middleware.CorsMiddleware(*a.corsConfig),
	), nil
}

func (a *API) GetHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.getLoggerOrBaseLogger(r.Context()), http.StatusOK, map[string]string{"status": "ok"})
}
