package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/International-Combat-Archery-Alliance/middleware"
	"github.com/International-Combat-Archery-Alliance/registration-payments/api"
	"github.com/International-Combat-Archery-Alliance/registration-payments/paypal"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func newLogger(env api.Environment) *slog.Logger {
	if env == api.LOCAL {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	env := cfg.environment()
	logger := newLogger(env)
	slog.SetDefault(logger)

	shutdownTracing, err := setupTracing(ctx, cfg.OtelEndpoint)
	if err != nil {
		return err
	}
	defer closeWithTimeout(logger, "tracing", shutdownTracing)

	var awsCfg aws.Config
	if needsAWS(cfg) {
		awsCfg, err = loadAWSConfig(ctx, cfg)
		if err != nil {
			return err
		}
	}

	db, closeDB, err := createStore(ctx, cfg, awsCfg, logger)
	if err != nil {
		return err
	}
	defer closeWithTimeout(logger, "store", closeDB)

	clientSecret, err := getPaypalClientSecret(ctx, cfg, ssm.NewFromConfig(awsCfg))
	if err != nil {
		return err
	}

	tokenCache, closeCache, err := createTokenCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeWithTimeout(logger, "token cache", closeCache)

	provider := paypal.NewClient(paypal.Config{
		BaseURL:      cfg.PaypalBaseURL,
		ClientID:     cfg.PaypalClientID,
		ClientSecret: clientSecret,
		Currency:     cfg.PaypalCurrency,
		Timeout:      cfg.PaypalTimeout,
	}, paypal.WithTokenCache(tokenCache))

	emailSender := createEmailSender(logger, env, awsCfg)

	registrationAPI := api.NewAPI(db, provider, emailSender, cfg.EmailFromAddress, logger, env,
		api.WithStaticDir(cfg.StaticDir),
		api.WithCorsConfig(cfg.corsConfig()),
	)

	h, err := registrationAPI.Handler()
	if err != nil {
		return fmt.Errorf("failed to build handler: %w", err)
	}

	s := &http.Server{
		Handler:           middleware.OTELHandler(h),
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Long enough for a token fetch plus a capture
		WriteTimeout: 2*cfg.PaypalTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", slog.String("addr", s.Addr), slog.String("store", cfg.StoreBackend))
		serveErr <- s.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func closeWithTimeout(logger *slog.Logger, name string, closeFn closeFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := closeFn(ctx); err != nil {
		logger.Error("Failed to close", slog.String("resource", name), slog.String("error", err.Error()))
	}
}
