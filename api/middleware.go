package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/International-Combat-Archery-Alliance/middleware"
	"github.com/felixge/httpsnoop"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/google/uuid"
	nethttpmiddleware "github.com/oapi-codegen/nethttp-middleware"
)

const (
	requestIdHeader = "X-Request-Id"
	maxBodyBytes    = 65536
)

// requestIdMiddleware tags the request and its logger with an id, reusing the caller's
// X-Request-Id when it is a uuid. It has to run inside middleware.AccessLogging, which
// replaces the context logger.
func (a *API) requestIdMiddleware() middleware.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestId, err := uuid.Parse(r.Header.Get(requestIdHeader))
			if err != nil {
				requestId = uuid.New()
			}
			w.Header().Set(requestIdHeader, requestId.String())

			ctx := ctxWithRequestId(r.Context(), requestId)
			ctx = middleware.CtxWithLogger(ctx, a.getLoggerOrBaseLogger(ctx).With(slog.String("request-id", requestId.String())))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *API) metricsMiddleware() middleware.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			// ServeMux fills in the pattern on the way through
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			a.metrics.observeRequest(route, m.Code, m.Duration)
		})
	}
}

func (a *API) recoverMiddleware() middleware.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger := a.getLoggerOrBaseLogger(r.Context())
					logger.ErrorContext(r.Context(), "Recovered from panic in handler",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)

					writeError(w, logger, http.StatusInternalServerError, Error{
						Message: "Internal error",
						Code:    InternalError,
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func limitBodyMiddleware(maxBytes int64) middleware.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// openapiValidateMiddleware validates requests under pathPrefix against swagger. Everything
// else (health, metrics, static files) is passed straight through.
func (a *API) openapiValidateMiddleware(swagger *openapi3.T, pathPrefix string) middleware.MiddlewareFunc {
	validator := nethttpmiddleware.OapiRequestValidatorWithOptions(swagger, &nethttpmiddleware.Options{
		ErrorHandlerWithOpts: func(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, opts nethttpmiddleware.ErrorHandlerOpts) {
			var e Error

			var requestErr *openapi3filter.RequestError
			if opts.StatusCode == http.StatusNotFound {
				e = Error{
					Message: "Route not found",
					Code:    NotFound,
				}
			} else if errors.As(err, &requestErr) {
				e = Error{
					Message: err.Error(),
					Code:    InputValidationError,
				}
			} else {
				e = Error{
					Message: err.Error(),
					Code:    InternalError,
				}
			}

			writeError(w, a.getLoggerOrBaseLogger(ctx), opts.StatusCode, e)
		},
	})

	return func(next http.Handler) http.Handler {
		validated := validator(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, pathPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			validated.ServeHTTP(w, r)
		})
	}
}
