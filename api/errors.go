package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/International-Combat-Archery-Alliance/registration-payments/paypal"
	"github.com/International-Combat-Archery-Alliance/registration-payments/registration"
)

func writeJSON(w http.ResponseWriter, logger *slog.Logger, statusCode int, body any) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		logger.Error("failed to marshal response body", slog.String("error", err.Error()))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal error", "code": "InternalError"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonBody)
}

func writeError(w http.ResponseWriter, logger *slog.Logger, statusCode int, e Error) {
	writeJSON(w, logger, statusCode, e)
}

// requestErrorHandler answers bodies the strict handler could not decode.
func (a *API) requestErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	logger := a.getLoggerOrBaseLogger(r.Context())
	logger.Warn("Invalid request body", slog.String("error", err.Error()), slog.String("route", r.Pattern))

	if path, ok := reconcilePathsByRoute[r.Pattern]; ok {
		a.metrics.observeReconciliation(path, string(InputValidationError))
	}

	writeError(w, logger, http.StatusBadRequest, Error{
		Message: "Invalid body",
		Code:    InputValidationError,
	})
}

func (a *API) responseErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	logger := a.getLoggerOrBaseLogger(r.Context())
	logger.Error("Failed to write response", slog.String("error", err.Error()), slog.String("route", r.Pattern))

	writeError(w, logger, http.StatusInternalServerError, Error{
		Message: "Internal error",
		Code:    InternalError,
	})
}

// errorResponse maps an error from the registration package onto what the client sees.
// fallbackMessage is used for anything that isn't the client's fault.
func errorResponse(err error, fallbackMessage string) (int, Error) {
	var registrationErr *registration.Error
	if errors.As(err, &registrationErr) {
		switch registrationErr.Reason {
		case registration.REASON_VALIDATION_FAILED:
			return http.StatusBadRequest, Error{
				Message: registrationErr.Message,
				Code:    InputValidationError,
			}
		case registration.REASON_REGISTRATION_DOES_NOT_EXIST:
			return http.StatusNotFound, Error{
				Message: "Registration not found",
				Code:    NotFound,
			}
		case registration.REASON_PAYMENT_NOT_COMPLETED:
			return http.StatusBadRequest, Error{
				Message: "Payment not completed",
				Code:    PaymentNotCompleted,
			}
		case registration.REASON_PAYMENT_PROVIDER_FAILED:
			return http.StatusInternalServerError, Error{
				Message: "Payment provider request failed",
				Code:    PaymentProviderError,
			}
		}
	}

	return http.StatusInternalServerError, Error{
		Message: fallbackMessage,
		Code:    InternalError,
	}
}

// paypalErrorAttrs pulls PayPal's own response body out of err for logging, if there is one.
func paypalErrorAttrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}

	var paypalErr *paypal.Error
	if errors.As(err, &paypalErr) {
		attrs = append(attrs, slog.String("paypal-reason", string(paypalErr.Reason)))
		if len(paypalErr.Body) > 0 {
			attrs = append(attrs, slog.String("paypal-response", string(paypalErr.Body)))
		}
	}

	return attrs
}
