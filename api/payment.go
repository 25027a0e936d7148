package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/International-Combat-Archery-Alliance/registration-payments/paypal"
	"github.com/International-Combat-Archery-Alliance/registration-payments/ptr"
	"github.com/International-Combat-Archery-Alliance/registration-payments/registration"
)

// paypalOrderResponse is PayPal's order passed back to the browser untouched.
type paypalOrderResponse json.RawMessage

func (response paypalOrderResponse) VisitPostApiPaypalOrderResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(response)
	return err
}

func (a *API) PostApiGpayNotification(ctx context.Context, request PostApiGpayNotificationRequestObject) (PostApiGpayNotificationResponseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)
	body := request.Body
	registrationID := ptr.Deref(body.RegistrationId)

	reg, err := registration.ReconcileNotification(ctx, registration.Notification{
		RegistrationID: registrationID,
		AmountPaid:     body.AmountPaid,
		PayerName:      body.PayerName,
		TransactionID:  body.TransactionId,
	}, a.db)
	if err != nil {
		statusCode, e := errorResponse(err, "Failed to update payment")
		a.metrics.observeReconciliation(reconcilePathNotification, string(e.Code))

		switch statusCode {
		case http.StatusBadRequest:
			logger.Warn("Rejected gpay notification", slog.String("error", err.Error()), slog.String("registration-id", registrationID))
			return PostApiGpayNotification400JSONResponse(e), nil
		case http.StatusNotFound:
			logger.Warn("Rejected gpay notification", slog.String("error", err.Error()), slog.String("registration-id", registrationID))
			return PostApiGpayNotification404JSONResponse(e), nil
		default:
			logger.Error("Failed to update payment from gpay notification", slog.String("error", err.Error()), slog.String("registration-id", registrationID))
			return PostApiGpayNotification500JSONResponse(e), nil
		}
	}

	a.metrics.observeReconciliation(reconcilePathNotification, "success")
	logger.Info("Payment updated from gpay notification",
		slog.String("registration-id", reg.ID.String()),
		slog.String("amount", reg.AmountPaid.Display()),
		slog.String("payer-name", ptr.Deref(reg.PayerName)),
		slog.String("transaction-id", ptr.Deref(reg.TransactionID)),
	)

	a.sendConfirmationEmail(ctx, logger, reg)

	return PostApiGpayNotification200JSONResponse{
		Success:      true,
		Registration: registrationToApiRegistration(reg),
	}, nil
}

func (a *API) PostApiPaypalOrder(ctx context.Context, request PostApiPaypalOrderRequestObject) (PostApiPaypalOrderResponseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	amount, err := paypal.ParseAmount(request.Body.Amount.String(), a.provider.Currency())
	if err != nil {
		return PostApiPaypalOrder400JSONResponse{
			Message: err.Error(),
			Code:    InputValidationError,
		}, nil
	}

	order, err := a.provider.CreateOrder(ctx, amount)
	if err != nil {
		var paypalErr *paypal.Error
		if errors.As(err, &paypalErr) && paypalErr.Reason == paypal.REASON_INVALID_AMOUNT {
			return PostApiPaypalOrder400JSONResponse{
				Message: paypalErr.Message,
				Code:    InputValidationError,
			}, nil
		}

		logger.Error("Failed to create paypal order", paypalErrorAttrs(err)...)

		return PostApiPaypalOrder500JSONResponse{
			Message: "Failed to create order",
			Code:    PaymentProviderError,
		}, nil
	}

	logger.Info("Created paypal order", slog.String("order-id", order.ID), slog.String("amount", amount.Display()))

	return paypalOrderResponse(order.Raw), nil
}

func (a *API) PostApiPaypalCapture(ctx context.Context, request PostApiPaypalCaptureRequestObject) (PostApiPaypalCaptureResponseObject, error) {
	body := request.Body
	logger := a.getLoggerOrBaseLogger(ctx).With(slog.String("order-id", body.OrderID), slog.String("registration-id", body.RegistrationId))

	reg, capture, err := registration.ReconcileCapture(ctx, body.OrderID, body.RegistrationId, a.provider, a.db)
	if err != nil {
		statusCode, e := errorResponse(err, "Failed to capture payment")

		switch {
		case e.Code == PaymentNotCompleted:
			logger.Warn("PayPal capture did not complete", slog.String("capture-status", capture.Status), slog.String("paypal-response", string(capture.Raw)))
			e.Details = capture.Raw
		case e.Code == PaymentProviderError:
			logger.Error("PayPal capture request failed", paypalErrorAttrs(err)...)
		case statusCode >= http.StatusInternalServerError:
			logger.Error("Failed to capture payment", slog.String("error", err.Error()), slog.String("paypal-response", string(capture.Raw)))
		case len(capture.Raw) > 0:
			// Money moved at PayPal but nothing here recorded it
			logger.Error("Captured payment for unknown registration", slog.String("error", err.Error()), slog.String("paypal-response", string(capture.Raw)))
		default:
			logger.Warn("Rejected paypal capture", slog.String("error", err.Error()))
		}

		a.metrics.observeReconciliation(reconcilePathCapture, string(e.Code))

		switch statusCode {
		case http.StatusBadRequest:
			return PostApiPaypalCapture400JSONResponse(e), nil
		case http.StatusNotFound:
			return PostApiPaypalCapture404JSONResponse(e), nil
		default:
			return PostApiPaypalCapture500JSONResponse(e), nil
		}
	}

	a.metrics.observeReconciliation(reconcilePathCapture, "success")
	logger.Info("Payment captured",
		slog.String("amount", reg.AmountPaid.Display()),
		slog.String("transaction-id", ptr.Deref(reg.TransactionID)),
	)

	a.sendConfirmationEmail(ctx, logger, reg)

	return PostApiPaypalCapture200JSONResponse{
		Registration: registrationToApiRegistration(reg),
		CaptureData:  capture.Raw,
	}, nil
}

// sendConfirmationEmail never fails the request, the payment is already recorded.
func (a *API) sendConfirmationEmail(ctx context.Context, logger *slog.Logger, reg registration.Registration) {
	err := registration.SendPaymentConfirmationEmail(ctx, a.emailSender, a.fromAddress, reg)
	if err != nil {
		logger.Error("failed to send payment confirmation email", slog.String("error", err.Error()), slog.String("email", reg.Email))
	}
}
