package registration

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/International-Combat-Archery-Alliance/registration-payments/paypal"
	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/International-Combat-Archery-Alliance/registration-payments/registration")

type PaymentProvider interface {
	GetAccessToken(ctx context.Context) (paypal.AccessToken, error)
	CaptureOrder(ctx context.Context, orderID string, token paypal.AccessToken) (paypal.Capture, error)
}

var _ PaymentProvider = &paypal.Client{}

// ReconcileCapture captures a PayPal order and marks the registration paid with the
// amount PayPal actually collected.
//
// The capture is returned whenever PayPal answered, including alongside a
// PAYMENT_NOT_COMPLETED error, so callers can show what PayPal said.
// Capturing the same order twice writes the same values twice.
func ReconcileCapture(ctx context.Context, orderID string, registrationID string, provider PaymentProvider, repo Repository) (Registration, paypal.Capture, error) {
	ctx, span := tracer.Start(ctx, "registration.ReconcileCapture", trace.WithAttributes(
		attribute.String("paypal.order_id", orderID),
		attribute.String("registration.id", registrationID),
	))
	defer span.End()

	reg, capture, err := reconcileCapture(ctx, orderID, registrationID, provider, repo)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return reg, capture, err
}

func reconcileCapture(ctx context.Context, orderID string, registrationID string, provider PaymentProvider, repo Repository) (Registration, paypal.Capture, error) {
	if orderID == "" || registrationID == "" {
		return Registration{}, paypal.Capture{}, NewValidationError("orderID and registrationId are required")
	}

	id, err := parseRegistrationID(registrationID)
	if err != nil {
		return Registration{}, paypal.Capture{}, err
	}

	token, err := provider.GetAccessToken(ctx)
	if err != nil {
		return Registration{}, paypal.Capture{}, NewPaymentProviderError("Failed to get PayPal access token", err)
	}

	capture, err := provider.CaptureOrder(ctx, orderID, token)
	if err != nil {
		return Registration{}, paypal.Capture{}, NewPaymentProviderError(fmt.Sprintf("Failed to capture PayPal order %q", orderID), err)
	}

	if !capture.IsCompleted() {
		return Registration{}, capture, NewPaymentNotCompletedError(fmt.Sprintf("PayPal order %q was not captured, status %q", orderID, capture.Status))
	}

	// Orders are always created with a single purchase unit
	entry, _ := capture.FirstCapture()

	amount, err := entry.Amount.ToMoney(Currency)
	if err != nil {
		return Registration{}, capture, NewPaymentProviderError(fmt.Sprintf("PayPal reported an unusable amount for order %q", orderID), err)
	}

	payment := Payment{
		AmountPaid: amount,
		PaidAt:     time.Now().UTC(),
	}
	if entry.ID != "" {
		payment.TransactionID = &entry.ID
	}
	if name := capture.Payer.FullName(); name != "" {
		payment.PayerName = &name
	}

	reg, err := repo.MarkRegistrationPaid(ctx, id, payment)
	if err != nil {
		return Registration{}, capture, err
	}

	return reg, capture, nil
}

// Notification is a payment the client says it made, e.g. through Google Pay.
type Notification struct {
	RegistrationID string
	AmountPaid     *float64
	PayerName      *string
	TransactionID  *string
}

// ReconcileNotification marks the registration paid with whatever amount the client
// reported. Nothing here checks the amount against the payment provider, so the
// amount stored is only as trustworthy as the caller.
func ReconcileNotification(ctx context.Context, notification Notification, repo Repository) (Registration, error) {
	ctx, span := tracer.Start(ctx, "registration.ReconcileNotification", trace.WithAttributes(
		attribute.String("registration.id", notification.RegistrationID),
	))
	defer span.End()

	reg, err := reconcileNotification(ctx, notification, repo)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return reg, err
}

func reconcileNotification(ctx context.Context, notification Notification, repo Repository) (Registration, error) {
	// A zero amount counts as missing
	if notification.RegistrationID == "" || notification.AmountPaid == nil || *notification.AmountPaid == 0 {
		return Registration{}, NewValidationError("registrationId and amountPaid required")
	}

	id, err := parseRegistrationID(notification.RegistrationID)
	if err != nil {
		return Registration{}, err
	}

	return repo.MarkRegistrationPaid(ctx, id, Payment{
		AmountPaid:    moneyFromMajorUnits(*notification.AmountPaid, Currency),
		PayerName:     notification.PayerName,
		TransactionID: notification.TransactionID,
		PaidAt:        time.Now().UTC(),
	})
}

// moneyFromMajorUnits rounds to the nearest minor unit. 0.29 is 0.28999... as a float64,
// so truncating would lose a cent.
func moneyFromMajorUnits(amount float64, currency string) *money.Money {
	fraction := money.GetCurrency(currency).Fraction
	return money.New(int64(math.Round(amount*math.Pow10(fraction))), currency)
}

// IDs that can't be parsed can't be in the store either.
func parseRegistrationID(registrationID string) (uuid.UUID, error) {
	id, err := uuid.Parse(registrationID)
	if err != nil {
		return uuid.Nil, NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with ID %q does not exist", registrationID), err)
	}

	return id, nil
}

// IsReason reports whether err is a registration error with the given reason.
func IsReason(err error, reason ErrorReason) bool {
	var regErr *Error
	return errors.As(err, &regErr) && regErr.Reason == reason
}
