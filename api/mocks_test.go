package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/International-Combat-Archery-Alliance/registration-payments/paypal"
	"github.com/International-Combat-Archery-Alliance/registration-payments/registration"
	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var noopLogger = slog.New(slog.DiscardHandler)

var _ DB = &mockDB{}

type mockDB struct {
	CreateRegistrationFunc   func(ctx context.Context, reg registration.Registration) error
	GetRegistrationFunc      func(ctx context.Context, id uuid.UUID) (registration.Registration, error)
	MarkRegistrationPaidFunc func(ctx context.Context, id uuid.UUID, payment registration.Payment) (registration.Registration, error)

	mu            sync.Mutex
	registrations map[uuid.UUID]registration.Registration
	writes        int
}

// newMemoryDB returns a mockDB that keeps registrations in a map unless a func is overridden.
func newMemoryDB() *mockDB {
	return &mockDB{registrations: map[uuid.UUID]registration.Registration{}}
}

func (m *mockDB) CreateRegistration(ctx context.Context, reg registration.Registration) error {
	if m.CreateRegistrationFunc != nil {
		return m.CreateRegistrationFunc(ctx, reg)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.registrations[reg.ID]; ok {
		return registration.NewRegistrationAlreadyExistsError("exists", nil)
	}
	m.registrations[reg.ID] = reg
	m.writes++
	return nil
}

func (m *mockDB) GetRegistration(ctx context.Context, id uuid.UUID) (registration.Registration, error) {
	if m.GetRegistrationFunc != nil {
		return m.GetRegistrationFunc(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	reg, ok := m.registrations[id]
	if !ok {
		return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("no registration %s", id), nil)
	}
	return reg, nil
}

func (m *mockDB) MarkRegistrationPaid(ctx context.Context, id uuid.UUID, payment registration.Payment) (registration.Registration, error) {
	if m.MarkRegistrationPaidFunc != nil {
		return m.MarkRegistrationPaidFunc(ctx, id, payment)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	reg, ok := m.registrations[id]
	if !ok {
		return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("no registration %s", id), nil)
	}

	reg.PaymentStatus = registration.PAYMENT_STATUS_COMPLETED
	reg.AmountPaid = payment.AmountPaid
	if payment.PayerName != nil {
		reg.PayerName = payment.PayerName
	}
	if payment.TransactionID != nil {
		reg.TransactionID = payment.TransactionID
	}
	reg.UpdatedAt = payment.PaidAt

	m.registrations[id] = reg
	m.writes++
	return reg, nil
}

func (m *mockDB) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *mockDB) seedPending(t *testing.T, email string) registration.Registration {
	t.Helper()

	reg, err := registration.CreateRegistration(context.Background(), registration.NewRegistration{
		Name:  "Jane Archer",
		Email: email,
		Phone: "555-0100",
		Event: "Spring Open",
	}, m)
	require.NoError(t, err)

	return reg
}

var _ PaymentProvider = &mockPaymentProvider{}

type mockPaymentProvider struct {
	GetAccessTokenFunc func(ctx context.Context) (paypal.AccessToken, error)
	CaptureOrderFunc   func(ctx context.Context, orderID string, token paypal.AccessToken) (paypal.Capture, error)
	CreateOrderFunc    func(ctx context.Context, amount *money.Money) (paypal.Order, error)
}

func (m *mockPaymentProvider) GetAccessToken(ctx context.Context) (paypal.AccessToken, error) {
	if m.GetAccessTokenFunc != nil {
		return m.GetAccessTokenFunc(ctx)
	}
	return paypal.AccessToken{Value: "token", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *mockPaymentProvider) CaptureOrder(ctx context.Context, orderID string, token paypal.AccessToken) (paypal.Capture, error) {
	if m.CaptureOrderFunc != nil {
		return m.CaptureOrderFunc(ctx, orderID, token)
	}
	return paypal.Capture{}, nil
}

func (m *mockPaymentProvider) CreateOrder(ctx context.Context, amount *money.Money) (paypal.Order, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amount)
	}
	return paypal.Order{}, nil
}

func (m *mockPaymentProvider) Currency() string {
	return money.USD
}

var _ email.Sender = &mockEmailSender{}

type mockEmailSender struct {
	SendEmailFunc func(ctx context.Context, e email.Email) error

	mu   sync.Mutex
	sent []email.Email
}

func (m *mockEmailSender) SendEmail(ctx context.Context, e email.Email) error {
	m.mu.Lock()
	m.sent = append(m.sent, e)
	m.mu.Unlock()

	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, e)
	}
	return nil
}

func (m *mockEmailSender) sentEmails() []email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.Email(nil), m.sent...)
}

const completedCaptureJSON = `{
	"id": "5O190127TN364715T",
	"status": "COMPLETED",
	"payer": {"name": {"given_name": "John", "surname": "Doe"}, "email_address": "john@example.com", "payer_id": "QYR5Z8XDVJNXQ"},
	"purchase_units": [{
		"reference_id": "default",
		"payments": {"captures": [{"id": "3C679366HH908993F", "status": "COMPLETED", "amount": {"currency_code": "USD", "value": "12.50"}}]}
	}]
}`

const declinedCaptureJSON = `{
	"name": "UNPROCESSABLE_ENTITY",
	"details": [{"issue": "INSTRUMENT_DECLINED", "description": "The instrument presented was declined."}],
	"message": "The requested action could not be performed."
}`

func captureFromJSON(t *testing.T, raw string, httpStatus int) paypal.Capture {
	t.Helper()

	var capture paypal.Capture
	require.NoError(t, json.Unmarshal([]byte(raw), &capture))
	capture.HTTPStatus = httpStatus
	capture.Raw = json.RawMessage(raw)

	return capture
}
