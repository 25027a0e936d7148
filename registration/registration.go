package registration

import (
	"context"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PAYMENT_STATUS_PENDING   PaymentStatus = "pending_payment"
	PAYMENT_STATUS_COMPLETED PaymentStatus = "completed"
)

// Currency every registration is paid in. There is no conversion between currencies.
const Currency = money.USD

type Repository interface {
	CreateRegistration(ctx context.Context, registration Registration) error
	GetRegistration(ctx context.Context, id uuid.UUID) (Registration, error)
	// MarkRegistrationPaid overwrites the payment fields of an existing registration and
	// sets it to completed. It never creates a registration.
	MarkRegistrationPaid(ctx context.Context, id uuid.UUID, payment Payment) (Registration, error)
}

type Registration struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Phone         string
	Event         string
	PaymentStatus PaymentStatus
	AmountPaid    *money.Money
	PayerName     *string
	TransactionID *string
	RegisteredAt  time.Time
	UpdatedAt     time.Time
}

type NewRegistration struct {
	Name  string
	Email string
	Phone string
	Event string
}

// Payment is what gets written onto a registration when it is marked paid.
// Nil payer fields leave whatever was stored before.
type Payment struct {
	AmountPaid    *money.Money
	PayerName     *string
	TransactionID *string
	PaidAt        time.Time
}

func CreateRegistration(ctx context.Context, fields NewRegistration, repo Repository) (Registration, error) {
	now := time.Now().UTC()

	reg := Registration{
		ID:            uuid.New(),
		Name:          fields.Name,
		Email:         fields.Email,
		Phone:         fields.Phone,
		Event:         fields.Event,
		PaymentStatus: PAYMENT_STATUS_PENDING,
		AmountPaid:    money.New(0, Currency),
		RegisteredAt:  now,
		UpdatedAt:     now,
	}

	err := repo.CreateRegistration(ctx, reg)
	if err != nil {
		return Registration{}, err
	}

	return reg, nil
}
