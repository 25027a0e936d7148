package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/International-Combat-Archery-Alliance/registration-payments/registration"
	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	defaultTimeout = time.Second
)

var _ registration.Repository = &DB{}

type DB struct {
	coll    *mongo.Collection
	timeout time.Duration
}

type Option func(d *DB)

// WithTimeout bounds every call made to mongo. Defaults to one second.
func WithTimeout(timeout time.Duration) Option {
	return func(d *DB) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func NewDB(coll *mongo.Collection, opts ...Option) *DB {
	d := &DB{
		coll:    coll,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

type registrationMongo struct {
	ID             string                     `bson:"_id"`
	Name           string                     `bson:"name"`
	Email          string                     `bson:"email"`
	Phone          string                     `bson:"phone"`
	Event          string                     `bson:"event"`
	PaymentStatus  registration.PaymentStatus `bson:"paymentStatus"`
	AmountPaid     int64                      `bson:"amountPaid"`
	AmountCurrency string                     `bson:"amountCurrency"`
	PayerName      *string                    `bson:"payerName,omitempty"`
	TransactionID  *string                    `bson:"transactionId,omitempty"`
	RegisteredAt   time.Time                  `bson:"registeredAt"`
	UpdatedAt      time.Time                  `bson:"updatedAt"`
}

func registrationToMongo(reg registration.Registration) registrationMongo {
	amount := reg.AmountPaid
	if amount == nil {
		amount = money.New(0, registration.Currency)
	}

	return registrationMongo{
		ID:             reg.ID.String(),
		Name:           reg.Name,
		Email:          reg.Email,
		Phone:          reg.Phone,
		Event:          reg.Event,
		PaymentStatus:  reg.PaymentStatus,
		AmountPaid:     amount.Amount(),
		AmountCurrency: amount.Currency().Code,
		PayerName:      reg.PayerName,
		TransactionID:  reg.TransactionID,
		RegisteredAt:   reg.RegisteredAt,
		UpdatedAt:      reg.UpdatedAt,
	}
}

func mongoToRegistration(doc registrationMongo) (registration.Registration, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return registration.Registration{}, registration.NewFailedToTranslateToDBModelError(fmt.Sprintf("Stored registration has invalid id %q", doc.ID), err)
	}

	currency := doc.AmountCurrency
	if currency == "" {
		currency = registration.Currency
	}

	return registration.Registration{
		ID:            id,
		Name:          doc.Name,
		Email:         doc.Email,
		Phone:         doc.Phone,
		Event:         doc.Event,
		PaymentStatus: doc.PaymentStatus,
		AmountPaid:    money.New(doc.AmountPaid, currency),
		PayerName:     doc.PayerName,
		TransactionID: doc.TransactionID,
		RegisteredAt:  doc.RegisteredAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

func (d *DB) CreateRegistration(ctx context.Context, reg registration.Registration) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	_, err := d.coll.InsertOne(ctx, registrationToMongo(reg))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return registration.NewRegistrationAlreadyExistsError(fmt.Sprintf("Registration with ID %q already exists", reg.ID), err)
		} else if mongo.IsTimeout(err) {
			return registration.NewTimeoutError("CreateRegistration timed out")
		}
		return registration.NewFailedToWriteError("Failed InsertOne call", err)
	}

	return nil
}

func (d *DB) GetRegistration(ctx context.Context, id uuid.UUID) (registration.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var doc registrationMongo
	err := d.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with id %q not found", id), nil)
		} else if mongo.IsTimeout(err) {
			return registration.Registration{}, registration.NewTimeoutError("GetRegistration timed out")
		}
		return registration.Registration{}, registration.NewFailedToFetchError(fmt.Sprintf("Failed to fetch registration with id %q", id), err)
	}

	return mongoToRegistration(doc)
}

func (d *DB) MarkRegistrationPaid(ctx context.Context, id uuid.UUID, payment registration.Payment) (registration.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	amount := payment.AmountPaid
	if amount == nil {
		amount = money.New(0, registration.Currency)
	}

	set := bson.M{
		"paymentStatus":  registration.PAYMENT_STATUS_COMPLETED,
		"amountPaid":     amount.Amount(),
		"amountCurrency": amount.Currency().Code,
		"updatedAt":      payment.PaidAt,
	}
	if payment.PayerName != nil {
		set["payerName"] = *payment.PayerName
	}
	if payment.TransactionID != nil {
		set["transactionId"] = *payment.TransactionID
	}

	// No upsert, a payment for an unknown registration must not create one
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc registrationMongo
	err := d.coll.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with id %q not found", id), nil)
		} else if mongo.IsTimeout(err) {
			return registration.Registration{}, registration.NewTimeoutError("MarkRegistrationPaid timed out")
		}
		return registration.Registration{}, registration.NewFailedToWriteError("Failed FindOneAndUpdate call", err)
	}

	return mongoToRegistration(doc)
}
