package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/International-Combat-Archery-Alliance/registration-payments/ptr"
	"github.com/International-Combat-Archery-Alliance/registration-payments/registration"
	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	container "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var mongoTestContainer *container.MongoDBContainer
var mongoClient *mongo.Client
var db *DB

const (
	databaseName   = "registration_payments_test"
	collectionName = "registrations"
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*60)
	defer cancel()

	err := setupMongo(ctx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer shutdownMongo(ctx)

	os.Exit(m.Run())
}

func setupMongo(ctx context.Context) error {
	uri := "mongodb://localhost:27017"
	if _, ok := os.LookupEnv("TEST_IN_CI"); !ok {
		var err error
		mongoTestContainer, err = container.Run(ctx, "mongo:7")
		if err != nil {
			return fmt.Errorf("error starting mongo testcontainer: %w", err)
		}

		uri, err = mongoTestContainer.ConnectionString(ctx)
		if err != nil {
			return fmt.Errorf("failed to get connection string: %w", err)
		}
	}

	var err error
	mongoClient, err = mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}

	db = NewDB(mongoClient.Database(databaseName).Collection(collectionName))

	return nil
}

func resetCollection(ctx context.Context) {
	err := mongoClient.Database(databaseName).Collection(collectionName).Drop(ctx)
	if err != nil {
		fmt.Printf("failed to drop collection: %s", err)
	}
}

func shutdownMongo(ctx context.Context) {
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			fmt.Printf("error disconnecting mongo client: %s\n", err)
		}
	}

	if mongoTestContainer == nil {
		return
	}

	err := mongoTestContainer.Terminate(ctx)
	if err != nil {
		fmt.Printf("error terminating mongo testcontainer: %s\n", err)
	}
}

func newPendingRegistration() registration.Registration {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return registration.Registration{
		ID:            uuid.New(),
		Name:          "Jane Archer",
		Email:         "jane@example.com",
		Phone:         "555-0100",
		Event:         "Spring Open",
		PaymentStatus: registration.PAYMENT_STATUS_PENDING,
		AmountPaid:    money.New(0, registration.Currency),
		RegisteredAt:  now,
		UpdatedAt:     now,
	}
}

func TestCreateRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully create and read back a registration", func(t *testing.T) {
		resetCollection(ctx)
		reg := newPendingRegistration()

		require.NoError(t, db.CreateRegistration(ctx, reg))

		got, err := db.GetRegistration(ctx, reg.ID)
		require.NoError(t, err)
		assert.Equal(t, reg.ID, got.ID)
		assert.Equal(t, reg.Name, got.Name)
		assert.Equal(t, reg.Event, got.Event)
		assert.Equal(t, registration.PAYMENT_STATUS_PENDING, got.PaymentStatus)
		assert.Equal(t, int64(0), got.AmountPaid.Amount())
		assert.Nil(t, got.PayerName)
		assert.True(t, reg.RegisteredAt.Equal(got.RegisteredAt))
	})

	t.Run("fail to create a registration that already exists", func(t *testing.T) {
		resetCollection(ctx)
		reg := newPendingRegistration()

		require.NoError(t, db.CreateRegistration(ctx, reg))

		err := db.CreateRegistration(ctx, reg)
		var regError *registration.Error
		require.ErrorAs(t, err, &regError)
		assert.Equal(t, registration.REASON_REGISTRATION_ALREADY_EXISTS, regError.Reason)
	})
}

func TestGetRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("registration does not exist", func(t *testing.T) {
		resetCollection(ctx)

		_, err := db.GetRegistration(ctx, uuid.New())
		var regError *registration.Error
		require.ErrorAs(t, err, &regError)
		assert.Equal(t, registration.REASON_REGISTRATION_DOES_NOT_EXIST, regError.Reason)
	})
}

func TestMarkRegistrationPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("sets amount, status and payer metadata", func(t *testing.T) {
		resetCollection(ctx)
		reg := newPendingRegistration()
		require.NoError(t, db.CreateRegistration(ctx, reg))

		updated, err := db.MarkRegistrationPaid(ctx, reg.ID, registration.Payment{
			AmountPaid:    money.New(1250, registration.Currency),
			PayerName:     ptr.String("Jane Archer"),
			TransactionID: ptr.String("CAPTURE-1"),
			PaidAt:        time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, registration.PAYMENT_STATUS_COMPLETED, updated.PaymentStatus)
		assert.Equal(t, int64(1250), updated.AmountPaid.Amount())
		assert.Equal(t, "CAPTURE-1", *updated.TransactionID)
		assert.Equal(t, reg.Email, updated.Email)
	})

	t.Run("registration does not exist", func(t *testing.T) {
		resetCollection(ctx)
		id := uuid.New()

		_, err := db.MarkRegistrationPaid(ctx, id, registration.Payment{
			AmountPaid: money.New(1250, registration.Currency),
			PaidAt:     time.Now().UTC(),
		})
		var regError *registration.Error
		require.ErrorAs(t, err, &regError)
		assert.Equal(t, registration.REASON_REGISTRATION_DOES_NOT_EXIST, regError.Reason)

		count, err := mongoClient.Database(databaseName).Collection(collectionName).CountDocuments(ctx, map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
