package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/International-Combat-Archery-Alliance/registration-payments/paypal"
	"github.com/International-Combat-Archery-Alliance/registration-payments/registration"
	"github.com/Rhymond/go-money"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostGPayNotification(t *testing.T) {
	t.Run("marks the registration paid with the reported amount", func(t *testing.T) {
		db := newMemoryDB()
		reg := db.seedPending(t, "jane@example.com")
		sender := &mockEmailSender{}
		a, h := newTestHandler(t, db, &mockPaymentProvider{}, sender)

		w := doRequest(h, http.MethodPost, "/api/gpay-notification",
			`{"registrationId":"`+reg.ID.String()+`","amountPaid":500,"payerName":"Jane Archer","transactionId":"gpay-123"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp GPayNotificationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, reg.ID, resp.Registration.Id)
		assert.Equal(t, float64(500), resp.Registration.AmountPaid)
		assert.Equal(t, Completed, resp.Registration.PaymentStatus)
		assert.Equal(t, "gpay-123", *resp.Registration.TransactionId)

		stored, err := db.GetRegistration(context.Background(), reg.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(50000), stored.AmountPaid.Amount())

		emails := sender.sentEmails()
		require.Len(t, emails, 1)
		assert.Equal(t, []string{"jane@example.com"}, emails[0].ToAddresses)

		assert.Equal(t, float64(1), testutil.ToFloat64(a.metrics.reconciliations.WithLabelValues(string(reconcilePathNotification), "success")))
	})

	t.Run("missing fields are rejected without a write", func(t *testing.T) {
		tests := map[string]string{
			"missing amount":          `{"registrationId":"%s"}`,
			"zero amount":             `{"registrationId":"%s","amountPaid":0}`,
			"missing registration id": `{"amountPaid":500}`,
		}

		for name, body := range tests {
			t.Run(name, func(t *testing.T) {
				db := newMemoryDB()
				reg := db.seedPending(t, "jane@example.com")
				writesBefore := db.writeCount()
				a, h := newTestHandler(t, db, &mockPaymentProvider{}, &mockEmailSender{})

				w := doRequest(h, http.MethodPost, "/api/gpay-notification", strings.ReplaceAll(body, "%s", reg.ID.String()))

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, InputValidationError, decodeError(t, w).Code)
				assert.Equal(t, writesBefore, db.writeCount())
				assert.Equal(t, float64(1), testutil.ToFloat64(a.metrics.reconciliations.WithLabelValues(string(reconcilePathNotification), string(InputValidationError))))
			})
		}
	})

	t.Run("unknown registration", func(t *testing.T) {
		db := newMemoryDB()
		_, h := newTestHandler(t, db, &mockPaymentProvider{}, &mockEmailSender{})

		w := doRequest(h, http.MethodPost, "/api/gpay-notification", `{"registrationId":"`+uuid.NewString()+`","amountPaid":500}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, NotFound, decodeError(t, w).Code)
		assert.Equal(t, 0, db.writeCount())
	})

	t.Run("store failure", func(t *testing.T) {
		db := &mockDB{
			MarkRegistrationPaidFunc: func(ctx context.Context, id uuid.UUID, payment registration.Payment) (registration.Registration, error) {
				return registration.Registration{}, registration.NewFailedToWriteError("Failed UpdateItem call", errors.New("boom"))
			},
		}
		_, h := newTestHandler(t, db, &mockPaymentProvider{}, &mockEmailSender{})

		w := doRequest(h, http.MethodPost, "/api/gpay-notification", `{"registrationId":"`+uuid.NewString()+`","amountPaid":500}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		e := decodeError(t, w)
		assert.Equal(t, InternalError, e.Code)
		assert.Equal(t, "Failed to update payment", e.Message)
	})

	t.Run("email failure does not fail the request", func(t *testing.T) {
		db := newMemoryDB()
		reg := db.seedPending(t, "jane@example.com")
		sender := &mockEmailSender{
			SendEmailFunc: func(ctx context.Context, e email.Email) error {
				return errors.New("ses is down")
			},
		}
		_, h := newTestHandler(t, db, &mockPaymentProvider{}, sender)

		w := doRequest(h, http.MethodPost, "/api/gpay-notification", `{"registrationId":"`+reg.ID.String()+`","amountPaid":25}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, sender.sentEmails(), 1)
	})
}

func TestPostPaypalOrder(t *testing.T) {
	t.Run("returns the paypal order untouched", func(t *testing.T) {
		rawOrder := `{"id":"5O190127TN364715T","status":"CREATED","links":[{"href":"https://www.sandbox.paypal.com/checkoutnow?token=5O190127TN364715T","rel":"approve","method":"GET"}]}`

		var gotAmount *money.Money
		provider := &mockPaymentProvider{
			CreateOrderFunc: func(ctx context.Context, amount *money.Money) (paypal.Order, error) {
				gotAmount = amount
				return paypal.Order{ID: "5O190127TN364715T", Status: "CREATED", Raw: json.RawMessage(rawOrder)}, nil
			},
		}
		_, h := newTestHandler(t, newMemoryDB(), provider, &mockEmailSender{})

		w := doRequest(h, http.MethodPost, "/api/paypal/order", `{"amount": 25}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		assert.JSONEq(t, rawOrder, w.Body.String())
		require.NotNil(t, gotAmount)
		assert.Equal(t, int64(2500), gotAmount.Amount())
		assert.Equal(t, money.USD, gotAmount.Currency().Code)
	})

	t.Run("amount as a decimal string", func(t *testing.T) {
		var gotAmount *money.Money
		provider := &mockPaymentProvider{
			CreateOrderFunc: func(ctx context.Context, amount *money.Money) (paypal.Order, error) {
				gotAmount = amount
				return paypal.Order{Raw: json.RawMessage(`{"id":"ORDER-1"}`)}, nil
			},
		}
		_, h := newTestHandler(t, newMemoryDB(), provider, &mockEmailSender{})

		w := doRequest(h, http.MethodPost, "/api/paypal/order", `{"amount": "12.50"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		require.NotNil(t, gotAmount)
		assert.Equal(t, int64(1250), gotAmount.Amount())
	})

	t.Run("amount is kept to the cent", func(t *testing.T) {
		tests := map[string]struct {
			body string
			want int64
		}{
			"19.99":          {body: `{"amount": 19.99}`, want: 1999},
			"0.29":           {body: `{"amount": 0.29}`, want: 29},
			"4.35":           {body: `{"amount": 4.35}`, want: 435},
			"1.15":           {body: `{"amount": 1.15}`, want: 115},
			"8.20":           {body: `{"amount": 8.20}`, want: 820},
			"string 19.99":   {body: `{"amount": "19.99"}`, want: 1999},
			"trailing zeros": {body: `{"amount": "19.9900"}`, want: 1999},
		}

		for name, tc := range tests {
			t.Run(name, func(t *testing.T) {
				var gotAmount *money.Money
				provider := &mockPaymentProvider{
					CreateOrderFunc: func(ctx context.Context, amount *money.Money) (paypal.Order, error) {
						gotAmount = amount
						return paypal.Order{Raw: json.RawMessage(`{"id":"ORDER-1"}`)}, nil
					},
				}
				_, h := newTestHandler(t, newMemoryDB(), provider, &mockEmailSender{})

				w := doRequest(h, http.MethodPost, "/api/paypal/order", tc.body)
				require.Equal(t, http.StatusOK, w.Code, w.Body.String())

				require.NotNil(t, gotAmount)
				assert.Equal(t, tc.want, gotAmount.Amount())
			})
		}
	})

	t.Run("invalid amounts", func(t *testing.T) {
		tests := map[string]string{
			"missing":            `{}`,
			"not number":         `{"amount": "twelve"}`,
			"boolean":            `{"amount": true}`,
			"fraction of a cent": `{"amount": 19.999}`,
			"exponent":           `{"amount": 1e3}`,
		}

		for name, body := range tests {
			t.Run(name, func(t *testing.T) {
				provider := &mockPaymentProvider{
					CreateOrderFunc: func(ctx context.Context, amount *money.Money) (paypal.Order, error) {
						t.Fatal("no order should be created")
						return paypal.Order{}, nil
					},
				}
				_, h := newTestHandler(t, newMemoryDB(), provider, &mockEmailSender{})

				w := doRequest(h, http.MethodPost, "/api/paypal/order", body)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, InputValidationError, decodeError(t, w).Code)
			})
		}
	})

	t.Run("amount paypal would refuse", func(t *testing.T) {
		provider := &mockPaymentProvider{
			CreateOrderFunc: func(ctx context.Context, amount *money.Money) (paypal.Order, error) {
				return paypal.Order{}, paypal.NewInvalidAmountError("Order amount must be positive")
			},
		}
		_, h := newTestHandler(t, newMemoryDB(), provider, &mockEmailSender{})

		w := doRequest(h, http.MethodPost, "/api/paypal/order", `{"amount": 0}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		e := decodeError(t, w)
		assert.Equal(t, InputValidationError, e.Code)
		assert.Equal(t, "Order amount must be positive", e.Message)
	})

	t.Run("paypal failure", func(t *testing.T) {
		provider := &mockPaymentProvider{
			CreateOrderFunc: func(ctx context.Context, amount *money.Money) (paypal.Order, error) {
				return paypal.Order{}, paypal.NewUpstreamError("PayPal returned 500", nil, []byte(`{"name":"INTERNAL_SERVER_ERROR"}`))
			},
		}
		_, h := newTestHandler(t, newMemoryDB(), provider, &mockEmailSender{})

		w := doRequest(h, http.MethodPost, "/api/paypal/order", `{"amount": 25}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, PaymentProviderError, decodeError(t, w).Code)
	})
}

func TestPostPaypalCapture(t *testing.T) {
	t.Run("captures and marks the registration paid", func(t *testing.T) {
		db := newMemoryDB()
		reg := db.seedPending(t, "jane@example.com")
		sender := &mockEmailSender{}
		provider := &mockPaymentProvider{
			CaptureOrderFunc: func(ctx context.Context, orderID string, token paypal.AccessToken) (paypal.Capture, error) {
				assert.Equal(t, "5O190127TN364715T", orderID)
				return captureFromJSON(t, completedCaptureJSON, http.StatusCreated), nil
			},
		}
		a, h := newTestHandler(t, db, provider, sender)

		w := doRequest(h, http.MethodPost, "/api/paypal/capture", `{"orderID":"5O190127TN364715T","registrationId":"`+reg.ID.String()+`"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Registration Registration   `json:"registration"`
			CaptureData  map[string]any `json:"captureData"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 12.5, resp.Registration.AmountPaid)
		assert.Equal(t, Completed, resp.Registration.PaymentStatus)
		assert.Equal(t, "3C679366HH908993F", *resp.Registration.TransactionId)
		assert.Equal(t, "John Doe", *resp.Registration.PayerName)

		var wantCapture map[string]any
		require.NoError(t, json.Unmarshal([]byte(completedCaptureJSON), &wantCapture))
		if diff := cmp.Diff(wantCapture, resp.CaptureData); diff != "" {
			t.Errorf("captureData mismatch (-want +got):\n%s", diff)
		}

		assert.Len(t, sender.sentEmails(), 1)
		assert.Equal(t, float64(1), testutil.ToFloat64(a.metrics.reconciliations.WithLabelValues(string(reconcilePathCapture), "success")))
	})

	t.Run("capture that did not complete returns paypal's answer", func(t *testing.T) {
		db := newMemoryDB()
		reg := db.seedPending(t, "jane@example.com")
		writesBefore := db.writeCount()
		sender := &mockEmailSender{}
		provider := &mockPaymentProvider{
			CaptureOrderFunc: func(ctx context.Context, orderID string, token paypal.AccessToken) (paypal.Capture, error) {
				return captureFromJSON(t, declinedCaptureJSON, http.StatusUnprocessableEntity), nil
			},
		}
		a, h := newTestHandler(t, db, provider, sender)

		w := doRequest(h, http.MethodPost, "/api/paypal/capture", `{"orderID":"5O190127TN364715T","registrationId":"`+reg.ID.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		e := decodeError(t, w)
		assert.Equal(t, PaymentNotCompleted, e.Code)
		assert.JSONEq(t, declinedCaptureJSON, string(e.Details))

		assert.Equal(t, writesBefore, db.writeCount())
		stored, err := db.GetRegistration(context.Background(), reg.ID)
		require.NoError(t, err)
		assert.Equal(t, registration.PAYMENT_STATUS_PENDING, stored.PaymentStatus)
		assert.Empty(t, sender.sentEmails())
		assert.Equal(t, float64(1), testutil.ToFloat64(a.metrics.reconciliations.WithLabelValues(string(reconcilePathCapture), string(PaymentNotCompleted))))
	})

	t.Run("unknown registration", func(t *testing.T) {
		db := newMemoryDB()
		provider := &mockPaymentProvider{
			CaptureOrderFunc: func(ctx context.Context, orderID string, token paypal.AccessToken) (paypal.Capture, error) {
				return captureFromJSON(t, completedCaptureJSON, http.StatusCreated), nil
			},
		}
		_, h := newTestHandler(t, db, provider, &mockEmailSender{})

		w := doRequest(h, http.MethodPost, "/api/paypal/capture", `{"orderID":"5O190127TN364715T","registrationId":"`+uuid.NewString()+`"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, NotFound, decodeError(t, w).Code)
		assert.Equal(t, 0, db.writeCount())
	})

	t.Run("paypal auth failure", func(t *testing.T) {
		db := newMemoryDB()
		reg := db.seedPending(t, "jane@example.com")
		provider := &mockPaymentProvider{
			GetAccessTokenFunc: func(ctx context.Context) (paypal.AccessToken, error) {
				return paypal.AccessToken{}, paypal.NewAuthError("PayPal rejected the client credentials", nil, []byte(`{"error":"invalid_client"}`))
			},
		}
		_, h := newTestHandler(t, db, provider, &mockEmailSender{})

		w := doRequest(h, http.MethodPost, "/api/paypal/capture", `{"orderID":"5O190127TN364715T","registrationId":"`+reg.ID.String()+`"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, PaymentProviderError, decodeError(t, w).Code)
	})

	t.Run("paypal unreachable", func(t *testing.T) {
		db := newMemoryDB()
		reg := db.seedPending(t, "jane@example.com")
		provider := &mockPaymentProvider{
			CaptureOrderFunc: func(ctx context.Context, orderID string, token paypal.AccessToken) (paypal.Capture, error) {
				return paypal.Capture{}, paypal.NewUpstreamError("Failed to call PayPal", errors.New("connection refused"), nil)
			},
		}
		_, h := newTestHandler(t, db, provider, &mockEmailSender{})

		w := doRequest(h, http.MethodPost, "/api/paypal/capture", `{"orderID":"5O190127TN364715T","registrationId":"`+reg.ID.String()+`"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, PaymentProviderError, decodeError(t, w).Code)
	})

	t.Run("missing order id", func(t *testing.T) {
		provider := &mockPaymentProvider{
			CaptureOrderFunc: func(ctx context.Context, orderID string, token paypal.AccessToken) (paypal.Capture, error) {
				t.Fatal("nothing should be captured")
				return paypal.Capture{}, nil
			},
		}
		_, h := newTestHandler(t, newMemoryDB(), provider, &mockEmailSender{})

		w := doRequest(h, http.MethodPost, "/api/paypal/capture", `{"registrationId":"`+uuid.NewString()+`"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, InputValidationError, decodeError(t, w).Code)
	})
}
