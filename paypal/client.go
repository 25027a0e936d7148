package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	SandboxBaseURL = "https://api-m.sandbox.paypal.com"
	LiveBaseURL    = "https://api-m.paypal.com"

	// Tokens are treated as expired this long before PayPal says they are.
	tokenExpiryMargin = time.Minute

	maxResponseBytes = 1 << 20
)

var tracer = otel.Tracer("github.com/International-Combat-Archery-Alliance/registration-payments/paypal")

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// Currency every order is created in. Defaults to USD.
	Currency string
	Timeout  time.Duration
}

type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	currency     string
	httpClient   *http.Client
	tokenCache   TokenCache
	now          func() time.Time
}

type Option func(c *Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenCache makes the client reuse access tokens until they are close to expiring.
// Without a cache a new token is requested for every order and capture.
func WithTokenCache(cache TokenCache) Option {
	return func(c *Client) {
		c.tokenCache = cache
	}
}

func NewClient(cfg Config, opts ...Option) *Client {
	currency := cfg.Currency
	if currency == "" {
		currency = money.USD
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = SandboxBaseURL
	}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		currency:     currency,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Currency() string {
	return c.currency
}

type AccessToken struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (t AccessToken) validAt(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

func (c *Client) tokenCacheKey() string {
	return fmt.Sprintf("paypal:token:%s", c.clientID)
}

func (c *Client) GetAccessToken(ctx context.Context) (AccessToken, error) {
	ctx, span := tracer.Start(ctx, "paypal.GetAccessToken")
	defer span.End()

	if c.tokenCache != nil {
		token, ok, err := c.tokenCache.Get(ctx, c.tokenCacheKey())
		if err != nil {
			// Fall back to a fresh token, the cache is only an optimization
			span.RecordError(err)
		} else if ok && token.validAt(c.now()) {
			span.SetAttributes(attribute.Bool("paypal.token_cached", true))
			return token, nil
		}
	}

	token, err := c.requestAccessToken(ctx)
	if err != nil {
		recordSpanError(span, err)
		return AccessToken{}, err
	}

	if c.tokenCache != nil && token.validAt(c.now()) {
		err = c.tokenCache.Set(ctx, c.tokenCacheKey(), token)
		if err != nil {
			span.RecordError(err)
		}
	}

	return token, nil
}

func (c *Client) requestAccessToken(ctx context.Context) (AccessToken, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return AccessToken{}, NewAuthError("Failed to build token request", err, nil)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return AccessToken{}, NewAuthError("Token request failed", err, body)
	}
	if !isSuccess(status) {
		return AccessToken{}, NewAuthError(fmt.Sprintf("Token request returned status %d", status), nil, body)
	}

	var resp accessTokenResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return AccessToken{}, NewAuthError("Failed to decode token response", err, body)
	}
	if resp.AccessToken == "" {
		return AccessToken{}, NewAuthError("Token response did not contain an access token", nil, body)
	}

	expiresIn := time.Duration(resp.ExpiresIn) * time.Second
	return AccessToken{
		Value:     resp.AccessToken,
		ExpiresAt: c.now().Add(expiresIn - tokenExpiryMargin),
	}, nil
}

// CreateOrder creates a single purchase unit order for amount. The returned order
// carries PayPal's raw response so it can be handed to the checkout front-end untouched.
func (c *Client) CreateOrder(ctx context.Context, amount *money.Money) (Order, error) {
	ctx, span := tracer.Start(ctx, "paypal.CreateOrder")
	defer span.End()

	if amount == nil || !amount.IsPositive() {
		err := NewInvalidAmountError("Order amount must be greater than zero")
		recordSpanError(span, err)
		return Order{}, err
	}
	if amount.Currency().Code != c.currency {
		err := NewInvalidAmountError(fmt.Sprintf("Order amount must be in %s, got %s", c.currency, amount.Currency().Code))
		recordSpanError(span, err)
		return Order{}, err
	}

	token, err := c.GetAccessToken(ctx)
	if err != nil {
		recordSpanError(span, err)
		return Order{}, err
	}

	reqBody, err := json.Marshal(createOrderRequest{
		Intent:        intentCapture,
		PurchaseUnits: []createOrderPurchaseUnit{{Amount: amountFromMoney(amount)}},
	})
	if err != nil {
		return Order{}, NewUpstreamError("Failed to encode order request", err, nil)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/v2/checkout/orders", token, reqBody)
	if err != nil {
		return Order{}, NewUpstreamError("Failed to build order request", err, nil)
	}

	status, body, err := c.doAuthorized(ctx, req)
	if err != nil {
		err = asPaypalError(err, "Create order request failed", body)
		recordSpanError(span, err)
		return Order{}, err
	}
	if !isSuccess(status) {
		err = NewUpstreamError(fmt.Sprintf("Create order returned status %d", status), nil, body)
		recordSpanError(span, err)
		return Order{}, err
	}

	var order Order
	err = json.Unmarshal(body, &order)
	if err != nil {
		err = NewUpstreamError("Failed to decode order response", err, body)
		recordSpanError(span, err)
		return Order{}, err
	}
	order.Raw = body

	span.SetAttributes(attribute.String("paypal.order_id", order.ID))

	return order, nil
}

// CaptureOrder captures a previously created order. Transport failures, unreadable
// responses and a token PayPal keeps rejecting are errors; a capture PayPal declined
// is returned as-is for the caller to inspect.
func (c *Client) CaptureOrder(ctx context.Context, orderID string, token AccessToken) (Capture, error) {
	ctx, span := tracer.Start(ctx, "paypal.CaptureOrder", trace.WithAttributes(attribute.String("paypal.order_id", orderID)))
	defer span.End()

	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", url.PathEscape(orderID))
	req, err := c.newJSONRequest(ctx, http.MethodPost, path, token, nil)
	if err != nil {
		return Capture{}, NewUpstreamError("Failed to build capture request", err, nil)
	}
	req.Header.Set("Prefer", "return=representation")

	status, body, err := c.doAuthorized(ctx, req)
	if err != nil {
		err = asPaypalError(err, "Capture request failed", body)
		recordSpanError(span, err)
		return Capture{}, err
	}

	var capture Capture
	err = json.Unmarshal(body, &capture)
	if err != nil {
		err = NewUpstreamError(fmt.Sprintf("Failed to decode capture response with status %d", status), err, body)
		recordSpanError(span, err)
		return Capture{}, err
	}
	capture.HTTPStatus = status
	capture.Raw = body

	span.SetAttributes(
		attribute.Int("http.response.status_code", status),
		attribute.String("paypal.capture_status", capture.Status),
	)

	return capture, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method string, path string, token AccessToken, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.Value)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// doAuthorized sends a request carrying an access token. On a 401 the cached token is
// dropped and the request is sent once more with a freshly issued one.
func (c *Client) doAuthorized(ctx context.Context, req *http.Request) (int, []byte, error) {
	status, body, err := c.do(req)
	if err != nil || status != http.StatusUnauthorized {
		return status, body, err
	}

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Bool("paypal.token_refreshed", true))
	c.evictAccessToken(ctx)

	token, err := c.GetAccessToken(ctx)
	if err != nil {
		return status, body, err
	}

	retry := req.Clone(ctx)
	if req.GetBody != nil {
		retry.Body, err = req.GetBody()
		if err != nil {
			return status, body, NewUpstreamError("Failed to rebuild request body", err, nil)
		}
	}
	retry.Header.Set("Authorization", "Bearer "+token.Value)

	status, body, err = c.do(retry)
	if err != nil {
		return status, body, err
	}
	if status == http.StatusUnauthorized {
		return status, body, NewAuthError("PayPal rejected a freshly issued access token", nil, body)
	}

	return status, body, nil
}

func (c *Client) evictAccessToken(ctx context.Context) {
	if c.tokenCache == nil {
		return
	}

	err := c.tokenCache.Delete(ctx, c.tokenCacheKey())
	if err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

// asPaypalError keeps errors that are already classified and wraps anything else as upstream.
func asPaypalError(err error, message string, body []byte) error {
	var paypalErr *Error
	if errors.As(err, &paypalErr) {
		return paypalErr
	}
	return NewUpstreamError(message, err, body)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
