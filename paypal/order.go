package paypal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
)

const (
	// Status PayPal reports for a fully captured order, and for each capture entry in it.
	StatusCompleted = "COMPLETED"

	intentCapture = "CAPTURE"
)

type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	// Raw is the order exactly as PayPal returned it.
	Raw json.RawMessage `json:"-"`
}

type Capture struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
	Payer         *Payer         `json:"payer,omitempty"`

	// HTTPStatus is the status code of the capture call. A capture PayPal refused
	// (ORDER_ALREADY_CAPTURED, INSTRUMENT_DECLINED...) still comes back as a Capture.
	HTTPStatus int `json:"-"`
	// Raw is the capture response exactly as PayPal returned it.
	Raw json.RawMessage `json:"-"`
}

type PurchaseUnit struct {
	ReferenceID string               `json:"reference_id,omitempty"`
	Amount      *Amount              `json:"amount,omitempty"`
	Payments    PurchaseUnitPayments `json:"payments"`
}

type PurchaseUnitPayments struct {
	Captures []CaptureEntry `json:"captures"`
}

type CaptureEntry struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount Amount `json:"amount"`
}

type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type Payer struct {
	PayerID      string    `json:"payer_id,omitempty"`
	EmailAddress string    `json:"email_address,omitempty"`
	Name         PayerName `json:"name"`
}

type PayerName struct {
	GivenName string `json:"given_name,omitempty"`
	Surname   string `json:"surname,omitempty"`
}

// FullName is empty when PayPal did not report a payer name.
func (p *Payer) FullName() string {
	if p == nil {
		return ""
	}

	switch {
	case p.Name.GivenName != "" && p.Name.Surname != "":
		return p.Name.GivenName + " " + p.Name.Surname
	case p.Name.GivenName != "":
		return p.Name.GivenName
	default:
		return p.Name.Surname
	}
}

// FirstCapture returns the first capture entry of the first purchase unit.
// Orders created by this service only ever have one purchase unit.
func (c Capture) FirstCapture() (CaptureEntry, bool) {
	if len(c.PurchaseUnits) == 0 || len(c.PurchaseUnits[0].Payments.Captures) == 0 {
		return CaptureEntry{}, false
	}

	return c.PurchaseUnits[0].Payments.Captures[0], true
}

// IsCompleted reports whether the order was captured and funds were actually collected.
func (c Capture) IsCompleted() bool {
	if c.Status != StatusCompleted {
		return false
	}

	entry, ok := c.FirstCapture()
	if !ok {
		return false
	}

	return entry.Status == StatusCompleted
}

// ToMoney parses a PayPal amount. fallbackCurrency is used when PayPal omitted the currency code.
func (a Amount) ToMoney(fallbackCurrency string) (*money.Money, error) {
	code := a.CurrencyCode
	if code == "" {
		code = fallbackCurrency
	}

	return ParseAmount(a.Value, code)
}

// ParseAmount parses a decimal amount such as "19.99" straight into minor units of
// currency. Digits past the currency's precision are only accepted when they are zeros.
func ParseAmount(value string, currency string) (*money.Money, error) {
	c := money.GetCurrency(currency)
	if c == nil {
		return nil, NewInvalidAmountError(fmt.Sprintf("Unknown currency %q", currency))
	}

	digits := strings.TrimSpace(value)
	negative := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	whole, fraction, hasPoint := strings.Cut(digits, ".")
	if !isDigits(whole) || (hasPoint && !isDigits(fraction)) {
		return nil, NewInvalidAmountError(fmt.Sprintf("Amount %q is not a decimal number", value))
	}

	if len(fraction) > c.Fraction {
		if strings.Trim(fraction[c.Fraction:], "0") != "" {
			return nil, NewInvalidAmountError(fmt.Sprintf("Amount %q has more than %d decimal places", value, c.Fraction))
		}
		fraction = fraction[:c.Fraction]
	}
	fraction += strings.Repeat("0", c.Fraction-len(fraction))

	minor, err := strconv.ParseInt(whole+fraction, 10, 64)
	if err != nil {
		return nil, NewInvalidAmountError(fmt.Sprintf("Amount %q is out of range", value))
	}
	if negative {
		minor = -minor
	}

	return money.New(minor, c.Code), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatAmount renders m in major units with exactly the currency's precision, e.g. 1999 USD as "19.99".
func FormatAmount(m *money.Money) string {
	fraction := m.Currency().Fraction
	minor := m.Amount()

	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	s := strconv.FormatInt(minor, 10)
	if fraction == 0 {
		return sign + s
	}
	if len(s) <= fraction {
		s = strings.Repeat("0", fraction-len(s)+1) + s
	}

	return sign + s[:len(s)-fraction] + "." + s[len(s)-fraction:]
}

func amountFromMoney(m *money.Money) Amount {
	return Amount{
		CurrencyCode: m.Currency().Code,
		Value:        FormatAmount(m),
	}
}

type createOrderRequest struct {
	Intent        string                    `json:"intent"`
	PurchaseUnits []createOrderPurchaseUnit `json:"purchase_units"`
}

type createOrderPurchaseUnit struct {
	Amount Amount `json:"amount"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
