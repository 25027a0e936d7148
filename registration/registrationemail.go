package registration

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/Rhymond/go-money"
)

//go:embed templates
var templates embed.FS

var templateFuncs = map[string]any{
	"displayMoney": func(m *money.Money) string {
		if m == nil {
			return money.New(0, Currency).Display()
		}
		return m.Display()
	},
}

// SendPaymentConfirmationEmail tells the registrant their payment went through.
// Registrations without an email address are skipped.
func SendPaymentConfirmationEmail(ctx context.Context, emailSender email.Sender, fromAddress string, reg Registration) error {
	if reg.Email == "" {
		return nil
	}

	htmlBody, err := makeHtmlBody(reg)
	if err != nil {
		return err
	}

	textOnlyBody, err := makeTextOnlyBody(reg)
	if err != nil {
		return err
	}

	return emailSender.SendEmail(ctx, email.Email{
		FromAddress: fromAddress,
		ToAddresses: []string{reg.Email},
		Subject:     fmt.Sprintf("Payment received - %q", reg.Event),
		HTMLBody:    htmlBody,
		TextBody:    textOnlyBody,
	})
}

func makeHtmlBody(reg Registration) (string, error) {
	tmpl, err := template.New("payment-confirmation.tmpl").Funcs(templateFuncs).ParseFS(templates, "templates/payment-confirmation.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Registration": reg,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}

func makeTextOnlyBody(reg Registration) (string, error) {
	tmpl, err := texttemplate.New("payment-confirmation-textonly.tmpl").Funcs(templateFuncs).ParseFS(templates, "templates/payment-confirmation-textonly.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Registration": reg,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}
