package mail

import (
	"context"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

// verifyTemplate is the stored Mailgun template rendered for verification
// mail; it receives the code and the recipient as template variables.
const verifyTemplate = "verify-email"

const sendTimeout = 10 * time.Second

// Mailgun sends templated mail through the Mailgun messages API.
type Mailgun struct {
	mg   *mailgun.MailgunImpl
	from string
}

func NewMailgun(domain string, apiKey string, from string) *Mailgun {
	return &Mailgun{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

// SetAPIBase points the client at a different messages endpoint. Tests use
// it to capture requests with a local server.
func (m *Mailgun) SetAPIBase(base string) {
	m.mg.SetAPIBase(base)
}

func (m *Mailgun) SendVerification(ctx context.Context, to string, code string) error {
	msg := m.mg.NewMessage(m.from, "Verify Your Email", "", to)
	msg.SetTemplate(verifyTemplate)
	if err := msg.AddTemplateVariable("code", code); err != nil {
		return err
	}
	if err := msg.AddTemplateVariable("username", to); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, _, err := m.mg.Send(ctx, msg)
	return err
}
