// Package mail sends the marketplace's transactional email through Mailgun.
// Sending is best-effort everywhere: callers log failures and move on, a
// send never gates the operation that triggered it.
package mail

import "context"

// Mailer is what the account service needs from an email provider.
type Mailer interface {
	SendVerification(ctx context.Context, to string, code string) error
}

// Noop drops every message. Used when no provider credentials are
// configured, e.g. in local development.
type Noop struct{}

func (Noop) SendVerification(context.Context, string, string) error { return nil }
