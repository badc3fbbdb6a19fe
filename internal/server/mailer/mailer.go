// Package mailer delivers verification codes to users.
package mailer

import (
	"context"

	"github.com/dmitrijs2005/alumnet/internal/logging"
)

type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
}

// LogMailer writes the code to the server log instead of sending mail.
// It stands in for a real provider in development deployments.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(log logging.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendOTP(ctx context.Context, email, code string) error {
	m.log.Info(ctx, "verification code issued", "email", email, "otp", code)
	return nil
}
