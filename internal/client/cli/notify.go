package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/services"
	"github.com/dmitrijs2005/alumnet/internal/client/session"
)

// notifier prints one-line outcome messages, the terminal's toasts.
type notifier struct {
	w io.Writer
}

func (n notifier) success(msg, fallback string) {
	if msg == "" {
		msg = fallback
	}
	fmt.Fprintln(n.w, "[ok]", msg)
}

func (n notifier) info(msg string) {
	fmt.Fprintln(n.w, "[..]", msg)
}

func (n notifier) failure(err error, fallback string) {
	fmt.Fprintln(n.w, "[!!]", userMessage(err, fallback))
}

// userMessage prefers what the server said, then local form messages, then
// the screen's fallback.
func userMessage(err error, fallback string) string {
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	var fe *models.FormError
	if errors.As(err, &fe) {
		return fe.Message
	}
	switch {
	case errors.Is(err, session.ErrAlreadyAuthenticated):
		return "You are already logged in"
	case errors.Is(err, services.ErrNoPendingVerification):
		return "No pending verification. Please register first."
	case errors.Is(err, client.ErrUnavailable):
		return fallback + ": server unavailable"
	}
	return fallback
}
