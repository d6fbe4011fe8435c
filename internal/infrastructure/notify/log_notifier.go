// Package notify contains Notifier implementations. The portal has no mail
// infrastructure yet, so the only implementation records deliveries in the
// log. The reset token itself is kept out of log output.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier is a stand-in for an email integration.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendPasswordReset(_ context.Context, email, token string) error {
	n.log.Info().
		Str("email", email).
		Int("token_length", len(token)).
		Msg("password reset notification dispatched")
	return nil
}
