package ports

import "context"

// Notifier abstracts out-of-band delivery of password-reset tokens. The
// production implementation would send email; the current one logs and the
// token is additionally returned in the API response as a stand-in.
type Notifier interface {
	SendPasswordReset(ctx context.Context, email, resetToken string) error
}
