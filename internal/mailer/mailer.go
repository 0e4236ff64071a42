package mailer

import "context"

// Mailer sends a single message to one or more recipients in one exchange;
// partial delivery failure is reported as one aggregate error.
type Mailer interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}
