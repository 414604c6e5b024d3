package email

import "context"

// Sender delivers a single message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
