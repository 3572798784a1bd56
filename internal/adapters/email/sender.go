package email

import (
	"context"
	"time"
)

// SendRequest is one outbound email handed to a provider.
type SendRequest struct {
	To      []string
	From    string // e.g. "FitClub <noreply@fitclub.example>"; empty uses the sender default
	Subject string
	HTML    string
	ReplyTo string
}

// SendResult is the provider's acknowledgement of an accepted send.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers emails through an external provider. SendBatch exists for
// bulk runs like expiry reminders, where one API call covers many members.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error)
}
