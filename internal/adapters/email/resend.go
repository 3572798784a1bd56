package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// resendBatchLimit is the maximum emails Resend accepts per batch call.
const resendBatchLimit = 100

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender with the given API key and default
// from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) buildParams(req SendRequest) *resend.SendEmailRequest {
	from := req.From
	if from == "" {
		from = s.from
	}
	params := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		params.ReplyTo = req.ReplyTo
	}
	return params
}

// Send delivers a single email.
// PRE: req has at least one recipient
// POST: Email queued with Resend; returns the provider message ID
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.buildParams(req))
	if err != nil {
		slog.Error("resend_send_failed", "error", err, "to", req.To, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("resend_sent", "message_id", sent.Id, "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}

// SendBatch delivers emails via the batch API, chunked to the provider
// limit. A failed chunk aborts the run; results for chunks already accepted
// are returned alongside the error.
// POST: Results are in request order
func (s *ResendSender) SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	var all []SendResult
	for start := 0; start < len(reqs); start += resendBatchLimit {
		end := start + resendBatchLimit
		if end > len(reqs) {
			end = len(reqs)
		}
		chunk := reqs[start:end]

		batch := make([]*resend.SendEmailRequest, 0, len(chunk))
		for _, req := range chunk {
			batch = append(batch, s.buildParams(req))
		}

		resp, err := s.client.Batch.SendWithContext(ctx, batch)
		if err != nil {
			slog.Error("resend_batch_failed", "error", err, "batch_size", len(chunk))
			return all, fmt.Errorf("resend batch send failed: %w", err)
		}

		for _, item := range resp.Data {
			all = append(all, SendResult{
				MessageID: item.Id,
				SentAt:    time.Now(),
			})
		}
		slog.Info("resend_batch_sent", "count", len(chunk), "total_sent", len(all))
	}

	return all, nil
}
