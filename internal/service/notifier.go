package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	svix "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/agencydesk/agencydesk/pkg/logger"
)

// WebhookPayload is the documented delivery shape for form webhooks.
type WebhookPayload struct {
	FormID    string         `json:"form_id"`
	ContactID string         `json:"contact_id,omitempty"`
	Data      map[string]any `json:"data"`
}

// WebhookNotifier delivers form-submission webhooks.
type WebhookNotifier interface {
	NotifyFormSubmission(ctx context.Context, url string, payload WebhookPayload) error
}

// LoggedWebhookNotifier is the mock delivery path: it signs the payload in
// the standard-webhooks format and logs the request it would have made. A
// production notifier replaces this with an actual POST carrying the same
// payload and signature headers.
type LoggedWebhookNotifier struct {
	signer *svix.Webhook
	logger logger.Logger
	now    func() time.Time
}

func NewLoggedWebhookNotifier(secret string, log logger.Logger) (*LoggedWebhookNotifier, error) {
	signer, err := svix.NewWebhookRaw([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook signer: %w", err)
	}
	if log == nil {
		log = logger.NewMockLogger()
	}
	return &LoggedWebhookNotifier{signer: signer, logger: log, now: time.Now}, nil
}

func (n *LoggedWebhookNotifier) NotifyFormSubmission(ctx context.Context, url string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	msgID := "msg_" + uuid.NewString()
	timestamp := n.now().UTC()
	signature, err := n.signer.Sign(msgID, timestamp, body)
	if err != nil {
		return fmt.Errorf("failed to sign webhook payload: %w", err)
	}

	n.logger.WithFields(map[string]interface{}{
		"url":               url,
		"webhook-id":        msgID,
		"webhook-timestamp": timestamp.Unix(),
		"webhook-signature": signature,
		"form_id":           payload.FormID,
	}).Info("Webhook delivery (mock, not sent)")
	return nil
}
