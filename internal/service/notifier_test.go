package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggedWebhookNotifier(t *testing.T) {
	notifier, err := NewLoggedWebhookNotifier("whsec-test-secret", nil)
	require.NoError(t, err)

	err = notifier.NotifyFormSubmission(context.Background(), "https://hooks.example.com/forms", WebhookPayload{
		FormID:    "FRM-01J4QD8E2M0000000000F0R1M2",
		ContactID: "CNT-01J4QD8E2M00000000001A2B3C",
		Data:      map[string]any{"email": "x@y.io"},
	})
	assert.NoError(t, err)
}
