package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		SMTPHost:  "localhost",
		SMTPPort:  587,
		FromEmail: "noreply@lumen.agency",
		FromName:  "Agencydesk",
	}
}

func TestSendFormNotificationInTestMode(t *testing.T) {
	m := NewTestSMTPMailer(testConfig())

	err := m.SendFormNotification("owner@lumen.agency", "Contact Us", map[string]any{
		"email":   "jane@acme.io",
		"message": "Looking for a rebrand",
	})
	require.NoError(t, err, "test mode must never dial SMTP")
}

func TestSendFormNotificationRejectsBadRecipient(t *testing.T) {
	m := NewTestSMTPMailer(testConfig())

	err := m.SendFormNotification("not an address", "Contact Us", nil)
	assert.Error(t, err)
}

func TestFormatSubmissionSortsFields(t *testing.T) {
	body := formatSubmission("Contact Us", map[string]any{
		"zeta":  "last",
		"alpha": "first",
		"mid":   42,
	})

	assert.Contains(t, body, `"Contact Us"`)
	alphaAt := strings.Index(body, "alpha: first")
	midAt := strings.Index(body, "mid: 42")
	zetaAt := strings.Index(body, "zeta: last")
	require.NotEqual(t, -1, alphaAt)
	assert.Less(t, alphaAt, midAt)
	assert.Less(t, midAt, zetaAt)
}
