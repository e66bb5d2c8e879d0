package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/agencydesk/agencydesk/internal/domain"
)

// MockWebhookNotifier mocks the WebhookNotifier interface
type MockWebhookNotifier struct {
	mock.Mock
}

func (m *MockWebhookNotifier) NotifyFormSubmission(ctx context.Context, url string, payload WebhookPayload) error {
	args := m.Called(ctx, url, payload)
	return args.Error(0)
}

// MockMailer mocks the pkg/mailer Mailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendFormNotification(to, formName string, data map[string]any) error {
	args := m.Called(to, formName, data)
	return args.Error(0)
}

// MockMeetingProvider mocks the MeetingProvider interface
type MockMeetingProvider struct {
	mock.Mock
}

func (m *MockMeetingProvider) CreateMeeting(ctx context.Context, req domain.MeetingRequest) (*domain.MeetingResult, error) {
	args := m.Called(ctx, req)
	if result := args.Get(0); result != nil {
		return result.(*domain.MeetingResult), args.Error(1)
	}
	return nil, args.Error(1)
}
