package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/store"
)

func newTestAuthService() *AuthService {
	return NewAuthService(AuthServiceConfig{
		SecretKey: "test-secret",
		Latency:   store.NoLatency(),
	})
}

func TestSignInWithPassword(t *testing.T) {
	svc := newTestAuthService()

	var events []domain.AuthEvent
	svc.OnAuthStateChange(func(event domain.AuthEvent, _ *domain.Session) {
		events = append(events, event)
	})

	session, err := svc.SignInWithPassword(context.Background(), "mara@lumen.agency", "anything")
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, "mara@lumen.agency", session.Email)
	assert.NotEmpty(t, session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	assert.Equal(t, []domain.AuthEvent{domain.AuthEventSignedIn}, events)

	// the access token is a real HS256 JWT carrying the session identity
	token, err := jwt.Parse(session.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "mara@lumen.agency", claims["email"])
	assert.Equal(t, session.UserID, claims["sub"])
}

func TestSignInWithPasswordEmptyCredentials(t *testing.T) {
	svc := newTestAuthService()

	notified := false
	svc.OnAuthStateChange(func(domain.AuthEvent, *domain.Session) { notified = true })

	cases := []struct{ email, password string }{
		{"", "secret"},
		{"mara@lumen.agency", ""},
		{"", ""},
	}
	for _, tc := range cases {
		_, err := svc.SignInWithPassword(context.Background(), tc.email, tc.password)
		require.Error(t, err)
	}

	assert.Nil(t, svc.GetSession())
	assert.False(t, notified, "failed sign-in must not notify subscribers")
}

func TestSignInWithOAuth(t *testing.T) {
	svc := newTestAuthService()

	session, err := svc.SignInWithOAuth(context.Background(), "google")
	require.NoError(t, err)
	assert.Equal(t, "google.user@lumen.agency", session.Email)

	_, err = svc.SignInWithOAuth(context.Background(), "")
	require.Error(t, err)
}

func TestSignOut(t *testing.T) {
	svc := newTestAuthService()

	var events []domain.AuthEvent
	var lastSession *domain.Session
	svc.OnAuthStateChange(func(event domain.AuthEvent, session *domain.Session) {
		events = append(events, event)
		lastSession = session
	})

	_, err := svc.SignInWithPassword(context.Background(), "mara@lumen.agency", "pw")
	require.NoError(t, err)
	require.NotNil(t, svc.GetSession())

	require.NoError(t, svc.SignOut(context.Background()))
	assert.Nil(t, svc.GetSession())
	assert.Equal(t, []domain.AuthEvent{domain.AuthEventSignedIn, domain.AuthEventSignedOut}, events)
	assert.Nil(t, lastSession)
}

func TestOnAuthStateChangeOrderAndUnsubscribe(t *testing.T) {
	svc := newTestAuthService()

	var order []string
	unsubA := svc.OnAuthStateChange(func(domain.AuthEvent, *domain.Session) { order = append(order, "a") })
	svc.OnAuthStateChange(func(domain.AuthEvent, *domain.Session) { order = append(order, "b") })

	_, err := svc.SignInWithPassword(context.Background(), "x@lumen.agency", "pw")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	require.NoError(t, svc.SignOut(context.Background()))
	assert.Equal(t, []string{"a", "b", "b"}, order)
}

func TestGetSessionReturnsCopy(t *testing.T) {
	svc := newTestAuthService()
	_, err := svc.SignInWithPassword(context.Background(), "x@lumen.agency", "pw")
	require.NoError(t, err)

	first := svc.GetSession()
	first.Email = "tampered@lumen.agency"
	assert.Equal(t, "x@lumen.agency", svc.GetSession().Email)
}

func TestAuthLatencyRespectsContext(t *testing.T) {
	svc := NewAuthService(AuthServiceConfig{
		SecretKey: "test-secret",
		Latency:   store.FixedLatency(time.Second),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.SignInWithPassword(ctx, "x@lumen.agency", "pw")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, svc.GetSession())
}
