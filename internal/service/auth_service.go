package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/agencydesk/agencydesk/pkg/logger"
)

const sessionTTL = 24 * time.Hour

// AuthService simulates the remote auth backend: a process-wide session that
// is either signed out (initial) or signed in, plus a subscriber list
// notified synchronously on every transition. No credentials are ever
// verified; the mock only requires that they are present.
type AuthService struct {
	mu          sync.Mutex
	session     *domain.Session
	subscribers []authSubscriber
	nextSubID   int

	secretKey string
	latency   store.Latency
	logger    logger.Logger
	now       func() time.Time
}

type authSubscriber struct {
	id       int
	callback func(domain.AuthEvent, *domain.Session)
}

type AuthServiceConfig struct {
	SecretKey string
	Latency   store.Latency
	Logger    logger.Logger
	Clock     func() time.Time
}

func NewAuthService(cfg AuthServiceConfig) *AuthService {
	s := &AuthService{
		secretKey: cfg.SecretKey,
		latency:   cfg.Latency,
		logger:    cfg.Logger,
		now:       cfg.Clock,
	}
	if s.latency == nil {
		s.latency = store.NoLatency()
	}
	if s.logger == nil {
		s.logger = logger.NewMockLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SignInWithPassword transitions to SignedIn when both credentials are
// non-empty. Empty input is a validation error: no transition, no
// notification.
func (s *AuthService) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if email == "" || password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}
	return s.signIn(email)
}

// SignInWithOAuth signs in unconditionally after the simulated delay; there
// is no real OAuth backend to reject anything.
func (s *AuthService) SignInWithOAuth(ctx context.Context, provider string) (*domain.Session, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if provider == "" {
		return nil, domain.NewValidationError("provider is required")
	}
	return s.signIn(fmt.Sprintf("%s.user@lumen.agency", provider))
}

func (s *AuthService) signIn(email string) (*domain.Session, error) {
	now := s.now().UTC()
	userID := uuid.NewString()
	expiresAt := now.Add(sessionTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	session := &domain.Session{
		UserID:      userID,
		Email:       email,
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}

	s.mu.Lock()
	s.session = session
	subscribers := append([]authSubscriber(nil), s.subscribers...)
	s.mu.Unlock()

	s.logger.WithField("email", email).Info("Signed in")
	notify(subscribers, domain.AuthEventSignedIn, session)

	copied := *session
	return &copied, nil
}

// SignOut transitions to SignedOut and notifies subscribers.
func (s *AuthService) SignOut(ctx context.Context) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = nil
	subscribers := append([]authSubscriber(nil), s.subscribers...)
	s.mu.Unlock()

	s.logger.Info("Signed out")
	notify(subscribers, domain.AuthEventSignedOut, nil)
	return nil
}

// GetSession returns a copy of the current session, or nil when signed out.
// Read-only; no transition, no notification.
func (s *AuthService) GetSession() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// OnAuthStateChange registers a subscriber invoked synchronously, in
// registration order, on every transition. The returned func removes it.
func (s *AuthService) OnAuthStateChange(callback func(domain.AuthEvent, *domain.Session)) func() {
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, authSubscriber{id: id, callback: callback})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func notify(subscribers []authSubscriber, event domain.AuthEvent, session *domain.Session) {
	for _, sub := range subscribers {
		sub.callback(event, session)
	}
}

// wait applies the same simulated latency convention the table store uses.
func (s *AuthService) wait(ctx context.Context) error {
	delay := s.latency()
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
