package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agencydesk/agencydesk/config"
	httpHandler "github.com/agencydesk/agencydesk/internal/http"
	"github.com/agencydesk/agencydesk/internal/http/middleware"
	"github.com/agencydesk/agencydesk/internal/service"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/agencydesk/agencydesk/pkg/idgen"
	"github.com/agencydesk/agencydesk/pkg/logger"
	"github.com/agencydesk/agencydesk/pkg/mailer"
)

// App encapsulates the application dependencies and configuration. One App
// owns exactly one table store: the singleton lives here, not in the store
// package, so tests can build as many isolated instances as they want.
type App struct {
	config *config.Config
	logger logger.Logger

	tableStore *store.TableStore
	client     *store.Client
	ids        *idgen.Generator
	mailer     mailer.Mailer
	webhooks   service.WebhookNotifier

	authService       *service.AuthService
	contactService    *service.ContactService
	formService       *service.FormService
	bookingService    *service.BookingService
	submissionService *service.SubmissionService

	mux    *http.ServeMux
	server *http.Server
}

type AppOption func(*App)

func WithLogger(log logger.Logger) AppOption {
	return func(a *App) {
		a.logger = log
	}
}

// WithTableStore replaces the seeded store, mainly for tests.
func WithTableStore(ts *store.TableStore) AppOption {
	return func(a *App) {
		a.tableStore = ts
	}
}

func NewApp(cfg *config.Config, opts ...AppOption) *App {
	a := &App{config: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logger.NewLoggerWithLevel(cfg.LogLevel)
	}
	return a
}

// Initialize wires the store, mailer, services and HTTP handlers.
func (a *App) Initialize() error {
	if err := a.InitStore(); err != nil {
		return err
	}
	if err := a.InitMailer(); err != nil {
		return err
	}
	if err := a.InitServices(); err != nil {
		return err
	}
	return a.InitHandlers()
}

func (a *App) InitStore() error {
	if a.tableStore == nil {
		if a.config.Store.SeedDemo {
			a.tableStore = store.NewSeededTableStore()
			a.logger.WithField("tables", len(a.tableStore.TableNames())).Info("Loaded demo dataset")
		} else {
			a.tableStore = store.NewTableStore()
		}
	}

	a.client = store.NewClient(a.tableStore,
		store.WithLatency(store.JitterLatency(a.config.Store.LatencyMin, a.config.Store.LatencyMax)),
		store.WithLogger(a.logger),
	)
	a.ids = idgen.NewGenerator()
	return nil
}

func (a *App) InitMailer() error {
	mailerConfig := &mailer.Config{
		SMTPHost:     a.config.SMTP.Host,
		SMTPPort:     a.config.SMTP.Port,
		SMTPUsername: a.config.SMTP.Username,
		SMTPPassword: a.config.SMTP.Password,
		FromEmail:    a.config.SMTP.FromEmail,
		FromName:     a.config.SMTP.FromName,
	}
	if a.config.SMTP.Enabled {
		a.mailer = mailer.NewSMTPMailer(mailerConfig)
	} else {
		a.mailer = mailer.NewTestSMTPMailer(mailerConfig)
	}
	return nil
}

func (a *App) InitServices() error {
	webhooks, err := service.NewLoggedWebhookNotifier(a.config.Webhook.Secret, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize webhook notifier: %w", err)
	}
	a.webhooks = webhooks

	a.authService = service.NewAuthService(service.AuthServiceConfig{
		SecretKey: a.config.SecretKey,
		Latency:   store.JitterLatency(a.config.Store.LatencyMin, a.config.Store.LatencyMax),
		Logger:    a.logger,
	})
	a.contactService = service.NewContactService(a.client, a.ids, a.logger)
	a.formService = service.NewFormService(a.client, a.ids, a.logger)
	a.bookingService = service.NewBookingService(a.client, service.NewStubMeetingProvider(), a.logger)
	a.submissionService = service.NewSubmissionService(service.SubmissionServiceConfig{
		Client:   a.client,
		IDs:      a.ids,
		Webhooks: a.webhooks,
		Mailer:   a.mailer,
		Logger:   a.logger,
	})
	return nil
}

func (a *App) InitHandlers() error {
	a.mux = http.NewServeMux()

	httpHandler.NewAuthHandler(a.authService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewContactHandler(a.contactService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewFormHandler(a.formService, a.submissionService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewBookingHandler(a.bookingService, a.logger).RegisterRoutes(a.mux)

	a.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, a.config.Version)
	})
	return nil
}

// Start runs the HTTP server until ctx is canceled, then drains it.
func (a *App) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:    addr,
		Handler: middleware.CORSMiddleware(a.mux),
	}

	a.logger.WithField("address", addr).Info("HTTP server listening")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Getters for app components accessed in tests
func (a *App) GetConfig() *config.Config        { return a.config }
func (a *App) GetLogger() logger.Logger         { return a.logger }
func (a *App) GetMux() *http.ServeMux           { return a.mux }
func (a *App) GetClient() *store.Client         { return a.client }
func (a *App) GetTableStore() *store.TableStore { return a.tableStore }
