package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/agencydesk/agencydesk/pkg/idgen"
	"github.com/agencydesk/agencydesk/pkg/logger"
)

// SubmissionService turns one incoming form submission into the full set of
// writes: contact dedup and create-or-update, the submission record, the
// per-form CMS row, the contact activity, the webhook/email side effects and
// the form response counter. It holds no state of its own beyond the mutex
// that serializes concurrent submissions against the shared store, which is
// what keeps the "at most one contact per identifier value" invariant from
// racing between lookup and insert.
type SubmissionService struct {
	client   *store.Client
	ids      *idgen.Generator
	webhooks WebhookNotifier
	mailer   mailerInterface
	logger   logger.Logger
	now      func() time.Time

	mu sync.Mutex
}

// mailerInterface is the slice of pkg/mailer the pipeline needs.
type mailerInterface interface {
	SendFormNotification(to, formName string, data map[string]any) error
}

type SubmissionServiceConfig struct {
	Client   *store.Client
	IDs      *idgen.Generator
	Webhooks WebhookNotifier
	Mailer   mailerInterface
	Logger   logger.Logger
	Clock    func() time.Time
}

func NewSubmissionService(cfg SubmissionServiceConfig) *SubmissionService {
	s := &SubmissionService{
		client:   cfg.Client,
		ids:      cfg.IDs,
		webhooks: cfg.Webhooks,
		mailer:   cfg.Mailer,
		logger:   cfg.Logger,
		now:      cfg.Clock,
	}
	if s.ids == nil {
		s.ids = idgen.NewGenerator()
	}
	if s.logger == nil {
		s.logger = logger.NewMockLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ProcessSubmission runs the pipeline for one submission. The precondition
// steps (form lookup, identifier field, identifier value) abort before any
// write; a failure after contact resolution propagates without rolling back
// rows already written.
func (s *SubmissionService) ProcessSubmission(ctx context.Context, formID string, values map[string]any) (*domain.SubmissionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Step 1: load the form.
	formRow, err := s.client.Table("forms").Select().Eq("form_id", formID).Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load form: %w", err)
	}
	if formRow == nil {
		return nil, &domain.ErrFormNotFound{FormID: formID}
	}
	form := domain.FormFromRow(formRow)

	// Step 2: exactly one field must carry the identifier flag.
	idField, err := form.IdentifierField()
	if err != nil {
		return nil, err
	}

	// Step 3: the submitted identifier value must be present.
	identifier := strings.TrimSpace(valueString(values[idField.Name]))
	if identifier == "" {
		return nil, &domain.ErrMissingIdentifierValue{Field: idField.Name}
	}

	attr := idField.MapToContact
	if attr == "" {
		attr = domain.ContactAttrEmail
	}

	// Step 4: resolve the submission to at most one existing contact.
	contactRow, err := s.client.Table("contacts").Select().Eq(attr, identifier).Single(ctx)
	if errors.Is(err, store.ErrMultipleRows) {
		return nil, &domain.ErrDuplicateContacts{Attribute: attr, Value: identifier}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up contact: %w", err)
	}

	now := s.now().UTC()
	contactID := ""
	createdNew := false

	switch {
	case contactRow != nil:
		// Step 5: existing contact; merge mapped values when the form allows it.
		contact := domain.ContactFromRow(contactRow)
		contactID = contact.ContactID
		if form.Settings.UpdateContact {
			patch := store.Row{"last_contacted_at": now}
			for _, field := range form.Fields {
				if field.MapToContact == "" {
					continue
				}
				if v := strings.TrimSpace(valueString(values[field.Name])); v != "" {
					patch[field.MapToContact] = v
				}
			}
			if err := s.client.Table("contacts").Update(patch).Eq("contact_id", contactID).Exec(ctx); err != nil {
				return nil, fmt.Errorf("failed to update contact: %w", err)
			}
		}
	case form.Settings.CreateContact:
		// Step 6: synthesize a new lead and overlay the mapped values.
		contact := domain.NewLeadContact(form.OrganizationID)
		contact.ContactID = s.ids.NewPrefixed(idgen.PrefixContact)
		contact.SetAttribute(attr, identifier)
		now2 := now
		contact.LastContactedAt = &now2
		for _, field := range form.Fields {
			if field.MapToContact == "" {
				continue
			}
			if v := strings.TrimSpace(valueString(values[field.Name])); v != "" {
				contact.SetAttribute(field.MapToContact, v)
			}
		}
		if _, err := s.client.Table("contacts").Insert(ctx, contact.Row()); err != nil {
			return nil, fmt.Errorf("failed to create contact: %w", err)
		}
		contactID = contact.ContactID
		createdNew = true
	default:
		// Contact creation disabled and no match: later contact-bound steps
		// are skipped but the submission itself still goes through.
	}

	// Step 7: the immutable submission record.
	submission := &domain.FormSubmission{
		SubmissionID: s.ids.NewPrefixed(idgen.PrefixSubmission),
		FormID:       form.FormID,
		ContactID:    contactID,
		Data:         values,
		CreatedNew:   createdNew,
		SubmittedAt:  now,
	}
	if _, err := s.client.Table("form_submissions").Insert(ctx, submission.Row()); err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	// Step 8: denormalized copy in the per-form CMS table, created on first
	// submission for this slug.
	cms := &domain.CMSRow{
		CMSID:        s.ids.NewPrefixed(idgen.PrefixCMS),
		FormID:       form.FormID,
		SubmissionID: submission.SubmissionID,
		ContactID:    contactID,
		Fields:       values,
	}
	if _, err := s.client.Table(form.CMSTableName()).Insert(ctx, cms.Row()); err != nil {
		return nil, fmt.Errorf("failed to write CMS row: %w", err)
	}

	// Step 9: audit-trail activity, only when a contact is attached.
	if contactID != "" {
		activity := &domain.ContactActivity{
			ActivityID:  s.ids.NewPrefixed(idgen.PrefixActivity),
			ContactID:   contactID,
			Type:        domain.ActivityTypeForm,
			Title:       fmt.Sprintf("Submitted form: %s", form.Name),
			Description: fmt.Sprintf("Response recorded for %q", form.Name),
			Metadata: map[string]any{
				"form_id":       form.FormID,
				"form_name":     form.Name,
				"form_slug":     form.Slug,
				"submission_id": submission.SubmissionID,
				"data":          values,
			},
		}
		if _, err := s.client.Table("activities").Insert(ctx, activity.Row()); err != nil {
			return nil, fmt.Errorf("failed to record activity: %w", err)
		}
	}

	// Step 10: webhook side effect.
	if form.Settings.WebhookURL != "" && s.webhooks != nil {
		payload := WebhookPayload{FormID: form.FormID, ContactID: contactID, Data: values}
		if err := s.webhooks.NotifyFormSubmission(ctx, form.Settings.WebhookURL, payload); err != nil {
			return nil, fmt.Errorf("failed to notify webhook: %w", err)
		}
	}

	// Step 11: notification email side effect.
	if form.Settings.NotificationEmail != "" && s.mailer != nil {
		if err := s.mailer.SendFormNotification(form.Settings.NotificationEmail, form.Name, values); err != nil {
			return nil, fmt.Errorf("failed to send notification email: %w", err)
		}
	}

	// Step 12: bump the response counter.
	counter := store.Row{
		"response_count":   form.ResponseCount + 1,
		"last_response_at": now,
	}
	if err := s.client.Table("forms").Update(counter).Eq("form_id", form.FormID).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to update response counter: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"form_id":       form.FormID,
		"submission_id": submission.SubmissionID,
		"contact_id":    contactID,
		"created":       createdNew,
	}).Info("Form submission processed")

	return &domain.SubmissionResult{
		Success:      true,
		ContactID:    contactID,
		SubmissionID: submission.SubmissionID,
		Created:      createdNew,
		RedirectURL:  form.Settings.RedirectURL,
	}, nil
}

// valueString renders a submitted value for identifier and contact-attribute
// handling. Nil stays empty rather than becoming "<nil>".
func valueString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
