package service

import (
	"context"
	"fmt"
	"time"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/agencydesk/agencydesk/pkg/idgen"
	"github.com/agencydesk/agencydesk/pkg/logger"
)

// ContactService is the CRM surface over the table store: listing, lookup by
// email, upsert, soft delete and the per-contact activity feed.
type ContactService struct {
	client *store.Client
	ids    *idgen.Generator
	logger logger.Logger
	now    func() time.Time
}

func NewContactService(client *store.Client, ids *idgen.Generator, log logger.Logger) *ContactService {
	if ids == nil {
		ids = idgen.NewGenerator()
	}
	if log == nil {
		log = logger.NewMockLogger()
	}
	return &ContactService{client: client, ids: ids, logger: log, now: time.Now}
}

// ListContacts returns the organization's contacts, newest first, excluding
// soft-deleted rows.
func (s *ContactService) ListContacts(ctx context.Context, organizationID string) ([]*domain.Contact, error) {
	rows, err := s.client.Table("contacts").Select().
		Eq("organization_id", organizationID).
		Order("contact_id", false).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	contacts := make([]*domain.Contact, 0, len(rows))
	for _, row := range rows {
		contact := domain.ContactFromRow(row)
		if contact.DeletedAt != nil {
			continue
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

// GetContactByEmail resolves an organization's contact by email address.
func (s *ContactService) GetContactByEmail(ctx context.Context, organizationID, email string) (*domain.Contact, error) {
	row, err := s.client.Table("contacts").Select().
		Eq("organization_id", organizationID).
		Eq("email", email).
		Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Entity: "contact", ID: email}
	}
	contact := domain.ContactFromRow(row)
	if contact.DeletedAt != nil {
		return nil, &domain.ErrNotFound{Entity: "contact", ID: email}
	}
	return contact, nil
}

// UpsertContact creates the contact when the organization has no row for its
// email yet, otherwise patches the existing row. The stored contact is
// returned either way.
func (s *ContactService) UpsertContact(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if err := contact.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.client.Table("contacts").Select().
		Eq("organization_id", contact.OrganizationID).
		Eq("email", contact.Email).
		Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up contact: %w", err)
	}

	if existing == nil {
		if contact.ContactID == "" {
			contact.ContactID = s.ids.NewPrefixed(idgen.PrefixContact)
		}
		if contact.Status == "" {
			contact.Status = domain.ContactStatusLead
		}
		inserted, err := s.client.Table("contacts").Insert(ctx, contact.Row())
		if err != nil {
			return nil, fmt.Errorf("failed to create contact: %w", err)
		}
		s.logger.WithField("contact_id", contact.ContactID).Info("Contact created")
		return domain.ContactFromRow(inserted[0]), nil
	}

	current := domain.ContactFromRow(existing)
	patch := store.Row{}
	if contact.FirstName != "" {
		patch["first_name"] = contact.FirstName
	}
	if contact.LastName != "" {
		patch["last_name"] = contact.LastName
	}
	if contact.Phone != "" {
		patch["phone"] = contact.Phone
	}
	if contact.Status != "" {
		patch["status"] = contact.Status
	}
	if contact.CompanyID != "" {
		patch["company_id"] = contact.CompanyID
	}
	if contact.LeadScore != 0 {
		patch["lead_score"] = contact.LeadScore
	}
	if len(contact.Tags) > 0 {
		patch["tags"] = contact.Tags
	}
	for key, value := range contact.Extra {
		patch[key] = value
	}
	if len(patch) > 0 {
		if err := s.client.Table("contacts").Update(patch).Eq("contact_id", current.ContactID).Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to update contact: %w", err)
		}
	}

	row, err := s.client.Table("contacts").Select().Eq("contact_id", current.ContactID).Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload contact: %w", err)
	}
	s.logger.WithField("contact_id", current.ContactID).Info("Contact updated")
	return domain.ContactFromRow(row), nil
}

// DeleteContact soft-deletes by stamping deleted_at; the row stays in the
// table so activity history keeps resolving.
func (s *ContactService) DeleteContact(ctx context.Context, contactID string) error {
	row, err := s.client.Table("contacts").Select().Eq("contact_id", contactID).Single(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up contact: %w", err)
	}
	if row == nil {
		return &domain.ErrNotFound{Entity: "contact", ID: contactID}
	}
	patch := store.Row{"deleted_at": s.now().UTC()}
	if err := s.client.Table("contacts").Update(patch).Eq("contact_id", contactID).Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	s.logger.WithField("contact_id", contactID).Info("Contact deleted")
	return nil
}

// ListActivities returns a contact's activity feed, newest first. Activity
// ids sort chronologically, so ordering on the id column is ordering by time.
func (s *ContactService) ListActivities(ctx context.Context, contactID string) ([]*domain.ContactActivity, error) {
	rows, err := s.client.Table("activities").Select().
		Eq("contact_id", contactID).
		Order("activity_id", false).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	activities := make([]*domain.ContactActivity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, domain.ActivityFromRow(row))
	}
	return activities, nil
}

// AddNote records a free-form note as a note-typed activity.
func (s *ContactService) AddNote(ctx context.Context, contactID, title, body string) (*domain.ContactActivity, error) {
	row, err := s.client.Table("contacts").Select().Eq("contact_id", contactID).Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up contact: %w", err)
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Entity: "contact", ID: contactID}
	}

	activity := &domain.ContactActivity{
		ActivityID:  s.ids.NewPrefixed(idgen.PrefixActivity),
		ContactID:   contactID,
		Type:        domain.ActivityTypeNote,
		Title:       title,
		Description: body,
	}
	if err := activity.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.client.Table("activities").Insert(ctx, activity.Row()); err != nil {
		return nil, fmt.Errorf("failed to record note: %w", err)
	}
	return activity, nil
}
