package service

import (
	"context"
	"fmt"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/agencydesk/agencydesk/pkg/idgen"
	"github.com/agencydesk/agencydesk/pkg/logger"
)

// FormService manages form definitions. Schema problems are caught here at
// save time so the submission pipeline only ever sees well-formed schemas
// from rows this service wrote.
type FormService struct {
	client *store.Client
	ids    *idgen.Generator
	logger logger.Logger
}

func NewFormService(client *store.Client, ids *idgen.Generator, log logger.Logger) *FormService {
	if ids == nil {
		ids = idgen.NewGenerator()
	}
	if log == nil {
		log = logger.NewMockLogger()
	}
	return &FormService{client: client, ids: ids, logger: log}
}

func (s *FormService) ListForms(ctx context.Context, organizationID string) ([]*domain.Form, error) {
	rows, err := s.client.Table("forms").Select().
		Eq("organization_id", organizationID).
		Order("form_id", true).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	forms := make([]*domain.Form, 0, len(rows))
	for _, row := range rows {
		forms = append(forms, domain.FormFromRow(row))
	}
	return forms, nil
}

func (s *FormService) GetForm(ctx context.Context, formID string) (*domain.Form, error) {
	row, err := s.client.Table("forms").Select().Eq("form_id", formID).Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	if row == nil {
		return nil, &domain.ErrFormNotFound{FormID: formID}
	}
	return domain.FormFromRow(row), nil
}

// CreateForm validates and stores a new form definition. Validate rejects
// schemas with zero or more than one identifier field, so every saved form
// has exactly one.
func (s *FormService) CreateForm(ctx context.Context, form *domain.Form) (*domain.Form, error) {
	if form.Slug == "" {
		form.Slug = domain.Slugify(form.Name)
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if form.FormID == "" {
		form.FormID = s.ids.NewPrefixed(idgen.PrefixForm)
	}

	inserted, err := s.client.Table("forms").Insert(ctx, form.Row())
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"form_id": form.FormID,
		"slug":    form.Slug,
	}).Info("Form created")
	return domain.FormFromRow(inserted[0]), nil
}
