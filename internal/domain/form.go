package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// Form field types
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypePhone    = "phone"
	FieldTypeTextarea = "textarea"
	FieldTypeSelect   = "select"
	FieldTypeCheckbox = "checkbox"
)

// FormField is one entry in a form's ordered field schema.
type FormField struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Type         string   `json:"type"`
	Required     bool     `json:"required"`
	Options      []string `json:"options,omitempty"`
	MapToContact string   `json:"map_to_contact,omitempty"`
	IsIdentifier bool     `json:"is_identifier,omitempty"`
}

// FormSettings controls what a submission does besides recording itself.
type FormSettings struct {
	CreateContact     bool   `json:"create_contact"`
	UpdateContact     bool   `json:"update_contact"`
	WebhookURL        string `json:"webhook_url,omitempty"`
	NotificationEmail string `json:"notification_email,omitempty"`
	RedirectURL       string `json:"redirect_url,omitempty"`
}

// Form is a named, versioned field schema plus submission settings.
type Form struct {
	ID             int64        `json:"id"`
	FormID         string       `json:"form_id"`
	OrganizationID string       `json:"organization_id"`
	Name           string       `json:"name"`
	Slug           string       `json:"slug"`
	Fields         []FormField  `json:"fields"`
	Settings       FormSettings `json:"settings"`
	ResponseCount  int          `json:"response_count"`
	LastResponseAt *time.Time   `json:"last_response_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the per-form slug used to name its CMS table.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugCleaner.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}

// CMSTableName returns the dynamically named table holding this form's
// denormalized submissions.
func (f *Form) CMSTableName() string {
	return "cms_" + f.Slug
}

// IdentifierField returns the single field flagged is_identifier. Zero
// flagged fields or more than one are both schema errors; the pipeline
// cannot dedup contacts without exactly one.
func (f *Form) IdentifierField() (*FormField, error) {
	var found []*FormField
	for i := range f.Fields {
		if f.Fields[i].IsIdentifier {
			found = append(found, &f.Fields[i])
		}
	}
	switch len(found) {
	case 0:
		return nil, &ErrNoIdentifierField{FormID: f.FormID}
	case 1:
		return found[0], nil
	default:
		names := make([]string, len(found))
		for i, field := range found {
			names[i] = field.Name
		}
		return nil, &ErrAmbiguousIdentifier{FormID: f.FormID, Fields: names}
	}
}

// Validate rejects schemas the submission pipeline cannot process. It is
// enforced at form save time so bad schemas never reach a public form.
func (f *Form) Validate() error {
	if f.Name == "" {
		return NewValidationError("form name is required")
	}
	if len(f.Fields) == 0 {
		return NewValidationError("form must declare at least one field")
	}
	seen := make(map[string]struct{}, len(f.Fields))
	for _, field := range f.Fields {
		if field.Name == "" {
			return NewValidationError("form field name is required")
		}
		if _, dup := seen[field.Name]; dup {
			return NewValidationError(fmt.Sprintf("duplicate form field name: %s", field.Name))
		}
		seen[field.Name] = struct{}{}
	}
	if _, err := f.IdentifierField(); err != nil {
		return err
	}
	if f.Settings.WebhookURL != "" && !govalidator.IsURL(f.Settings.WebhookURL) {
		return NewValidationError(fmt.Sprintf("invalid webhook URL: %s", f.Settings.WebhookURL))
	}
	if f.Settings.NotificationEmail != "" && !govalidator.IsEmail(f.Settings.NotificationEmail) {
		return NewValidationError(fmt.Sprintf("invalid notification email: %s", f.Settings.NotificationEmail))
	}
	return nil
}

// FormFromRow decodes a store row into a Form.
func FormFromRow(row map[string]any) *Form {
	f := &Form{
		ID:             rowInt64(row, "id"),
		FormID:         rowString(row, "form_id"),
		OrganizationID: rowString(row, "organization_id"),
		Name:           rowString(row, "name"),
		Slug:           rowString(row, "slug"),
		ResponseCount:  rowInt(row, "response_count"),
		LastResponseAt: rowTimePtr(row, "last_response_at"),
		CreatedAt:      rowTime(row, "created_at"),
		UpdatedAt:      rowTime(row, "updated_at"),
	}
	if f.Slug == "" {
		f.Slug = Slugify(f.Name)
	}
	switch fields := row["fields"].(type) {
	case []FormField:
		f.Fields = append([]FormField(nil), fields...)
	case []any:
		for _, raw := range fields {
			if m, ok := raw.(map[string]any); ok {
				f.Fields = append(f.Fields, FormField{
					Name:         rowString(m, "name"),
					Label:        rowString(m, "label"),
					Type:         rowString(m, "type"),
					Required:     rowBool(m, "required"),
					Options:      rowStringSlice(m, "options"),
					MapToContact: rowString(m, "map_to_contact"),
					IsIdentifier: rowBool(m, "is_identifier"),
				})
			}
		}
	}
	if settings, ok := row["settings"].(map[string]any); ok {
		f.Settings = FormSettings{
			CreateContact:     rowBool(settings, "create_contact"),
			UpdateContact:     rowBool(settings, "update_contact"),
			WebhookURL:        rowString(settings, "webhook_url"),
			NotificationEmail: rowString(settings, "notification_email"),
			RedirectURL:       rowString(settings, "redirect_url"),
		}
	} else if settings, ok := row["settings"].(FormSettings); ok {
		f.Settings = settings
	}
	return f
}

// Row encodes the form as a store row.
func (f *Form) Row() map[string]any {
	fields := make([]any, len(f.Fields))
	for i, field := range f.Fields {
		m := map[string]any{
			"name":     field.Name,
			"label":    field.Label,
			"type":     field.Type,
			"required": field.Required,
		}
		if len(field.Options) > 0 {
			m["options"] = field.Options
		}
		if field.MapToContact != "" {
			m["map_to_contact"] = field.MapToContact
		}
		if field.IsIdentifier {
			m["is_identifier"] = true
		}
		fields[i] = m
	}
	row := map[string]any{
		"form_id":         f.FormID,
		"organization_id": f.OrganizationID,
		"name":            f.Name,
		"slug":            f.Slug,
		"fields":          fields,
		"settings": map[string]any{
			"create_contact":     f.Settings.CreateContact,
			"update_contact":     f.Settings.UpdateContact,
			"webhook_url":        f.Settings.WebhookURL,
			"notification_email": f.Settings.NotificationEmail,
			"redirect_url":       f.Settings.RedirectURL,
		},
		"response_count": f.ResponseCount,
	}
	if f.ID != 0 {
		row["id"] = f.ID
	}
	if f.LastResponseAt != nil {
		row["last_response_at"] = *f.LastResponseAt
	}
	if !f.CreatedAt.IsZero() {
		row["created_at"] = f.CreatedAt
	}
	if !f.UpdatedAt.IsZero() {
		row["updated_at"] = f.UpdatedAt
	}
	return row
}
