package domain

import (
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
)

// Contact statuses
const (
	ContactStatusLead     = "lead"
	ContactStatusCustomer = "customer"
	ContactStatusChurned  = "churned"
)

// Defaults applied when the submission pipeline synthesizes a new lead.
const (
	DefaultLeadScore  = 50
	DefaultQuality    = "unrated"
	DefaultEngagement = "new"
)

// DefaultLeadTags tag contacts captured through a public form.
func DefaultLeadTags() []string {
	return []string{"form-lead"}
}

// Contact represents a CRM lead or customer. Known columns are typed; any
// other column a form maps onto the contact lands in Extra.
type Contact struct {
	ID             int64  `json:"id"`
	ContactID      string `json:"contact_id"`
	OrganizationID string `json:"organization_id"`
	CompanyID      string `json:"company_id,omitempty"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`

	Status     string   `json:"status"`
	LeadScore  int      `json:"lead_score"`
	Quality    string   `json:"quality,omitempty"`
	Engagement string   `json:"engagement,omitempty"`
	Tags       []string `json:"tags,omitempty"`

	EmailOptIn     bool `json:"email_opt_in"`
	SMSOptIn       bool `json:"sms_opt_in"`
	MarketingOptIn bool `json:"marketing_opt_in"`

	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Extra map[string]any `json:"extra,omitempty"`
}

// NewLeadContact returns a contact carrying the default lead-scoring fields
// used when a form submission creates a contact that did not exist before.
func NewLeadContact(organizationID string) *Contact {
	return &Contact{
		OrganizationID: organizationID,
		Status:         ContactStatusLead,
		LeadScore:      DefaultLeadScore,
		Quality:        DefaultQuality,
		Engagement:     DefaultEngagement,
		Tags:           DefaultLeadTags(),
		EmailOptIn:     true,
		SMSOptIn:       true,
		MarketingOptIn: true,
	}
}

// Validate ensures that the contact has all required fields
func (c *Contact) Validate() error {
	if c.Email == "" {
		return NewValidationError("email is required")
	}
	if !govalidator.IsEmail(c.Email) {
		return NewValidationError(fmt.Sprintf("invalid email format: %s", c.Email))
	}
	return nil
}

// contact columns every form field may map onto
const (
	ContactAttrEmail     = "email"
	ContactAttrFirstName = "first_name"
	ContactAttrLastName  = "last_name"
	ContactAttrPhone     = "phone"
)

// SetAttribute assigns a mapped form value onto the contact. Unknown
// attribute names are preserved in Extra so per-form custom mappings
// survive the round trip through the store.
func (c *Contact) SetAttribute(name, value string) {
	switch name {
	case ContactAttrEmail:
		c.Email = value
	case ContactAttrFirstName:
		c.FirstName = value
	case ContactAttrLastName:
		c.LastName = value
	case ContactAttrPhone:
		c.Phone = value
	default:
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[name] = value
	}
}

// Attribute reads a mapped attribute back, falling through to Extra.
func (c *Contact) Attribute(name string) string {
	switch name {
	case ContactAttrEmail:
		return c.Email
	case ContactAttrFirstName:
		return c.FirstName
	case ContactAttrLastName:
		return c.LastName
	case ContactAttrPhone:
		return c.Phone
	}
	if v, ok := c.Extra[name].(string); ok {
		return v
	}
	return ""
}

// ContactFromRow decodes a store row into a Contact.
func ContactFromRow(row map[string]any) *Contact {
	c := &Contact{
		ID:              rowInt64(row, "id"),
		ContactID:       rowString(row, "contact_id"),
		OrganizationID:  rowString(row, "organization_id"),
		CompanyID:       rowString(row, "company_id"),
		FirstName:       rowString(row, "first_name"),
		LastName:        rowString(row, "last_name"),
		Email:           rowString(row, "email"),
		Phone:           rowString(row, "phone"),
		Status:          rowString(row, "status"),
		LeadScore:       rowInt(row, "lead_score"),
		Quality:         rowString(row, "quality"),
		Engagement:      rowString(row, "engagement"),
		Tags:            rowStringSlice(row, "tags"),
		EmailOptIn:      rowBool(row, "email_opt_in"),
		SMSOptIn:        rowBool(row, "sms_opt_in"),
		MarketingOptIn:  rowBool(row, "marketing_opt_in"),
		LastContactedAt: rowTimePtr(row, "last_contacted_at"),
		DeletedAt:       rowTimePtr(row, "deleted_at"),
		CreatedAt:       rowTime(row, "created_at"),
		UpdatedAt:       rowTime(row, "updated_at"),
	}
	known := map[string]struct{}{
		"id": {}, "contact_id": {}, "organization_id": {}, "company_id": {},
		"first_name": {}, "last_name": {}, "email": {}, "phone": {},
		"status": {}, "lead_score": {}, "quality": {}, "engagement": {}, "tags": {},
		"email_opt_in": {}, "sms_opt_in": {}, "marketing_opt_in": {},
		"last_contacted_at": {}, "deleted_at": {}, "created_at": {}, "updated_at": {},
	}
	for key, value := range row {
		if _, ok := known[key]; ok {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[key] = value
	}
	return c
}

// Row encodes the contact as a store row.
func (c *Contact) Row() map[string]any {
	row := map[string]any{
		"contact_id":       c.ContactID,
		"organization_id":  c.OrganizationID,
		"first_name":       c.FirstName,
		"last_name":        c.LastName,
		"email":            c.Email,
		"phone":            c.Phone,
		"status":           c.Status,
		"lead_score":       c.LeadScore,
		"quality":          c.Quality,
		"engagement":       c.Engagement,
		"tags":             c.Tags,
		"email_opt_in":     c.EmailOptIn,
		"sms_opt_in":       c.SMSOptIn,
		"marketing_opt_in": c.MarketingOptIn,
	}
	if c.ID != 0 {
		row["id"] = c.ID
	}
	if c.CompanyID != "" {
		row["company_id"] = c.CompanyID
	}
	if c.LastContactedAt != nil {
		row["last_contacted_at"] = *c.LastContactedAt
	}
	if c.DeletedAt != nil {
		row["deleted_at"] = *c.DeletedAt
	}
	if !c.CreatedAt.IsZero() {
		row["created_at"] = c.CreatedAt
	}
	if !c.UpdatedAt.IsZero() {
		row["updated_at"] = c.UpdatedAt
	}
	for key, value := range c.Extra {
		row[key] = value
	}
	return row
}
