package domain

import "time"

// FormSubmission is the immutable record of one completed form fill.
type FormSubmission struct {
	ID           int64          `json:"id"`
	SubmissionID string         `json:"submission_id"`
	FormID       string         `json:"form_id"`
	ContactID    string         `json:"contact_id,omitempty"` // empty when contact creation was disabled
	Data         map[string]any `json:"data"`
	CreatedNew   bool           `json:"created_new_contact"`
	SubmittedAt  time.Time      `json:"submitted_at"`
}

// Row encodes the submission as a store row.
func (s *FormSubmission) Row() map[string]any {
	row := map[string]any{
		"submission_id":       s.SubmissionID,
		"form_id":             s.FormID,
		"contact_id":          s.ContactID,
		"data":                s.Data,
		"created_new_contact": s.CreatedNew,
		"submitted_at":        s.SubmittedAt,
	}
	if s.ID != 0 {
		row["id"] = s.ID
	}
	return row
}

// SubmissionFromRow decodes a store row into a FormSubmission.
func SubmissionFromRow(row map[string]any) *FormSubmission {
	return &FormSubmission{
		ID:           rowInt64(row, "id"),
		SubmissionID: rowString(row, "submission_id"),
		FormID:       rowString(row, "form_id"),
		ContactID:    rowString(row, "contact_id"),
		Data:         rowMap(row, "data"),
		CreatedNew:   rowBool(row, "created_new_contact"),
		SubmittedAt:  rowTime(row, "submitted_at"),
	}
}

// CMSRow is one denormalized entry in a per-form cms_<slug> table: the raw
// submitted values plus linkage back to the contact and submission.
type CMSRow struct {
	ID           int64          `json:"id"`
	CMSID        string         `json:"cms_id"`
	FormID       string         `json:"form_id"`
	SubmissionID string         `json:"submission_id"`
	ContactID    string         `json:"contact_id,omitempty"`
	Fields       map[string]any `json:"fields"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Row encodes the CMS entry with the submitted values flattened alongside
// the linkage columns.
func (r *CMSRow) Row() map[string]any {
	row := map[string]any{
		"cms_id":        r.CMSID,
		"form_id":       r.FormID,
		"submission_id": r.SubmissionID,
		"contact_id":    r.ContactID,
	}
	for key, value := range r.Fields {
		// Linkage columns win over colliding field names.
		if _, taken := row[key]; !taken {
			row[key] = value
		}
	}
	return row
}

// SubmissionResult is what the pipeline reports back to the public form.
type SubmissionResult struct {
	Success      bool   `json:"success"`
	ContactID    string `json:"contact_id,omitempty"`
	SubmissionID string `json:"submission_id"`
	Created      bool   `json:"created"`
	RedirectURL  string `json:"redirect_url,omitempty"`
}
