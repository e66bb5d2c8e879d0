package domain

import (
	"fmt"
	"time"
)

// ActivityType classifies a contact activity entry.
type ActivityType string

const (
	ActivityTypeEmail      ActivityType = "email"
	ActivityTypeSMS        ActivityType = "sms"
	ActivityTypeCall       ActivityType = "call"
	ActivityTypeMeeting    ActivityType = "meeting"
	ActivityTypeNote       ActivityType = "note"
	ActivityTypeForm       ActivityType = "form"
	ActivityTypeAutomation ActivityType = "automation"
)

var activityTypes = map[ActivityType]struct{}{
	ActivityTypeEmail:      {},
	ActivityTypeSMS:        {},
	ActivityTypeCall:       {},
	ActivityTypeMeeting:    {},
	ActivityTypeNote:       {},
	ActivityTypeForm:       {},
	ActivityTypeAutomation: {},
}

// ContactActivity is one append-only audit-trail entry attached to a contact.
type ContactActivity struct {
	ID          int64          `json:"id"`
	ActivityID  string         `json:"activity_id"`
	ContactID   string         `json:"contact_id"`
	Type        ActivityType   `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (a *ContactActivity) Validate() error {
	if a.ContactID == "" {
		return NewValidationError("activity contact_id is required")
	}
	if a.Title == "" {
		return NewValidationError("activity title is required")
	}
	if _, ok := activityTypes[a.Type]; !ok {
		return NewValidationError(fmt.Sprintf("unknown activity type: %s", a.Type))
	}
	return nil
}

// Row encodes the activity as a store row.
func (a *ContactActivity) Row() map[string]any {
	row := map[string]any{
		"activity_id": a.ActivityID,
		"contact_id":  a.ContactID,
		"type":        string(a.Type),
		"title":       a.Title,
		"description": a.Description,
	}
	if a.Metadata != nil {
		row["metadata"] = a.Metadata
	}
	if a.ID != 0 {
		row["id"] = a.ID
	}
	return row
}

// ActivityFromRow decodes a store row into a ContactActivity.
func ActivityFromRow(row map[string]any) *ContactActivity {
	return &ContactActivity{
		ID:          rowInt64(row, "id"),
		ActivityID:  rowString(row, "activity_id"),
		ContactID:   rowString(row, "contact_id"),
		Type:        ActivityType(rowString(row, "type")),
		Title:       rowString(row, "title"),
		Description: rowString(row, "description"),
		Metadata:    rowMap(row, "metadata"),
		CreatedAt:   rowTime(row, "created_at"),
	}
}
