package domain

import (
	"time"
)

// Calendar groups events under a color and visibility toggle.
type Calendar struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
}

func CalendarFromRow(row map[string]any) *Calendar {
	return &Calendar{
		ID:        rowInt64(row, "id"),
		Name:      rowString(row, "name"),
		Color:     rowString(row, "color"),
		Visible:   rowBool(row, "visible"),
		CreatedAt: rowTime(row, "created_at"),
	}
}

// Event is a scheduled block of time on one calendar.
type Event struct {
	ID          int64     `json:"id"`
	CalendarID  int64     `json:"calendar_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	MeetingURL  string    `json:"meeting_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *Event) Validate() error {
	if e.Title == "" {
		return NewValidationError("event title is required")
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return NewValidationError("event start and end times are required")
	}
	if !e.EndTime.After(e.StartTime) {
		return NewValidationError("event end time must be after start time")
	}
	return nil
}

// Overlaps reports whether two half-open intervals [start, end) intersect.
func (e *Event) Overlaps(start, end time.Time) bool {
	return e.StartTime.Before(end) && start.Before(e.EndTime)
}

func (e *Event) Row() map[string]any {
	row := map[string]any{
		"calendar_id": e.CalendarID,
		"title":       e.Title,
		"description": e.Description,
		"start_time":  e.StartTime,
		"end_time":    e.EndTime,
	}
	if e.MeetingURL != "" {
		row["meeting_url"] = e.MeetingURL
	}
	if e.ID != 0 {
		row["id"] = e.ID
	}
	return row
}

func EventFromRow(row map[string]any) *Event {
	return &Event{
		ID:          rowInt64(row, "id"),
		CalendarID:  rowInt64(row, "calendar_id"),
		Title:       rowString(row, "title"),
		Description: rowString(row, "description"),
		StartTime:   rowTime(row, "start_time"),
		EndTime:     rowTime(row, "end_time"),
		MeetingURL:  rowString(row, "meeting_url"),
		CreatedAt:   rowTime(row, "created_at"),
	}
}

// BookingType describes a bookable slot template: duration plus the buffer
// kept free after each booking.
type BookingType struct {
	ID              int64  `json:"id"`
	CalendarID      int64  `json:"calendar_id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	BufferMinutes   int    `json:"buffer_minutes"`
	Color           string `json:"color,omitempty"`
}

func (b *BookingType) Validate() error {
	if b.Name == "" {
		return NewValidationError("booking type name is required")
	}
	if b.DurationMinutes <= 0 {
		return NewValidationError("booking type duration must be positive")
	}
	if b.BufferMinutes < 0 {
		return NewValidationError("booking type buffer cannot be negative")
	}
	return nil
}

func BookingTypeFromRow(row map[string]any) *BookingType {
	return &BookingType{
		ID:              rowInt64(row, "id"),
		CalendarID:      rowInt64(row, "calendar_id"),
		Name:            rowString(row, "name"),
		DurationMinutes: rowInt(row, "duration_minutes"),
		BufferMinutes:   rowInt(row, "buffer_minutes"),
		Color:           rowString(row, "color"),
	}
}

// TimeSlot is one available booking window, computed at read time.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MeetingRequest is the shape handed to the video-call link provider.
type MeetingRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// MeetingResult is the shape every provider stub must return.
type MeetingResult struct {
	Success    bool   `json:"success"`
	MeetingURL string `json:"meeting_url"`
	MeetingID  string `json:"meeting_id,omitempty"`
	Password   string `json:"password,omitempty"`
}
