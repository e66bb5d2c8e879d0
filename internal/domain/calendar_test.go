package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventValidate(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	e := &Event{Title: "Kickoff", StartTime: start, EndTime: start.Add(time.Hour)}
	assert.NoError(t, e.Validate())

	e.EndTime = start
	assert.Error(t, e.Validate(), "end must be strictly after start")

	e.EndTime = start.Add(-time.Hour)
	assert.Error(t, e.Validate())

	e = &Event{StartTime: start, EndTime: start.Add(time.Hour)}
	assert.Error(t, e.Validate(), "title required")
}

func TestEventOverlaps(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	e := &Event{Title: "Busy", StartTime: start, EndTime: start.Add(time.Hour)}

	assert.True(t, e.Overlaps(start.Add(30*time.Minute), start.Add(90*time.Minute)))
	assert.True(t, e.Overlaps(start.Add(-30*time.Minute), start.Add(30*time.Minute)))
	// Touching intervals do not overlap
	assert.False(t, e.Overlaps(start.Add(time.Hour), start.Add(2*time.Hour)))
	assert.False(t, e.Overlaps(start.Add(-time.Hour), start))
}

func TestBookingTypeValidate(t *testing.T) {
	b := &BookingType{Name: "Intro Call", DurationMinutes: 30, BufferMinutes: 10}
	assert.NoError(t, b.Validate())

	b.DurationMinutes = 0
	assert.Error(t, b.Validate())

	b.DurationMinutes = 30
	b.BufferMinutes = -5
	assert.Error(t, b.Validate())

	b = &BookingType{DurationMinutes: 30}
	assert.Error(t, b.Validate())
}
