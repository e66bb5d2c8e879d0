package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/agencydesk/agencydesk/pkg/logger"
)

// Bookable window, UTC. Slots are generated inside this window only.
const (
	bookingDayStartHour = 9
	bookingDayEndHour   = 17
)

// MeetingProvider creates the video-call link attached to a booked event.
type MeetingProvider interface {
	CreateMeeting(ctx context.Context, req domain.MeetingRequest) (*domain.MeetingResult, error)
}

// StubMeetingProvider fabricates plausible meeting links without calling any
// conferencing API.
type StubMeetingProvider struct{}

func NewStubMeetingProvider() *StubMeetingProvider {
	return &StubMeetingProvider{}
}

func (p *StubMeetingProvider) CreateMeeting(_ context.Context, req domain.MeetingRequest) (*domain.MeetingResult, error) {
	id := uuid.NewString()
	return &domain.MeetingResult{
		Success:    true,
		MeetingURL: fmt.Sprintf("https://meet.lumen.agency/%s", id),
		MeetingID:  id,
		Password:   uuid.NewString()[:8],
	}, nil
}

// BookingService computes availability and books events onto calendars.
type BookingService struct {
	client   *store.Client
	meetings MeetingProvider
	logger   logger.Logger
}

func NewBookingService(client *store.Client, meetings MeetingProvider, log logger.Logger) *BookingService {
	if meetings == nil {
		meetings = NewStubMeetingProvider()
	}
	if log == nil {
		log = logger.NewMockLogger()
	}
	return &BookingService{client: client, meetings: meetings, logger: log}
}

// AvailableSlots returns the open windows for a booking type on one day.
// Candidate slots step through the 09:00–17:00 UTC window at duration+buffer
// intervals; a candidate is dropped when its busy interval (slot plus buffer)
// overlaps any event on the booking type's calendar.
func (s *BookingService) AvailableSlots(ctx context.Context, bookingTypeID int64, day time.Time) ([]domain.TimeSlot, error) {
	btRow, err := s.client.Table("booking_types").Select().Eq("id", bookingTypeID).Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking type: %w", err)
	}
	if btRow == nil {
		return nil, &domain.ErrNotFound{Entity: "booking type", ID: fmt.Sprintf("%d", bookingTypeID)}
	}
	bookingType := domain.BookingTypeFromRow(btRow)

	eventRows, err := s.client.Table("events").Select().
		Eq("calendar_id", bookingType.CalendarID).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	events := make([]*domain.Event, 0, len(eventRows))
	for _, row := range eventRows {
		events = append(events, domain.EventFromRow(row))
	}

	duration := time.Duration(bookingType.DurationMinutes) * time.Minute
	buffer := time.Duration(bookingType.BufferMinutes) * time.Minute

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), bookingDayStartHour, 0, 0, 0, time.UTC)
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), bookingDayEndHour, 0, 0, 0, time.UTC)

	var slots []domain.TimeSlot
	for start := dayStart; !start.Add(duration).After(dayEnd); start = start.Add(duration + buffer) {
		end := start.Add(duration)
		busyEnd := end.Add(buffer)
		free := true
		for _, event := range events {
			if event.Overlaps(start, busyEnd) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, domain.TimeSlot{Start: start, End: end})
		}
	}
	return slots, nil
}

// CreateEvent validates and stores a calendar event, attaching a meeting link
// when requested.
func (s *BookingService) CreateEvent(ctx context.Context, event *domain.Event, withMeeting bool) (*domain.Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if withMeeting && event.MeetingURL == "" {
		meeting, err := s.meetings.CreateMeeting(ctx, domain.MeetingRequest{
			Title:       event.Title,
			Description: event.Description,
			StartTime:   event.StartTime,
			EndTime:     event.EndTime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create meeting: %w", err)
		}
		event.MeetingURL = meeting.MeetingURL
	}

	inserted, err := s.client.Table("events").Insert(ctx, event.Row())
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"calendar_id": event.CalendarID,
		"title":       event.Title,
	}).Info("Event created")
	return domain.EventFromRow(inserted[0]), nil
}

// ListEvents returns a calendar's events in chronological order.
func (s *BookingService) ListEvents(ctx context.Context, calendarID int64) ([]*domain.Event, error) {
	rows, err := s.client.Table("events").Select().
		Eq("calendar_id", calendarID).
		Order("start_time", true).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	events := make([]*domain.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, domain.EventFromRow(row))
	}
	return events, nil
}
