package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/service"
	"github.com/agencydesk/agencydesk/pkg/logger"
)

type BookingHandler struct {
	service *service.BookingService
	logger  logger.Logger
}

func NewBookingHandler(service *service.BookingService, logger logger.Logger) *BookingHandler {
	return &BookingHandler{service: service, logger: logger}
}

func (h *BookingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/booking.slots", h.handleSlots)
	mux.HandleFunc("/api/events.list", h.handleListEvents)
	mux.HandleFunc("/api/events.create", h.handleCreateEvent)
}

func (h *BookingHandler) handleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bookingTypeID, err := strconv.ParseInt(r.URL.Query().Get("booking_type_id"), 10, 64)
	if err != nil {
		WriteJSONError(w, "Invalid booking type ID", http.StatusBadRequest)
		return
	}
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		WriteJSONError(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	slots, err := h.service.AvailableSlots(r.Context(), bookingTypeID, day)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Booking type not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to compute slots")
		WriteJSONError(w, "Failed to compute slots", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"slots": slots,
	})
}

func (h *BookingHandler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	calendarID, err := strconv.ParseInt(r.URL.Query().Get("calendar_id"), 10, 64)
	if err != nil {
		WriteJSONError(w, "Invalid calendar ID", http.StatusBadRequest)
		return
	}

	events, err := h.service.ListEvents(r.Context(), calendarID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list events")
		WriteJSONError(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
	})
}

type createEventRequest struct {
	domain.Event
	WithMeeting bool `json:"with_meeting"`
}

func (h *BookingHandler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), &req.Event, req.WithMeeting)
	if err != nil {
		if _, ok := err.(domain.ValidationError); ok {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to create event")
		WriteJSONError(w, "Failed to create event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"event": event,
	})
}
