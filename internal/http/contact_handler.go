package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/service"
	"github.com/agencydesk/agencydesk/pkg/logger"
)

type ContactHandler struct {
	service *service.ContactService
	logger  logger.Logger
}

func NewContactHandler(service *service.ContactService, logger logger.Logger) *ContactHandler {
	return &ContactHandler{service: service, logger: logger}
}

func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.HandleFunc("/api/contacts.list", h.handleList)
	mux.HandleFunc("/api/contacts.getByEmail", h.handleGetByEmail)
	mux.HandleFunc("/api/contacts.upsert", h.handleUpsert)
	mux.HandleFunc("/api/contacts.delete", h.handleDelete)
	mux.HandleFunc("/api/contacts.activities", h.handleActivities)
	mux.HandleFunc("/api/contacts.addNote", h.handleAddNote)
}

func (h *ContactHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	organizationID := r.URL.Query().Get("organization_id")
	if organizationID == "" {
		WriteJSONError(w, "Missing organization ID", http.StatusBadRequest)
		return
	}

	contacts, err := h.service.ListContacts(r.Context(), organizationID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list contacts")
		WriteJSONError(w, "Failed to list contacts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contacts": contacts,
	})
}

func (h *ContactHandler) handleGetByEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	organizationID := r.URL.Query().Get("organization_id")
	if organizationID == "" {
		WriteJSONError(w, "Missing organization ID", http.StatusBadRequest)
		return
	}
	email := r.URL.Query().Get("email")
	if email == "" {
		WriteJSONError(w, "Missing email", http.StatusBadRequest)
		return
	}

	contact, err := h.service.GetContactByEmail(r.Context(), organizationID, email)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Contact not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to get contact by email")
		WriteJSONError(w, "Failed to get contact by email", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contact": contact,
	})
}

func (h *ContactHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var contact domain.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if contact.OrganizationID == "" {
		WriteJSONError(w, "Missing organization ID", http.StatusBadRequest)
		return
	}

	saved, err := h.service.UpsertContact(r.Context(), &contact)
	if err != nil {
		if _, ok := err.(domain.ValidationError); ok {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to upsert contact")
		WriteJSONError(w, "Failed to upsert contact", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contact": saved,
	})
}

type deleteContactRequest struct {
	ContactID string `json:"contact_id"`
}

func (h *ContactHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req deleteContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContactID == "" {
		WriteJSONError(w, "Missing contact ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteContact(r.Context(), req.ContactID); err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Contact not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to delete contact")
		WriteJSONError(w, "Failed to delete contact", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *ContactHandler) handleActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contactID := r.URL.Query().Get("contact_id")
	if contactID == "" {
		WriteJSONError(w, "Missing contact ID", http.StatusBadRequest)
		return
	}

	activities, err := h.service.ListActivities(r.Context(), contactID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list activities")
		WriteJSONError(w, "Failed to list activities", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": activities,
	})
}

type addNoteRequest struct {
	ContactID string `json:"contact_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

func (h *ContactHandler) handleAddNote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContactID == "" {
		WriteJSONError(w, "Missing contact ID", http.StatusBadRequest)
		return
	}

	note, err := h.service.AddNote(r.Context(), req.ContactID, req.Title, req.Body)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Contact not found", http.StatusNotFound)
			return
		}
		if _, ok := err.(domain.ValidationError); ok {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to add note")
		WriteJSONError(w, "Failed to add note", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activity": note,
	})
}
