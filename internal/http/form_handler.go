package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/service"
	"github.com/agencydesk/agencydesk/pkg/logger"
)

type FormHandler struct {
	forms       *service.FormService
	submissions *service.SubmissionService
	logger      logger.Logger
}

func NewFormHandler(forms *service.FormService, submissions *service.SubmissionService, logger logger.Logger) *FormHandler {
	return &FormHandler{forms: forms, submissions: submissions, logger: logger}
}

func (h *FormHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/forms.list", h.handleList)
	mux.HandleFunc("/api/forms.get", h.handleGet)
	mux.HandleFunc("/api/forms.create", h.handleCreate)
	// public endpoint: embedded forms post here
	mux.HandleFunc("/api/forms.submit", h.handleSubmit)
}

func (h *FormHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	organizationID := r.URL.Query().Get("organization_id")
	if organizationID == "" {
		WriteJSONError(w, "Missing organization ID", http.StatusBadRequest)
		return
	}

	forms, err := h.forms.ListForms(r.Context(), organizationID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list forms")
		WriteJSONError(w, "Failed to list forms", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"forms": forms,
	})
}

func (h *FormHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	formID := r.URL.Query().Get("form_id")
	if formID == "" {
		WriteJSONError(w, "Missing form ID", http.StatusBadRequest)
		return
	}

	form, err := h.forms.GetForm(r.Context(), formID)
	if err != nil {
		var notFound *domain.ErrFormNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Form not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to get form")
		WriteJSONError(w, "Failed to get form", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"form": form,
	})
}

func (h *FormHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var form domain.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.forms.CreateForm(r.Context(), &form)
	if err != nil {
		var noID *domain.ErrNoIdentifierField
		var ambiguous *domain.ErrAmbiguousIdentifier
		if _, ok := err.(domain.ValidationError); ok || errors.As(err, &noID) || errors.As(err, &ambiguous) {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to create form")
		WriteJSONError(w, "Failed to create form", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"form": created,
	})
}

// handleSubmit is the public intake endpoint. Embedded forms post arbitrary
// field shapes, so the body is parsed dynamically rather than through a
// fixed struct.
func (h *FormHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if !gjson.ValidBytes(body) {
		WriteJSONError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	formID := gjson.GetBytes(body, "form_id").String()
	if formID == "" {
		WriteJSONError(w, "Missing form ID", http.StatusBadRequest)
		return
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsObject() {
		WriteJSONError(w, "Missing submission data", http.StatusBadRequest)
		return
	}
	values := make(map[string]any)
	data.ForEach(func(key, value gjson.Result) bool {
		values[key.String()] = value.Value()
		return true
	})

	result, err := h.submissions.ProcessSubmission(r.Context(), formID, values)
	if err != nil {
		var formNotFound *domain.ErrFormNotFound
		if errors.As(err, &formNotFound) {
			WriteJSONError(w, "Form not found", http.StatusNotFound)
			return
		}
		var missing *domain.ErrMissingIdentifierValue
		if errors.As(err, &missing) {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		var noID *domain.ErrNoIdentifierField
		var ambiguous *domain.ErrAmbiguousIdentifier
		var duplicates *domain.ErrDuplicateContacts
		if errors.As(err, &noID) || errors.As(err, &ambiguous) || errors.As(err, &duplicates) {
			h.logger.WithField("error", err.Error()).Error("Form submission rejected")
			WriteJSONError(w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to process submission")
		WriteJSONError(w, "Failed to process submission", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
