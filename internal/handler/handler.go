// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer, plus the HTML page.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Jana57473/community-event-portal/internal/model"
	"github.com/Jana57473/community-event-portal/internal/repository"
	"github.com/Jana57473/community-event-portal/internal/service"
)

const (
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidID          = "invalid_id"
	codeInvalidInput       = "invalid_input"
	codeEventNotFound      = "event_not_found"
	codeSoldOut            = "sold_out"
	codeSubmissionFailed   = "submission_failed"
	codeNotFound           = "not_found"
	codeInternalError      = "internal_error"
)

// EventHandler holds all HTTP handlers for the event portal API.
type EventHandler struct {
	svc *service.EventService
	log *zap.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: log}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func eventIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("event id must be a positive integer")
	}
	return id, nil
}

// classify maps a service error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, codeEventNotFound
	case errors.Is(err, repository.ErrSoldOut):
		return http.StatusConflict, codeSoldOut
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, codeInvalidInput
	case errors.Is(err, service.ErrSubmissionFailed):
		return http.StatusBadGateway, codeSubmissionFailed
	default:
		return http.StatusInternalServerError, codeInternalError
	}
}

func (h *EventHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	} else {
		h.log.Warn("Request rejected", zap.String("path", r.URL.Path), zap.String("code", code), zap.Error(err))
	}
	writeError(w, status, code, msg)
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// ListEvents handles GET /api/events
// Query parameters: category, q, include_past.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	includePast, _ := strconv.ParseBool(q.Get("include_past"))

	events := h.svc.ListEvents(r.Context(), service.EventQuery{
		Category:    q.Get("category"),
		Search:      q.Get("q"),
		IncludePast: includePast,
	})

	writeJSON(w, http.StatusOK, events)
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		return
	}

	event, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Register handles POST /api/events/{id}/register
// Reserves one seat without collecting attendee details.
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		return
	}

	res, err := h.svc.Book(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// ListRegistrations handles GET /api/events/{id}/registrations
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		return
	}

	regs, err := h.svc.ListRegistrations(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if regs == nil {
		regs = []model.Registration{}
	}

	writeJSON(w, http.StatusOK, regs)
}

// Submit handles POST /api/registrations
// Sends the registration form to the submission endpoint, then reserves the seat.
func (h *EventHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, reg)
}

// CategoryStats handles GET /api/stats/categories
func (h *EventHandler) CategoryStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.CategoryTotals(r.Context()))
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound returns a JSON 404 for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, codeNotFound, "not found")
}
