package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/clinova/shift-scheduler/internal/application/services"
	"github.com/clinova/shift-scheduler/internal/domain/entities"
)

// AppointmentManager defines the appointment operations used over HTTP
type AppointmentManager interface {
	ListAppointments(ctx context.Context, filter services.AppointmentFilter) ([]entities.Appointment, error)
	BookAppointment(ctx context.Context, appt *entities.Appointment) error
	CancelAppointments(ctx context.Context, ids []string) (int, error)
	ReassignAppointments(ctx context.Context, ids []string, newDate time.Time, newTime string, newProfessionalID string) (int, error)
	SelectAllForProfessional(ctx context.Context, professionalID string) ([]string, error)
}

// AppointmentHandler serves appointment listing, booking and bulk operations
type AppointmentHandler struct {
	service AppointmentManager
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentManager) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// ListAppointments handles GET /api/appointments with optional filters:
// professionalId, status, from, to (RFC3339), search.
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.AppointmentFilter{
		ProfessionalID: q.Get("professionalId"),
		Status:         entities.AppointmentStatus(q.Get("status")),
		Search:         q.Get("search"),
	}

	if fromStr := q.Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid from date format (use RFC3339)")
			return
		}
		filter.From = &from
	}
	if toStr := q.Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid to date format (use RFC3339)")
			return
		}
		filter.To = &to
	}

	appointments, err := h.service.ListAppointments(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
	})
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var appt entities.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appt); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.BookAppointment(r.Context(), &appt); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, appt)
}

type bulkCancelRequest struct {
	AppointmentIDs []string `json:"appointment_ids"`
}

// BulkCancel handles POST /api/appointments/bulk-cancel
func (h *AppointmentHandler) BulkCancel(w http.ResponseWriter, r *http.Request) {
	var req bulkCancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, err := h.service.CancelAppointments(r.Context(), req.AppointmentIDs)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{
		"cancelled": updated,
	})
}

type bulkReassignRequest struct {
	AppointmentIDs    []string  `json:"appointment_ids"`
	NewDate           time.Time `json:"new_date"`
	NewTime           string    `json:"new_time"`
	NewProfessionalID string    `json:"new_professional_id,omitempty"`
}

// BulkReassign handles POST /api/appointments/bulk-reassign
func (h *AppointmentHandler) BulkReassign(w http.ResponseWriter, r *http.Request) {
	var req bulkReassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, err := h.service.ReassignAppointments(r.Context(), req.AppointmentIDs, req.NewDate, req.NewTime, req.NewProfessionalID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{
		"rescheduled": updated,
	})
}

// SelectForProfessional handles GET /api/appointments/select?professionalId=
func (h *AppointmentHandler) SelectForProfessional(w http.ResponseWriter, r *http.Request) {
	professionalID := r.URL.Query().Get("professionalId")
	if professionalID == "" {
		respondWithError(w, http.StatusBadRequest, "professionalId query parameter is required")
		return
	}

	ids, err := h.service.SelectAllForProfessional(r.Context(), professionalID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointment_ids": ids,
	})
}
