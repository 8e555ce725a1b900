package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/clinova/shift-scheduler/internal/application/services"
	"github.com/clinova/shift-scheduler/internal/domain/entities"
)

// CalendarViewer builds derived monthly projections
type CalendarViewer interface {
	BuildMonthlyView(ctx context.Context, month, year int, professionalID string) (*entities.MonthlyShiftView, error)
	MonthStatistics(ctx context.Context, month, year int) (*entities.ShiftStatistics, error)
}

// ShiftAssigner creates and resolves shifts
type ShiftAssigner interface {
	AssignShifts(ctx context.Context, professionalID string, dates []time.Time, slots []entities.TimeSlot) ([]entities.Shift, error)
	GenerateMonthlyShifts(ctx context.Context, professionalID string, month, year int, workWeekdays []time.Weekday, slots []entities.TimeSlot) ([]entities.Shift, error)
	GetShift(ctx context.Context, id string) (*entities.Shift, error)
}

// ShiftReassigner moves shifts between professionals
type ShiftReassigner interface {
	ReassignShift(ctx context.Context, input services.ReassignShiftInput) (*entities.Shift, error)
	ListReassignments(ctx context.Context) ([]entities.ShiftReassignment, error)
}

// ScheduleHandler serves the calendar views and shift mutations
type ScheduleHandler struct {
	calendar   CalendarViewer
	assigner   ShiftAssigner
	reassigner ShiftReassigner
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(calendar CalendarViewer, assigner ShiftAssigner, reassigner ShiftReassigner) *ScheduleHandler {
	return &ScheduleHandler{
		calendar:   calendar,
		assigner:   assigner,
		reassigner: reassigner,
	}
}

// GetMonthlyView handles GET /api/schedule/monthly?month=&year=&professionalId=
// month is 0-indexed (January = 0).
func (h *ScheduleHandler) GetMonthlyView(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYearParams(w, r)
	if !ok {
		return
	}

	view, err := h.calendar.BuildMonthlyView(r.Context(), month, year, r.URL.Query().Get("professionalId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// GetStatistics handles GET /api/schedule/statistics?month=&year=
func (h *ScheduleHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYearParams(w, r)
	if !ok {
		return
	}

	stats, err := h.calendar.MonthStatistics(r.Context(), month, year)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

type assignShiftsRequest struct {
	ProfessionalID string              `json:"professional_id"`
	Dates          []time.Time         `json:"dates"`
	TimeSlots      []entities.TimeSlot `json:"time_slots"`
}

// AssignShifts handles POST /api/shifts/assign
func (h *ScheduleHandler) AssignShifts(w http.ResponseWriter, r *http.Request) {
	var req assignShiftsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.assigner.AssignShifts(r.Context(), req.ProfessionalID, req.Dates, req.TimeSlots)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"shifts": created,
	})
}

type generateMonthlyRequest struct {
	ProfessionalID string              `json:"professional_id"`
	Month          int                 `json:"month"` // 0-indexed
	Year           int                 `json:"year"`
	WorkWeekdays   []time.Weekday      `json:"work_weekdays,omitempty"`
	TimeSlots      []entities.TimeSlot `json:"time_slots,omitempty"`
}

// GenerateMonthlyShifts handles POST /api/shifts/generate-monthly
func (h *ScheduleHandler) GenerateMonthlyShifts(w http.ResponseWriter, r *http.Request) {
	var req generateMonthlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.assigner.GenerateMonthlyShifts(r.Context(), req.ProfessionalID, req.Month, req.Year, req.WorkWeekdays, req.TimeSlots)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"shifts": created,
	})
}

// GetShift handles GET /api/shifts/{id}
func (h *ScheduleHandler) GetShift(w http.ResponseWriter, r *http.Request) {
	shiftID := r.PathValue("id")
	if shiftID == "" {
		respondWithError(w, http.StatusBadRequest, "shift ID is required")
		return
	}

	shift, err := h.assigner.GetShift(r.Context(), shiftID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, shift)
}

type reassignShiftRequest struct {
	NewProfessionalID  string   `json:"new_professional_id"`
	Reason             string   `json:"reason"`
	IsPartial          bool     `json:"is_partial"`
	PartialTimeSlotIDs []string `json:"partial_time_slot_ids,omitempty"`
	RequestedBy        string   `json:"requested_by,omitempty"`
}

// ReassignShift handles POST /api/shifts/{id}/reassign
func (h *ScheduleHandler) ReassignShift(w http.ResponseWriter, r *http.Request) {
	shiftID := r.PathValue("id")
	if shiftID == "" {
		respondWithError(w, http.StatusBadRequest, "shift ID is required")
		return
	}

	var req reassignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := h.reassigner.ReassignShift(r.Context(), services.ReassignShiftInput{
		ShiftID:            shiftID,
		NewProfessionalID:  req.NewProfessionalID,
		Reason:             req.Reason,
		IsPartial:          req.IsPartial,
		PartialTimeSlotIDs: req.PartialTimeSlotIDs,
		RequestedBy:        req.RequestedBy,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// ListReassignments handles GET /api/reassignments
func (h *ScheduleHandler) ListReassignments(w http.ResponseWriter, r *http.Request) {
	records, err := h.reassigner.ListReassignments(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reassignments": records,
	})
}

// monthYearParams parses the shared month/year query parameters.
// It writes the error response itself and reports success via ok.
func monthYearParams(w http.ResponseWriter, r *http.Request) (month, year int, ok bool) {
	monthStr := r.URL.Query().Get("month")
	yearStr := r.URL.Query().Get("year")
	if monthStr == "" || yearStr == "" {
		respondWithError(w, http.StatusBadRequest, "month and year query parameters are required")
		return 0, 0, false
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "month must be an integer (0-indexed, January = 0)")
		return 0, 0, false
	}
	year, err = strconv.Atoi(yearStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "year must be an integer")
		return 0, 0, false
	}
	return month, year, true
}
