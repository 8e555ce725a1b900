package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clinova/shift-scheduler/internal/api/handlers"
	"github.com/clinova/shift-scheduler/internal/application/services"
	"github.com/clinova/shift-scheduler/internal/domain/entities"
	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

// MockCalendarService mocks the calendar projections
type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) BuildMonthlyView(ctx context.Context, month, year int, professionalID string) (*entities.MonthlyShiftView, error) {
	args := m.Called(ctx, month, year, professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MonthlyShiftView), args.Error(1)
}

func (m *MockCalendarService) MonthStatistics(ctx context.Context, month, year int) (*entities.ShiftStatistics, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ShiftStatistics), args.Error(1)
}

// MockShiftService mocks shift creation
type MockShiftService struct {
	mock.Mock
}

func (m *MockShiftService) AssignShifts(ctx context.Context, professionalID string, dates []time.Time, slots []entities.TimeSlot) ([]entities.Shift, error) {
	args := m.Called(ctx, professionalID, dates, slots)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Shift), args.Error(1)
}

func (m *MockShiftService) GenerateMonthlyShifts(ctx context.Context, professionalID string, month, year int, workWeekdays []time.Weekday, slots []entities.TimeSlot) ([]entities.Shift, error) {
	args := m.Called(ctx, professionalID, month, year, workWeekdays, slots)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Shift), args.Error(1)
}

func (m *MockShiftService) GetShift(ctx context.Context, id string) (*entities.Shift, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Shift), args.Error(1)
}

// MockReassignmentService mocks shift reassignment
type MockReassignmentService struct {
	mock.Mock
}

func (m *MockReassignmentService) ReassignShift(ctx context.Context, input services.ReassignShiftInput) (*entities.Shift, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Shift), args.Error(1)
}

func (m *MockReassignmentService) ListReassignments(ctx context.Context) ([]entities.ShiftReassignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ShiftReassignment), args.Error(1)
}

func newScheduleHandler() (*handlers.ScheduleHandler, *MockCalendarService, *MockShiftService, *MockReassignmentService) {
	calendar := new(MockCalendarService)
	shifts := new(MockShiftService)
	reassign := new(MockReassignmentService)
	return handlers.NewScheduleHandler(calendar, shifts, reassign), calendar, shifts, reassign
}

func TestScheduleHandler_GetMonthlyView(t *testing.T) {
	t.Run("returns monthly view", func(t *testing.T) {
		handler, calendar, _, _ := newScheduleHandler()

		view := &entities.MonthlyShiftView{Month: 5, Year: 2024}
		calendar.On("BuildMonthlyView", mock.Anything, 5, 2024, "doc-1").Return(view, nil)

		req := httptest.NewRequest("GET", "/api/schedule/monthly?month=5&year=2024&professionalId=doc-1", nil)
		w := httptest.NewRecorder()

		handler.GetMonthlyView(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		calendar.AssertExpectations(t)
	})

	t.Run("requires month and year", func(t *testing.T) {
		handler, _, _, _ := newScheduleHandler()

		req := httptest.NewRequest("GET", "/api/schedule/monthly?month=5", nil)
		w := httptest.NewRecorder()

		handler.GetMonthlyView(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps validation error to 400", func(t *testing.T) {
		handler, calendar, _, _ := newScheduleHandler()

		calendar.On("BuildMonthlyView", mock.Anything, 12, 2024, "").
			Return(nil, apperrors.NewValidationError("month must be between 0 and 11"))

		req := httptest.NewRequest("GET", "/api/schedule/monthly?month=12&year=2024", nil)
		w := httptest.NewRecorder()

		handler.GetMonthlyView(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestScheduleHandler_AssignShifts(t *testing.T) {
	t.Run("creates shifts", func(t *testing.T) {
		handler, _, shifts, _ := newScheduleHandler()

		created := []entities.Shift{{ID: "shift-1", ProfessionalID: "doc-1"}}
		shifts.On("AssignShifts", mock.Anything, "doc-1", mock.Anything, mock.Anything).Return(created, nil)

		payload := map[string]interface{}{
			"professional_id": "doc-1",
			"dates":           []string{"2024-06-10T00:00:00Z"},
			"time_slots": []map[string]interface{}{
				{"start_time": "08:00", "end_time": "12:00"},
			},
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/shifts/assign", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.AssignShifts(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		shifts.AssertExpectations(t)
	})

	t.Run("returns bad request for invalid payload", func(t *testing.T) {
		handler, _, _, _ := newScheduleHandler()

		req := httptest.NewRequest("POST", "/api/shifts/assign", bytes.NewBufferString("invalid-json"))
		w := httptest.NewRecorder()

		handler.AssignShifts(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps unknown professional to 404", func(t *testing.T) {
		handler, _, shifts, _ := newScheduleHandler()

		shifts.On("AssignShifts", mock.Anything, "ghost", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewNotFoundError("professional ghost not found"))

		payload := map[string]interface{}{
			"professional_id": "ghost",
			"dates":           []string{"2024-06-10T00:00:00Z"},
			"time_slots":      []map[string]interface{}{{"start_time": "08:00", "end_time": "12:00"}},
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/shifts/assign", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.AssignShifts(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestScheduleHandler_GetShift(t *testing.T) {
	t.Run("returns the shift", func(t *testing.T) {
		handler, _, shifts, _ := newScheduleHandler()

		shifts.On("GetShift", mock.Anything, "shift-1").
			Return(&entities.Shift{ID: "shift-1", ProfessionalID: "doc-1"}, nil)

		req := httptest.NewRequest("GET", "/api/shifts/shift-1", nil)
		req.SetPathValue("id", "shift-1")
		w := httptest.NewRecorder()

		handler.GetShift(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got entities.Shift
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "shift-1", got.ID)
	})

	t.Run("maps missing shift to 404", func(t *testing.T) {
		handler, _, shifts, _ := newScheduleHandler()

		shifts.On("GetShift", mock.Anything, "ghost").
			Return(nil, apperrors.NewNotFoundError("shift ghost not found"))

		req := httptest.NewRequest("GET", "/api/shifts/ghost", nil)
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()

		handler.GetShift(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestScheduleHandler_ReassignShift(t *testing.T) {
	t.Run("reassigns a shift", func(t *testing.T) {
		handler, _, _, reassign := newScheduleHandler()

		created := &entities.Shift{ID: "shift-2", ProfessionalID: "doc-2", ReassignedFrom: "doc-1"}
		reassign.On("ReassignShift", mock.Anything, mock.MatchedBy(func(in services.ReassignShiftInput) bool {
			return in.ShiftID == "shift-1" && in.NewProfessionalID == "doc-2" && !in.IsPartial
		})).Return(created, nil)

		payload := map[string]interface{}{
			"new_professional_id": "doc-2",
			"reason":              "Vacation cover",
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/shifts/shift-1/reassign", bytes.NewBuffer(body))
		req.SetPathValue("id", "shift-1")
		w := httptest.NewRecorder()

		handler.ReassignShift(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var got entities.Shift
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "doc-2", got.ProfessionalID)
		reassign.AssertExpectations(t)
	})

	t.Run("passes partial slot selection through", func(t *testing.T) {
		handler, _, _, reassign := newScheduleHandler()

		created := &entities.Shift{ID: "shift-3", IsPartialReassignment: true}
		reassign.On("ReassignShift", mock.Anything, mock.MatchedBy(func(in services.ReassignShiftInput) bool {
			return in.IsPartial && len(in.PartialTimeSlotIDs) == 1 && in.PartialTimeSlotIDs[0] == "slot-1"
		})).Return(created, nil)

		payload := map[string]interface{}{
			"new_professional_id":   "doc-2",
			"reason":                "Afternoon handover",
			"is_partial":            true,
			"partial_time_slot_ids": []string{"slot-1"},
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/shifts/shift-1/reassign", bytes.NewBuffer(body))
		req.SetPathValue("id", "shift-1")
		w := httptest.NewRecorder()

		handler.ReassignShift(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		reassign.AssertExpectations(t)
	})

	t.Run("maps missing shift to 404", func(t *testing.T) {
		handler, _, _, reassign := newScheduleHandler()

		reassign.On("ReassignShift", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewNotFoundError("shift ghost not found"))

		body, _ := json.Marshal(map[string]interface{}{"new_professional_id": "doc-2"})
		req := httptest.NewRequest("POST", "/api/shifts/ghost/reassign", bytes.NewBuffer(body))
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()

		handler.ReassignShift(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestScheduleHandler_ListReassignments(t *testing.T) {
	handler, _, _, reassign := newScheduleHandler()

	records := []entities.ShiftReassignment{{ID: "re-1"}, {ID: "re-2"}}
	reassign.On("ListReassignments", mock.Anything).Return(records, nil)

	req := httptest.NewRequest("GET", "/api/reassignments", nil)
	w := httptest.NewRecorder()

	handler.ListReassignments(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reassignments []entities.ShiftReassignment `json:"reassignments"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Reassignments, 2)
}
