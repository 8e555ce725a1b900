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

// MockAppointmentService mocks the appointment operations
type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) ListAppointments(ctx context.Context, filter services.AppointmentFilter) ([]entities.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Appointment), args.Error(1)
}

func (m *MockAppointmentService) BookAppointment(ctx context.Context, appt *entities.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentService) CancelAppointments(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentService) ReassignAppointments(ctx context.Context, ids []string, newDate time.Time, newTime string, newProfessionalID string) (int, error) {
	args := m.Called(ctx, ids, newDate, newTime, newProfessionalID)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentService) SelectAllForProfessional(ctx context.Context, professionalID string) ([]string, error) {
	args := m.Called(ctx, professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestAppointmentHandler_ListAppointments(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		mockService.On("ListAppointments", mock.Anything, mock.MatchedBy(func(f services.AppointmentFilter) bool {
			return f.ProfessionalID == "doc-1" && f.Status == entities.AppointmentStatusScheduled && f.Search == "vargas"
		})).Return([]entities.Appointment{{ID: "appt-1"}}, nil)

		req := httptest.NewRequest("GET", "/api/appointments?professionalId=doc-1&status=scheduled&search=vargas", nil)
		w := httptest.NewRecorder()

		handler.ListAppointments(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects malformed date filter", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		req := httptest.NewRequest("GET", "/api/appointments?from=yesterday", nil)
		w := httptest.NewRecorder()

		handler.ListAppointments(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "ListAppointments")
	})
}

func TestAppointmentHandler_BookAppointment(t *testing.T) {
	t.Run("books an appointment", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		mockService.On("BookAppointment", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return a.PatientName == "Ana Oliveira" && a.ProfessionalID == "doc-1"
		})).Return(nil)

		payload := map[string]interface{}{
			"patient_id":       "pat-1",
			"patient_name":     "Ana Oliveira",
			"professional_id":  "doc-1",
			"date":             "2024-06-10T00:00:00Z",
			"time":             "09:00",
			"duration_minutes": 30,
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns bad request for invalid payload", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBufferString("invalid-json"))
		w := httptest.NewRecorder()

		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAppointmentHandler_BulkCancel(t *testing.T) {
	t.Run("returns cancelled count", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		mockService.On("CancelAppointments", mock.Anything, []string{"a1", "a2", "ghost"}).Return(2, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"appointment_ids": []string{"a1", "a2", "ghost"},
		})
		req := httptest.NewRequest("POST", "/api/appointments/bulk-cancel", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.BulkCancel(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]int
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp["cancelled"])
		mockService.AssertExpectations(t)
	})

	t.Run("maps storage failure to 502", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		mockService.On("CancelAppointments", mock.Anything, mock.Anything).
			Return(0, apperrors.NewStorageError("failed to read appointments", assert.AnError))

		body, _ := json.Marshal(map[string]interface{}{"appointment_ids": []string{"a1"}})
		req := httptest.NewRequest("POST", "/api/appointments/bulk-cancel", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.BulkCancel(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestAppointmentHandler_BulkReassign(t *testing.T) {
	t.Run("reschedules selected appointments", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		newDate := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		mockService.On("ReassignAppointments", mock.Anything, []string{"a1", "a2"}, newDate, "10:00", "doc-2").Return(2, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"appointment_ids":     []string{"a1", "a2"},
			"new_date":            "2024-07-01T00:00:00Z",
			"new_time":            "10:00",
			"new_professional_id": "doc-2",
		})
		req := httptest.NewRequest("POST", "/api/appointments/bulk-reassign", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.BulkReassign(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]int
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp["rescheduled"])
		mockService.AssertExpectations(t)
	})

	t.Run("maps unknown target professional to 404", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		mockService.On("ReassignAppointments", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(0, apperrors.NewNotFoundError("professional ghost not found"))

		body, _ := json.Marshal(map[string]interface{}{
			"appointment_ids":     []string{"a1"},
			"new_date":            "2024-07-01T00:00:00Z",
			"new_time":            "10:00",
			"new_professional_id": "ghost",
		})
		req := httptest.NewRequest("POST", "/api/appointments/bulk-reassign", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.BulkReassign(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAppointmentHandler_SelectForProfessional(t *testing.T) {
	t.Run("returns open appointment ids", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		mockService.On("SelectAllForProfessional", mock.Anything, "doc-1").Return([]string{"a1", "a3"}, nil)

		req := httptest.NewRequest("GET", "/api/appointments/select?professionalId=doc-1", nil)
		w := httptest.NewRecorder()

		handler.SelectForProfessional(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			AppointmentIDs []string `json:"appointment_ids"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"a1", "a3"}, resp.AppointmentIDs)
	})

	t.Run("requires professionalId", func(t *testing.T) {
		mockService := new(MockAppointmentService)
		handler := handlers.NewAppointmentHandler(mockService)

		req := httptest.NewRequest("GET", "/api/appointments/select", nil)
		w := httptest.NewRecorder()

		handler.SelectForProfessional(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "SelectAllForProfessional")
	})
}
