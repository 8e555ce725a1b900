package entities

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleEventType represents the type of schedule change event
type ScheduleEventType string

const (
	ScheduleEventTypeShiftsAssigned          ScheduleEventType = "shifts_assigned"
	ScheduleEventTypeShiftReassigned         ScheduleEventType = "shift_reassigned"
	ScheduleEventTypeAppointmentsCancelled   ScheduleEventType = "appointments_cancelled"
	ScheduleEventTypeAppointmentsRescheduled ScheduleEventType = "appointments_rescheduled"
)

// ScheduleEvent is published on the event bus after a schedule mutation so
// interested listeners (notification fan-out, UI refresh) can react.
type ScheduleEvent struct {
	ID             string            `json:"id"`
	EventType      ScheduleEventType `json:"event_type"`
	ProfessionalID string            `json:"professional_id,omitempty"`
	ShiftID        string            `json:"shift_id,omitempty"`
	AppointmentIDs []string          `json:"appointment_ids,omitempty"`
	Detail         string            `json:"detail,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}

// NewScheduleEvent creates a schedule event stamped with a fresh id
func NewScheduleEvent(eventType ScheduleEventType) *ScheduleEvent {
	return &ScheduleEvent{
		ID:        uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	}
}
