package entities

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled   AppointmentStatus = "scheduled"
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

// Appointment is a patient-facing booking. It is independent of Shift: shifts
// model professional availability, appointments model patient bookings, and
// the two are only linked through the shared reassignment verbs.
// Patient and professional names are denormalized for display; the ids remain
// the source of truth.
type Appointment struct {
	ID               string            `json:"id"`
	PatientID        string            `json:"patient_id"`
	PatientName      string            `json:"patient_name"`
	ProfessionalID   string            `json:"professional_id"`
	ProfessionalName string            `json:"professional_name"`
	Date             time.Time         `json:"date"`
	Time             string            `json:"time"` // "HH:MM"
	DurationMinutes  int               `json:"duration_minutes"`
	Reason           string            `json:"reason"`
	Status           AppointmentStatus `json:"status"`
	Notes            string            `json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        *time.Time        `json:"updated_at,omitempty"`
}

// IsOpen reports whether the appointment still occupies the professional's
// calendar (scheduled or pending).
func (a *Appointment) IsOpen() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusPending
}
