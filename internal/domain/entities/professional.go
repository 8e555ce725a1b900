package entities

import (
	"time"
)

// ProfessionalStatus represents the availability status of a professional
type ProfessionalStatus string

const (
	ProfessionalStatusActive   ProfessionalStatus = "active"
	ProfessionalStatusVacation ProfessionalStatus = "vacation"
	ProfessionalStatusLeave    ProfessionalStatus = "leave"
	ProfessionalStatusInactive ProfessionalStatus = "inactive"
)

// DaySchedule is one weekday entry of a professional's weekly schedule template
type DaySchedule struct {
	Working   bool   `json:"working"`
	StartTime string `json:"start_time,omitempty"` // "HH:MM"
	EndTime   string `json:"end_time,omitempty"`   // "HH:MM"
}

// WeeklySchedule maps weekdays (time.Weekday, Sunday = 0) to working hours
type WeeklySchedule map[time.Weekday]DaySchedule

// Professional represents a clinic professional as seen by the scheduling core.
// The directory may project it down from a richer Doctor record.
type Professional struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Specialty    string             `json:"specialty"`
	Email        string             `json:"email,omitempty"`
	Phone        string             `json:"phone,omitempty"`
	Status       ProfessionalStatus `json:"status"`
	ProfileImage string             `json:"profile_image,omitempty"`
	Schedule     WeeklySchedule     `json:"schedule,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// IsActive reports whether the professional can receive new shifts or appointments
func (p *Professional) IsActive() bool {
	return p.Status == ProfessionalStatusActive
}

// Doctor is the richer directory collaborator record. The scheduling core never
// writes doctors; it only projects them into Professionals when the doctors
// collection exists.
type Doctor struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Specialty       string    `json:"specialty"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	LicenseNumber   string    `json:"license_number,omitempty"`
	YearsExperience int       `json:"years_experience,omitempty"`
	ProfileImage    string    `json:"profile_image,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToProfessional projects a Doctor into the narrower Professional shape
func (d *Doctor) ToProfessional() Professional {
	status := ProfessionalStatusActive
	if !d.IsActive {
		status = ProfessionalStatusInactive
	}
	return Professional{
		ID:           d.ID,
		Name:         d.FirstName + " " + d.LastName,
		Specialty:    d.Specialty,
		Email:        d.Email,
		Phone:        d.Phone,
		Status:       status,
		ProfileImage: d.ProfileImage,
		CreatedAt:    d.CreatedAt,
	}
}
