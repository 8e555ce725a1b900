package entities

import (
	"time"
)

// DayView is one bucket of the monthly grid. IsCurrentMonth marks the
// leading/trailing filler days of adjacent months.
type DayView struct {
	Date           time.Time `json:"date"`
	IsCurrentMonth bool      `json:"is_current_month"`
	Shifts         []Shift   `json:"shifts"`
}

// WeekView is one 7-day row of the monthly grid, numbered from 1
type WeekView struct {
	Number    int       `json:"number"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      []DayView `json:"days"`
}

// MonthlyShiftView is a derived, read-only projection of the shift collection
// into a calendar grid. It holds no identity of its own and is never
// persisted: it is rebuilt from the shift records on every request.
// Month is 0-indexed (January = 0).
type MonthlyShiftView struct {
	Month int        `json:"month"`
	Year  int        `json:"year"`
	Weeks []WeekView `json:"weeks"`
}

// ProfessionalUtilization is the per-professional slice of the monthly
// statistics: assigned shifts over total shifts, as a percentage.
type ProfessionalUtilization struct {
	ProfessionalID   string  `json:"professional_id"`
	ProfessionalName string  `json:"professional_name"`
	TotalShifts      int     `json:"total_shifts"`
	AssignedShifts   int     `json:"assigned_shifts"`
	Utilization      float64 `json:"utilization"`
}

// ShiftStatistics is a derived aggregate over one month's shifts
type ShiftStatistics struct {
	Month       int                       `json:"month"`
	Year        int                       `json:"year"`
	Total       int                       `json:"total"`
	Assigned    int                       `json:"assigned"`
	Available   int                       `json:"available"`
	Unavailable int                       `json:"unavailable"`
	Reassigned  int                       `json:"reassigned"`
	Utilization []ProfessionalUtilization `json:"utilization"`
}
