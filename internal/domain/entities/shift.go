package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ShiftStatus represents the lifecycle status of a shift
type ShiftStatus string

const (
	ShiftStatusAvailable           ShiftStatus = "available"
	ShiftStatusAssigned            ShiftStatus = "assigned"
	ShiftStatusUnavailableLeave    ShiftStatus = "unavailable_leave"
	ShiftStatusUnavailableVacation ShiftStatus = "unavailable_vacation"
	ShiftStatusReassigned          ShiftStatus = "reassigned"
)

// TimeSlot is a contiguous interval within a day. Slot ids are scoped to the
// owning shift; copying slots between shifts always mints fresh ids.
type TimeSlot struct {
	ID              string `json:"id"`
	StartTime       string `json:"start_time"` // "HH:MM"
	EndTime         string `json:"end_time"`   // "HH:MM"
	DurationMinutes int    `json:"duration_minutes"`
}

// NewTimeSlot builds a slot from "HH:MM" bounds, computing the duration.
// Start must be strictly before end.
func NewTimeSlot(start, end string) (TimeSlot, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return TimeSlot{}, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return TimeSlot{}, err
	}
	if startMin >= endMin {
		return TimeSlot{}, fmt.Errorf("slot start %s must be before end %s", start, end)
	}
	return TimeSlot{
		ID:              uuid.New().String(),
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: endMin - startMin,
	}, nil
}

// Copy returns the same interval under a fresh id
func (s TimeSlot) Copy() TimeSlot {
	s.ID = uuid.New().String()
	return s
}

// Overlaps reports whether two slots share any minute of the day
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	aStart, err := ParseClock(s.StartTime)
	if err != nil {
		return false
	}
	aEnd, err := ParseClock(s.EndTime)
	if err != nil {
		return false
	}
	bStart, err := ParseClock(other.StartTime)
	if err != nil {
		return false
	}
	bEnd, err := ParseClock(other.EndTime)
	if err != nil {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}

// ParseClock converts "HH:MM" to minutes since midnight. The string must be
// exactly five characters; trailing garbage is rejected rather than ignored.
func ParseClock(s string) (int, error) {
	if len(s) != 5 {
		return 0, fmt.Errorf("invalid time string: %q", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time string %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// StandardDaySlots returns the default two-block working day used by the
// monthly generator: 08:00-12:00 and 14:00-18:00.
func StandardDaySlots() []TimeSlot {
	morning, _ := NewTimeSlot("08:00", "12:00")
	afternoon, _ := NewTimeSlot("14:00", "18:00")
	return []TimeSlot{morning, afternoon}
}

// Shift is the unit of schedulable work for one professional on one calendar
// day. The reassignment lineage fields record either direction of a move:
// the origin shift gets ReassignedTo, the spawned copy gets ReassignedFrom
// plus OriginalShiftID.
type Shift struct {
	ID                    string      `json:"id"`
	ProfessionalID        string      `json:"professional_id"`
	ProfessionalName      string      `json:"professional_name"`
	Date                  time.Time   `json:"date"`
	TimeSlots             []TimeSlot  `json:"time_slots"`
	Status                ShiftStatus `json:"status"`
	Notes                 string      `json:"notes,omitempty"`
	OriginalShiftID       string      `json:"original_shift_id,omitempty"`
	ReassignedFrom        string      `json:"reassigned_from,omitempty"`
	ReassignedTo          string      `json:"reassigned_to,omitempty"`
	IsPartialReassignment bool        `json:"is_partial_reassignment,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             *time.Time  `json:"updated_at,omitempty"`
}

// OnDay reports whether the shift falls on the given calendar day,
// ignoring time of day.
func (s *Shift) OnDay(day time.Time) bool {
	return SameDay(s.Date, day)
}

// SlotIDs returns the ids of the shift's current time slots in order
func (s *Shift) SlotIDs() []string {
	ids := make([]string, 0, len(s.TimeSlots))
	for _, slot := range s.TimeSlots {
		ids = append(ids, slot.ID)
	}
	return ids
}

// HasSlot reports whether the shift currently holds the given slot id
func (s *Shift) HasSlot(slotID string) bool {
	for _, slot := range s.TimeSlots {
		if slot.ID == slotID {
			return true
		}
	}
	return false
}

// SameDay compares two timestamps by calendar day in UTC
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly truncates a timestamp to midnight UTC of its calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ShiftReassignment is the append-only audit record written on every
// reassignment. It is never mutated or deleted.
type ShiftReassignment struct {
	ID                 string    `json:"id"`
	OriginalShiftID    string    `json:"original_shift_id"`
	FromProfessionalID string    `json:"from_professional_id"`
	ToProfessionalID   string    `json:"to_professional_id"`
	ReassignmentDate   time.Time `json:"reassignment_date"`
	Reason             string    `json:"reason"`
	IsPartial          bool      `json:"is_partial"`
	PartialTimeSlotIDs []string  `json:"partial_time_slot_ids,omitempty"`
	CreatedBy          string    `json:"created_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
