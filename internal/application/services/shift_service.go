package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/shift-scheduler/internal/domain/entities"
	"github.com/clinova/shift-scheduler/internal/infrastructure/observability"
	"github.com/clinova/shift-scheduler/internal/storage"
	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

// EventPublisher publishes schedule-change events. A nil publisher disables
// event fan-out; mutations never fail because of it.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, event *entities.ScheduleEvent) error
}

// ShiftService creates shifts for professionals: ad-hoc batches over a date
// list and recurring monthly generation from a weekday pattern. It does not
// deduplicate against existing shifts; duplicate-prevention is a caller
// policy, so calling the generator twice produces duplicate shifts.
type ShiftService struct {
	store     storage.Store
	directory *DirectoryService
	publisher EventPublisher
	channel   string
}

// NewShiftService creates a new shift assignment service
func NewShiftService(store storage.Store, directory *DirectoryService, publisher EventPublisher, channel string) *ShiftService {
	return &ShiftService{
		store:     store,
		directory: directory,
		publisher: publisher,
		channel:   channel,
	}
}

// AssignShifts creates one assigned shift per date for the professional,
// copying the supplied slot shapes under fresh slot ids, and appends the
// whole batch to the shift collection in a single write.
func (s *ShiftService) AssignShifts(ctx context.Context, professionalID string, dates []time.Time, slots []entities.TimeSlot) ([]entities.Shift, error) {
	if len(dates) == 0 {
		return nil, apperrors.NewValidationError("at least one date is required")
	}
	if len(slots) == 0 {
		return nil, apperrors.NewValidationError("at least one time slot is required")
	}
	if err := validateSlots(slots); err != nil {
		return nil, err
	}

	professional, err := s.directory.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	existing, err := storage.Load[entities.Shift](ctx, s.store, storage.CollectionShifts)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := make([]entities.Shift, 0, len(dates))
	for _, date := range dates {
		shift := entities.Shift{
			ID:               uuid.New().String(),
			ProfessionalID:   professional.ID,
			ProfessionalName: professional.Name,
			Date:             entities.DateOnly(date),
			TimeSlots:        copySlots(slots),
			Status:           entities.ShiftStatusAssigned,
			CreatedAt:        now,
		}
		created = append(created, shift)
	}

	if err := storage.Save(ctx, s.store, storage.CollectionShifts, append(existing, created...)); err != nil {
		return nil, err
	}

	observability.GetLogger().Info().
		Str("professional_id", professional.ID).
		Int("shifts", len(created)).
		Msg("assigned shifts")

	s.publish(ctx, func(event *entities.ScheduleEvent) {
		event.EventType = entities.ScheduleEventTypeShiftsAssigned
		event.ProfessionalID = professional.ID
	})

	return created, nil
}

// GenerateMonthlyShifts seeds a professional's recurring availability: one
// shift on every day of the month whose weekday is in workWeekdays. Month is
// 0-indexed. Defaults: Monday through Friday, standard two-block day.
func (s *ShiftService) GenerateMonthlyShifts(ctx context.Context, professionalID string, month, year int, workWeekdays []time.Weekday, slots []entities.TimeSlot) ([]entities.Shift, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	if len(workWeekdays) == 0 {
		workWeekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	}
	if len(slots) == 0 {
		slots = entities.StandardDaySlots()
	}

	working := make(map[time.Weekday]bool, len(workWeekdays))
	for _, wd := range workWeekdays {
		working[wd] = true
	}

	firstDay := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	for day := firstDay; day.Month() == firstDay.Month(); day = day.AddDate(0, 0, 1) {
		if working[day.Weekday()] {
			dates = append(dates, day)
		}
	}
	if len(dates) == 0 {
		return nil, apperrors.NewValidationError("no day in the month matches the requested weekdays")
	}

	return s.AssignShifts(ctx, professionalID, dates, slots)
}

// GetShift resolves a single shift by id
func (s *ShiftService) GetShift(ctx context.Context, id string) (*entities.Shift, error) {
	shifts, err := storage.Load[entities.Shift](ctx, s.store, storage.CollectionShifts)
	if err != nil {
		return nil, err
	}
	for i := range shifts {
		if shifts[i].ID == id {
			return &shifts[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("shift " + id + " not found")
}

func (s *ShiftService) publish(ctx context.Context, fill func(*entities.ScheduleEvent)) {
	if s.publisher == nil {
		return
	}
	event := entities.NewScheduleEvent("")
	fill(event)
	if err := s.publisher.Publish(ctx, s.channel, event); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("failed to publish schedule event")
	}
}

// copySlots duplicates slot shapes under fresh ids so slots are never shared
// by reference across shifts. Durations are recomputed from the bounds so a
// caller-supplied mismatch never persists.
func copySlots(slots []entities.TimeSlot) []entities.TimeSlot {
	copies := make([]entities.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		dup := slot.Copy()
		start, startErr := entities.ParseClock(dup.StartTime)
		end, endErr := entities.ParseClock(dup.EndTime)
		if startErr == nil && endErr == nil {
			dup.DurationMinutes = end - start
		}
		copies = append(copies, dup)
	}
	return copies
}

// validateSlots enforces the slot invariants on caller-supplied slots:
// well-formed bounds, start strictly before end, and no pairwise overlap.
// Start before end must be checked here because Overlaps is vacuously false
// for an inverted interval.
func validateSlots(slots []entities.TimeSlot) error {
	for i := range slots {
		start, err := entities.ParseClock(slots[i].StartTime)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		end, err := entities.ParseClock(slots[i].EndTime)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if start >= end {
			return apperrors.NewValidationError(fmt.Sprintf(
				"time slot start %s must be before end %s", slots[i].StartTime, slots[i].EndTime))
		}
		for j := i + 1; j < len(slots); j++ {
			if slots[i].Overlaps(slots[j]) {
				return apperrors.NewValidationError("time slots must not overlap")
			}
		}
	}
	return nil
}
