package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clinova/shift-scheduler/internal/domain/entities"
	"github.com/clinova/shift-scheduler/internal/storage"
	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

// CalendarService builds derived, read-only projections over the shift
// collection: the monthly calendar grid and per-month statistics. Neither is
// ever persisted; persisting them would let them drift from the shift records.
type CalendarService struct {
	store storage.Store
}

// NewCalendarService creates a new calendar service
func NewCalendarService(store storage.Store) *CalendarService {
	return &CalendarService{store: store}
}

// BuildMonthlyView builds the calendar grid for a month. Month is 0-indexed
// (January = 0). The grid extends backward to the Monday on or before the 1st
// and forward to the Sunday on or after the last day, so every row holds
// exactly 7 days; adjacent-month filler days carry IsCurrentMonth=false.
// An empty professionalID includes every professional's shifts.
func (s *CalendarService) BuildMonthlyView(ctx context.Context, month, year int, professionalID string) (*entities.MonthlyShiftView, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	firstDay := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)

	gridStart := firstDay.AddDate(0, 0, -daysSinceMonday(firstDay))
	gridEnd := lastDay.AddDate(0, 0, daysUntilSunday(lastDay))

	shifts, err := storage.Load[entities.Shift](ctx, s.store, storage.CollectionShifts)
	if err != nil {
		return nil, err
	}

	view := &entities.MonthlyShiftView{
		Month: month,
		Year:  year,
	}

	weekNumber := 1
	for weekStart := gridStart; !weekStart.After(gridEnd); weekStart = weekStart.AddDate(0, 0, 7) {
		week := entities.WeekView{
			Number:    weekNumber,
			StartDate: weekStart,
			EndDate:   weekStart.AddDate(0, 0, 6),
			Days:      make([]entities.DayView, 0, 7),
		}
		for i := 0; i < 7; i++ {
			day := weekStart.AddDate(0, 0, i)
			bucket := entities.DayView{
				Date:           day,
				IsCurrentMonth: day.Month() == firstDay.Month() && day.Year() == year,
				Shifts:         []entities.Shift{},
			}
			for _, shift := range shifts {
				if professionalID != "" && shift.ProfessionalID != professionalID {
					continue
				}
				if shift.OnDay(day) {
					bucket.Shifts = append(bucket.Shifts, shift)
				}
			}
			week.Days = append(week.Days, bucket)
		}
		view.Weeks = append(view.Weeks, week)
		weekNumber++
	}

	return view, nil
}

// MonthStatistics aggregates shift counts and per-professional utilization
// (assigned over total shifts) for a month. Month is 0-indexed.
func (s *CalendarService) MonthStatistics(ctx context.Context, month, year int) (*entities.ShiftStatistics, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	shifts, err := storage.Load[entities.Shift](ctx, s.store, storage.CollectionShifts)
	if err != nil {
		return nil, err
	}

	stats := &entities.ShiftStatistics{
		Month: month,
		Year:  year,
	}
	type tally struct {
		name     string
		total    int
		assigned int
	}
	perProfessional := make(map[string]*tally)

	for _, shift := range shifts {
		if int(shift.Date.UTC().Month())-1 != month || shift.Date.UTC().Year() != year {
			continue
		}

		stats.Total++
		t, ok := perProfessional[shift.ProfessionalID]
		if !ok {
			t = &tally{name: shift.ProfessionalName}
			perProfessional[shift.ProfessionalID] = t
		}
		t.total++

		switch shift.Status {
		case entities.ShiftStatusAssigned:
			stats.Assigned++
			t.assigned++
		case entities.ShiftStatusAvailable:
			stats.Available++
		case entities.ShiftStatusUnavailableLeave, entities.ShiftStatusUnavailableVacation:
			stats.Unavailable++
		case entities.ShiftStatusReassigned:
			stats.Reassigned++
		}
	}

	for id, t := range perProfessional {
		utilization := 0.0
		if t.total > 0 {
			utilization = float64(t.assigned) / float64(t.total) * 100
		}
		stats.Utilization = append(stats.Utilization, entities.ProfessionalUtilization{
			ProfessionalID:   id,
			ProfessionalName: t.name,
			TotalShifts:      t.total,
			AssignedShifts:   t.assigned,
			Utilization:      utilization,
		})
	}
	sort.Slice(stats.Utilization, func(i, j int) bool {
		return stats.Utilization[i].ProfessionalID < stats.Utilization[j].ProfessionalID
	})

	return stats, nil
}

// validateMonth enforces the engine-wide 0-indexed month convention
func validateMonth(month int) error {
	if month < 0 || month > 11 {
		return apperrors.NewValidationError(fmt.Sprintf("month must be 0-11 (January = 0), got %d", month))
	}
	return nil
}

// daysSinceMonday returns how many days separate t from the Monday on or
// before it.
func daysSinceMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// daysUntilSunday returns how many days separate t from the Sunday on or
// after it.
func daysUntilSunday(t time.Time) int {
	return (7 - int(t.Weekday())) % 7
}
