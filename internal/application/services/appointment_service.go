package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/shift-scheduler/internal/domain/entities"
	"github.com/clinova/shift-scheduler/internal/infrastructure/observability"
	"github.com/clinova/shift-scheduler/internal/storage"
	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

// AppointmentFilter narrows ListAppointments. Search matches patient name and
// reason, case-insensitively.
type AppointmentFilter struct {
	ProfessionalID string
	Status         entities.AppointmentStatus
	From           *time.Time
	To             *time.Time
	Search         string
}

// AppointmentService manages patient-facing bookings and the bulk operations
// used when a professional becomes unavailable. Bulk operations skip ids
// missing from the store rather than aborting the batch: a stale selection
// must not block the rest.
//
// Appointments are deliberately decoupled from shifts: bulk rescheduling does
// not verify that the target professional has an available shift at the new
// date and time.
type AppointmentService struct {
	store     storage.Store
	directory *DirectoryService
	publisher EventPublisher
	channel   string
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(store storage.Store, directory *DirectoryService, publisher EventPublisher, channel string) *AppointmentService {
	return &AppointmentService{
		store:     store,
		directory: directory,
		publisher: publisher,
		channel:   channel,
	}
}

// ListAppointments returns appointments matching the filter
func (s *AppointmentService) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]entities.Appointment, error) {
	appointments, err := storage.Load[entities.Appointment](ctx, s.store, storage.CollectionAppointments)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]entities.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if filter.ProfessionalID != "" && appt.ProfessionalID != filter.ProfessionalID {
			continue
		}
		if filter.Status != "" && appt.Status != filter.Status {
			continue
		}
		// the stored date may carry a time component when written by another
		// screen of the clinic app; ranges compare calendar days only
		day := entities.DateOnly(appt.Date)
		if filter.From != nil && day.Before(entities.DateOnly(*filter.From)) {
			continue
		}
		if filter.To != nil && day.After(entities.DateOnly(*filter.To)) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(appt.PatientName), search) &&
			!strings.Contains(strings.ToLower(appt.Reason), search) {
			continue
		}
		matched = append(matched, appt)
	}
	return matched, nil
}

// BookAppointment creates a single scheduled appointment, denormalizing the
// professional's name from the directory.
func (s *AppointmentService) BookAppointment(ctx context.Context, appt *entities.Appointment) error {
	if appt.PatientID == "" || appt.PatientName == "" {
		return apperrors.NewValidationError("patient id and name are required")
	}
	if appt.Date.IsZero() {
		return apperrors.NewValidationError("appointment date is required")
	}
	if _, err := entities.ParseClock(appt.Time); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	professional, err := s.directory.GetProfessional(ctx, appt.ProfessionalID)
	if err != nil {
		return err
	}

	appointments, err := storage.Load[entities.Appointment](ctx, s.store, storage.CollectionAppointments)
	if err != nil {
		return err
	}

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	appt.ProfessionalName = professional.Name
	appt.Date = entities.DateOnly(appt.Date)
	appt.Status = entities.AppointmentStatusScheduled
	appt.CreatedAt = time.Now().UTC()

	return storage.Save(ctx, s.store, storage.CollectionAppointments, append(appointments, *appt))
}

// CancelAppointments transitions each selected appointment to cancelled and
// returns the number updated. Unknown ids are skipped; an empty selection is
// a no-op. Shift records are never touched.
func (s *AppointmentService) CancelAppointments(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	appointments, err := storage.Load[entities.Appointment](ctx, s.store, storage.CollectionAppointments)
	if err != nil {
		return 0, err
	}

	selected := idSet(ids)
	now := time.Now().UTC()
	updated := 0
	cancelled := make([]string, 0, len(ids))
	for i := range appointments {
		if !selected[appointments[i].ID] {
			continue
		}
		appointments[i].Status = entities.AppointmentStatusCancelled
		appointments[i].UpdatedAt = &now
		updated++
		cancelled = append(cancelled, appointments[i].ID)
	}
	if updated == 0 {
		return 0, nil
	}

	if err := storage.Save(ctx, s.store, storage.CollectionAppointments, appointments); err != nil {
		return 0, err
	}

	s.publishBulk(ctx, entities.ScheduleEventTypeAppointmentsCancelled, "", cancelled)
	return updated, nil
}

// ReassignAppointments bulk-reschedules the selected appointments to a new
// date and time, optionally moving them to another professional, and returns
// the number updated. The target professional is resolved before any write;
// unknown appointment ids are skipped.
func (s *AppointmentService) ReassignAppointments(ctx context.Context, ids []string, newDate time.Time, newTime string, newProfessionalID string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if newDate.IsZero() {
		return 0, apperrors.NewValidationError("new date is required")
	}
	if _, err := entities.ParseClock(newTime); err != nil {
		return 0, apperrors.NewValidationError(err.Error())
	}

	var target *entities.Professional
	if newProfessionalID != "" {
		professional, err := s.directory.GetProfessional(ctx, newProfessionalID)
		if err != nil {
			return 0, err
		}
		target = professional
	}

	appointments, err := storage.Load[entities.Appointment](ctx, s.store, storage.CollectionAppointments)
	if err != nil {
		return 0, err
	}

	selected := idSet(ids)
	now := time.Now().UTC()
	day := entities.DateOnly(newDate)
	updated := 0
	moved := make([]string, 0, len(ids))
	for i := range appointments {
		if !selected[appointments[i].ID] {
			continue
		}
		appointments[i].Date = day
		appointments[i].Time = newTime
		if target != nil {
			appointments[i].ProfessionalID = target.ID
			appointments[i].ProfessionalName = target.Name
		}
		appointments[i].Status = entities.AppointmentStatusRescheduled
		appointments[i].UpdatedAt = &now
		updated++
		moved = append(moved, appointments[i].ID)
	}
	if updated == 0 {
		return 0, nil
	}

	if err := storage.Save(ctx, s.store, storage.CollectionAppointments, appointments); err != nil {
		return 0, err
	}

	professionalID := ""
	if target != nil {
		professionalID = target.ID
	}
	s.publishBulk(ctx, entities.ScheduleEventTypeAppointmentsRescheduled, professionalID, moved)
	return updated, nil
}

// SelectAllForProfessional returns the ids of all scheduled or pending
// appointments for a professional, used to pre-populate a bulk selection when
// the professional becomes unavailable.
func (s *AppointmentService) SelectAllForProfessional(ctx context.Context, professionalID string) ([]string, error) {
	appointments, err := storage.Load[entities.Appointment](ctx, s.store, storage.CollectionAppointments)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	for _, appt := range appointments {
		if appt.ProfessionalID == professionalID && appt.IsOpen() {
			ids = append(ids, appt.ID)
		}
	}
	return ids, nil
}

func (s *AppointmentService) publishBulk(ctx context.Context, eventType entities.ScheduleEventType, professionalID string, appointmentIDs []string) {
	if s.publisher == nil {
		return
	}
	event := entities.NewScheduleEvent(eventType)
	event.ProfessionalID = professionalID
	event.AppointmentIDs = appointmentIDs
	if err := s.publisher.Publish(ctx, s.channel, event); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("failed to publish schedule event")
	}
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
