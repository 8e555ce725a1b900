package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinova/shift-scheduler/internal/domain/entities"
)

// EventSource delivers schedule-change events published elsewhere
type EventSource interface {
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ScheduleEvent, error)
}

// NotificationService listens for schedule changes and surfaces them as
// structured log lines. Handle is the hook point for real delivery channels
// (mail, push) if one gets wired in.
type NotificationService struct {
	source  EventSource
	channel string
	logger  zerolog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(source EventSource, channel string, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		source:  source,
		channel: channel,
		logger:  logger,
	}
}

// Run consumes events until ctx is cancelled or the subscription closes
func (s *NotificationService) Run(ctx context.Context) error {
	events, err := s.source.Subscribe(ctx, s.channel)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			s.Handle(event)
		}
	}
}

// Handle processes one schedule event
func (s *NotificationService) Handle(event *entities.ScheduleEvent) {
	s.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", string(event.EventType)).
		Str("professional_id", event.ProfessionalID).
		Str("shift_id", event.ShiftID).
		Int("appointments", len(event.AppointmentIDs)).
		Msg("schedule changed")
}
