package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/shift-scheduler/internal/domain/entities"
	"github.com/clinova/shift-scheduler/internal/infrastructure/observability"
	"github.com/clinova/shift-scheduler/internal/storage"
	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

// ReassignShiftInput carries a reassignment request. PartialTimeSlotIDs is
// only read when IsPartial is set and must then be a non-empty subset of the
// origin shift's current slot ids.
type ReassignShiftInput struct {
	ShiftID            string   `json:"shift_id"`
	NewProfessionalID  string   `json:"new_professional_id"`
	Reason             string   `json:"reason"`
	IsPartial          bool     `json:"is_partial"`
	PartialTimeSlotIDs []string `json:"partial_time_slot_ids,omitempty"`
	RequestedBy        string   `json:"requested_by,omitempty"`
}

// ReassignmentService moves a shift, fully or by splitting off specific time
// slots, from one professional to another. Every call is all-or-nothing: all
// preconditions are checked before any write, and each call appends exactly
// one audit record.
//
// A fully reassigned origin keeps its original time slots as a historical
// marker of the pre-reassignment shape; a partially reassigned origin has the
// moved slots pruned. Consumers summing slot time by status must exclude
// reassigned origin shifts.
type ReassignmentService struct {
	store     storage.Store
	directory *DirectoryService
	publisher EventPublisher
	channel   string
}

// NewReassignmentService creates a new reassignment service
func NewReassignmentService(store storage.Store, directory *DirectoryService, publisher EventPublisher, channel string) *ReassignmentService {
	return &ReassignmentService{
		store:     store,
		directory: directory,
		publisher: publisher,
		channel:   channel,
	}
}

// ReassignShift performs the reassignment and returns the newly created shift.
// Writes: the new shift is appended and the origin updated in one shift
// collection write, then the audit record is appended.
func (s *ReassignmentService) ReassignShift(ctx context.Context, input ReassignShiftInput) (*entities.Shift, error) {
	shifts, err := storage.Load[entities.Shift](ctx, s.store, storage.CollectionShifts)
	if err != nil {
		return nil, err
	}

	originIdx := -1
	for i := range shifts {
		if shifts[i].ID == input.ShiftID {
			originIdx = i
			break
		}
	}
	if originIdx == -1 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("shift %s not found", input.ShiftID))
	}
	origin := &shifts[originIdx]

	target, err := s.directory.GetProfessional(ctx, input.NewProfessionalID)
	if err != nil {
		return nil, err
	}

	var movedSlots []entities.TimeSlot
	if input.IsPartial {
		movedSlots, err = extractSlots(origin, input.PartialTimeSlotIDs)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	newShift := entities.Shift{
		ID:                    uuid.New().String(),
		ProfessionalID:        target.ID,
		ProfessionalName:      target.Name,
		Date:                  origin.Date,
		Status:                entities.ShiftStatusReassigned,
		Notes:                 annotateReason(origin.ProfessionalName, input.Reason),
		OriginalShiftID:       origin.ID,
		ReassignedFrom:        origin.ProfessionalID,
		IsPartialReassignment: input.IsPartial,
		CreatedAt:             now,
	}

	if input.IsPartial {
		// Moved slots keep their ids so the union of slots across the origin
		// and its spawned shifts stays equal to the origin's original set.
		newShift.TimeSlots = movedSlots
		origin.TimeSlots = removeSlots(origin.TimeSlots, input.PartialTimeSlotIDs)
	} else {
		// The origin keeps its slot list untouched for audit, so the copy
		// must mint fresh slot ids to keep ids unique across shifts.
		newShift.TimeSlots = copySlots(origin.TimeSlots)
		origin.ReassignedTo = target.ID
	}
	origin.Status = entities.ShiftStatusReassigned
	origin.UpdatedAt = &now

	audit := entities.ShiftReassignment{
		ID:                 uuid.New().String(),
		OriginalShiftID:    origin.ID,
		FromProfessionalID: origin.ProfessionalID,
		ToProfessionalID:   target.ID,
		ReassignmentDate:   origin.Date,
		Reason:             input.Reason,
		IsPartial:          input.IsPartial,
		CreatedBy:          input.RequestedBy,
		CreatedAt:          now,
	}
	if input.IsPartial {
		audit.PartialTimeSlotIDs = append([]string(nil), input.PartialTimeSlotIDs...)
	}

	if err := storage.Save(ctx, s.store, storage.CollectionShifts, append(shifts, newShift)); err != nil {
		return nil, err
	}

	reassignments, err := storage.Load[entities.ShiftReassignment](ctx, s.store, storage.CollectionReassignments)
	if err != nil {
		return nil, err
	}
	if err := storage.Save(ctx, s.store, storage.CollectionReassignments, append(reassignments, audit)); err != nil {
		return nil, err
	}

	observability.GetLogger().Info().
		Str("shift_id", origin.ID).
		Str("from", origin.ProfessionalID).
		Str("to", target.ID).
		Bool("partial", input.IsPartial).
		Msg("reassigned shift")

	if s.publisher != nil {
		event := entities.NewScheduleEvent(entities.ScheduleEventTypeShiftReassigned)
		event.ProfessionalID = target.ID
		event.ShiftID = newShift.ID
		event.Detail = input.Reason
		if err := s.publisher.Publish(ctx, s.channel, event); err != nil {
			observability.GetLogger().Warn().Err(err).Msg("failed to publish schedule event")
		}
	}

	return &newShift, nil
}

// ListReassignments returns the audit log, newest first
func (s *ReassignmentService) ListReassignments(ctx context.Context) ([]entities.ShiftReassignment, error) {
	reassignments, err := storage.Load[entities.ShiftReassignment](ctx, s.store, storage.CollectionReassignments)
	if err != nil {
		return nil, err
	}
	sort.Slice(reassignments, func(i, j int) bool {
		return reassignments[i].CreatedAt.After(reassignments[j].CreatedAt)
	})
	return reassignments, nil
}

// extractSlots returns the origin's slots named by slotIDs, validating that
// the selection is a non-empty subset of the origin's current slots.
func extractSlots(origin *entities.Shift, slotIDs []string) ([]entities.TimeSlot, error) {
	if len(slotIDs) == 0 {
		return nil, apperrors.NewValidationError("partial reassignment requires at least one time slot id")
	}

	seen := make(map[string]bool, len(slotIDs))
	moved := make([]entities.TimeSlot, 0, len(slotIDs))
	for _, id := range slotIDs {
		if seen[id] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("duplicate time slot id %s", id))
		}
		seen[id] = true
		if !origin.HasSlot(id) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("time slot %s does not belong to shift %s", id, origin.ID))
		}
	}
	for _, slot := range origin.TimeSlots {
		if seen[slot.ID] {
			moved = append(moved, slot)
		}
	}
	return moved, nil
}

// removeSlots returns slots without the ones named by slotIDs
func removeSlots(slots []entities.TimeSlot, slotIDs []string) []entities.TimeSlot {
	drop := make(map[string]bool, len(slotIDs))
	for _, id := range slotIDs {
		drop[id] = true
	}
	remaining := make([]entities.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if !drop[slot.ID] {
			remaining = append(remaining, slot)
		}
	}
	return remaining
}

func annotateReason(fromName, reason string) string {
	if reason == "" {
		return fmt.Sprintf("Reassigned from %s", fromName)
	}
	return fmt.Sprintf("Reassigned from %s: %s", fromName, reason)
}
