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

// DirectoryService resolves professional identity for the scheduling core.
// Directory CRUD lives elsewhere in the clinic app; this service only reads,
// apart from persisting its own first-run seed.
type DirectoryService struct {
	store storage.Store
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(store storage.Store) *DirectoryService {
	return &DirectoryService{store: store}
}

// ListProfessionals returns the professional directory. It prefers the
// professionals collection, then projects the richer doctors collection down
// when one exists, and otherwise persists and returns the built-in seed set.
func (s *DirectoryService) ListProfessionals(ctx context.Context) ([]entities.Professional, error) {
	professionals, err := storage.Load[entities.Professional](ctx, s.store, storage.CollectionProfessionals)
	if err != nil {
		return nil, err
	}
	if len(professionals) > 0 {
		return professionals, nil
	}

	doctors, err := storage.Load[entities.Doctor](ctx, s.store, storage.CollectionDoctors)
	if err != nil {
		return nil, err
	}
	if len(doctors) > 0 {
		// Projected on every read, never persisted, so edits to the doctors
		// collection are always picked up.
		professionals = make([]entities.Professional, 0, len(doctors))
		for _, d := range doctors {
			professionals = append(professionals, d.ToProfessional())
		}
		return professionals, nil
	}

	professionals = SeedProfessionals()
	observability.GetLogger().Info().
		Int("count", len(professionals)).
		Msg("seeding default professional directory")

	if err := storage.Save(ctx, s.store, storage.CollectionProfessionals, professionals); err != nil {
		return nil, err
	}
	return professionals, nil
}

// GetProfessional resolves a single professional by id
func (s *DirectoryService) GetProfessional(ctx context.Context, id string) (*entities.Professional, error) {
	professionals, err := s.ListProfessionals(ctx)
	if err != nil {
		return nil, err
	}
	for i := range professionals {
		if professionals[i].ID == id {
			return &professionals[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("professional %s not found", id))
}

// SeedProfessionals returns the default directory used on first run
func SeedProfessionals() []entities.Professional {
	weekdays := entities.WeeklySchedule{
		time.Monday:    {Working: true, StartTime: "08:00", EndTime: "18:00"},
		time.Tuesday:   {Working: true, StartTime: "08:00", EndTime: "18:00"},
		time.Wednesday: {Working: true, StartTime: "08:00", EndTime: "18:00"},
		time.Thursday:  {Working: true, StartTime: "08:00", EndTime: "18:00"},
		time.Friday:    {Working: true, StartTime: "08:00", EndTime: "14:00"},
	}
	now := time.Now().UTC()

	seed := []entities.Professional{
		{Name: "Dr. Elena Vargas", Specialty: "General Medicine", Email: "elena.vargas@clinova.example", Status: entities.ProfessionalStatusActive, Schedule: weekdays},
		{Name: "Dr. Marcus Osei", Specialty: "Pediatrics", Email: "marcus.osei@clinova.example", Status: entities.ProfessionalStatusActive, Schedule: weekdays},
		{Name: "Dr. Ingrid Bauer", Specialty: "Dermatology", Email: "ingrid.bauer@clinova.example", Status: entities.ProfessionalStatusActive, Schedule: weekdays},
		{Name: "Dr. Tomas Lindqvist", Specialty: "Cardiology", Email: "tomas.lindqvist@clinova.example", Status: entities.ProfessionalStatusVacation, Schedule: weekdays},
	}
	for i := range seed {
		seed[i].ID = uuid.New().String()
		seed[i].CreatedAt = now
	}
	return seed
}
