package main

import (
	"context"
	"log"
	"time"

	"github.com/clinova/shift-scheduler/internal/application/services"
	"github.com/clinova/shift-scheduler/internal/domain/entities"
	"github.com/clinova/shift-scheduler/internal/infrastructure/clients/postgres"
	"github.com/clinova/shift-scheduler/internal/infrastructure/clients/redis"
	"github.com/clinova/shift-scheduler/internal/storage"
	"github.com/clinova/shift-scheduler/pkg/config"
)

// Seeds the configured store with the default professional directory, a month
// of generated shifts per professional, and a handful of demo appointments.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var store storage.Store
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		log.Fatal("seeding an in-memory store is pointless; pick file, redis or postgres")
	case config.StoreBackendFile:
		store, err = storage.NewFileStore(cfg.Store.DataDir)
		if err != nil {
			log.Fatalf("Failed to open file store: %v", err)
		}
	case config.StoreBackendRedis:
		client, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		store = storage.NewRedisStore(client)
	case config.StoreBackendPostgres:
		client, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer client.Close()
		store, err = storage.NewPostgresStore(ctx, client)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
	default:
		log.Fatalf("Unknown store backend %q", cfg.Store.Backend)
	}

	directory := services.NewDirectoryService(store)
	shifts := services.NewShiftService(store, directory, nil, "")
	appointments := services.NewAppointmentService(store, directory, nil, "")

	// 1. Seed the professional directory (first call persists the defaults)
	professionals, err := directory.ListProfessionals(ctx)
	if err != nil {
		log.Fatalf("Failed to seed professionals: %v", err)
	}
	log.Printf("Directory holds %d professionals", len(professionals))

	// 2. Generate a month of standard shifts for each active professional
	now := time.Now()
	month, year := int(now.Month())-1, now.Year()
	for _, p := range professionals {
		if p.Status != entities.ProfessionalStatusActive {
			continue
		}
		created, err := shifts.GenerateMonthlyShifts(ctx, p.ID, month, year, nil, nil)
		if err != nil {
			log.Printf("Failed to generate shifts for %s: %v", p.Name, err)
			continue
		}
		log.Printf("Generated %d shifts for %s", len(created), p.Name)
	}

	// 3. Book a few demo appointments against the first professional
	if len(professionals) > 0 {
		target := professionals[0]
		demo := []entities.Appointment{
			{PatientID: "pat-001", PatientName: "Ana Oliveira", ProfessionalID: target.ID, Date: now, Time: "09:00", DurationMinutes: 30, Reason: "Annual check-up"},
			{PatientID: "pat-002", PatientName: "Joao Mensah", ProfessionalID: target.ID, Date: now, Time: "10:30", DurationMinutes: 45, Reason: "Follow-up consultation"},
			{PatientID: "pat-003", PatientName: "Clara Novak", ProfessionalID: target.ID, Date: now.AddDate(0, 0, 1), Time: "14:00", DurationMinutes: 30, Reason: "Lab results review"},
		}
		for i := range demo {
			if err := appointments.BookAppointment(ctx, &demo[i]); err != nil {
				log.Printf("Failed to book appointment for %s: %v", demo[i].PatientName, err)
				continue
			}
			log.Printf("Booked appointment %s for %s", demo[i].ID, demo[i].PatientName)
		}
	}

	log.Println("Seeding complete")
}
