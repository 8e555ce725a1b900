// Package storage provides the persisted collection store: a name-keyed store
// of JSON-serializable record arrays. Date fields travel as RFC 3339 strings
// and are re-hydrated to time.Time on every read; callers never see raw JSON.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

// Collection names used by the scheduling core. patientsByDoctor and
// appointmentsByDoctor are foreign collections owned by other screens of the
// clinic app; this core tolerates them but never writes them.
const (
	CollectionProfessionals = "professionals"
	CollectionDoctors       = "doctors"
	CollectionShifts        = "shifts"
	CollectionAppointments  = "appointments"
	CollectionReassignments = "shiftReassignments"
	CollectionPatientsByDoc = "patientsByDoctor"
	CollectionApptsByDoc    = "appointmentsByDoctor"
)

// Store is the injected persistence dependency: a durable key-value store
// keyed by collection name, holding one JSON array per collection.
// Read returns (nil, nil) when the collection has never been written.
// Write replaces the whole collection in a single call, so each multi-record
// mutation stays atomic within one Write per collection.
type Store interface {
	Read(ctx context.Context, collection string) ([]byte, error)
	Write(ctx context.Context, collection string, data []byte) error
}

// Load reads a collection and unmarshals it into typed records.
// An absent collection loads as an empty slice.
func Load[T any](ctx context.Context, s Store, collection string) ([]T, error) {
	data, err := s.Read(ctx, collection)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("collection %q holds malformed data", collection), err)
	}
	return records, nil
}

// Save marshals typed records and writes them as the collection's new content
func Save[T any](ctx context.Context, s Store, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to encode collection %q", collection), err)
	}
	return s.Write(ctx, collection, data)
}
