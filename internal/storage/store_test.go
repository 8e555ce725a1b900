package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinova/shift-scheduler/internal/domain/entities"
	"github.com/clinova/shift-scheduler/internal/storage"
	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

func TestMemoryStore_ReadMissingCollection(t *testing.T) {
	store := storage.NewMemoryStore()

	data, err := store.Read(context.Background(), storage.CollectionShifts)

	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestLoadSave_RoundTripsDatesAsISO(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	shifts := []entities.Shift{
		{
			ID:             "shift-1",
			ProfessionalID: "doc-1",
			Date:           date,
			Status:         entities.ShiftStatusAssigned,
			CreatedAt:      time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC),
		},
	}

	require.NoError(t, storage.Save(ctx, store, storage.CollectionShifts, shifts))

	// The stored blob carries dates as ISO-8601 strings
	raw, err := store.Read(ctx, storage.CollectionShifts)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "2024-06-10T00:00:00Z")

	loaded, err := storage.Load[entities.Shift](ctx, store, storage.CollectionShifts)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].Date.Equal(date))
	assert.Equal(t, entities.ShiftStatusAssigned, loaded[0].Status)
}

func TestLoad_EmptyCollectionLoadsAsEmptySlice(t *testing.T) {
	store := storage.NewMemoryStore()

	loaded, err := storage.Load[entities.Shift](context.Background(), store, storage.CollectionShifts)

	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestLoad_MalformedDataIsStorageError(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, storage.CollectionShifts, []byte("{not json")))

	_, err := storage.Load[entities.Shift](ctx, store, storage.CollectionShifts)

	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
}

func TestSave_NilRecordsWriteEmptyArray(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, storage.Save[entities.Shift](ctx, store, storage.CollectionShifts, nil))

	raw, err := store.Read(ctx, storage.CollectionShifts)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}
