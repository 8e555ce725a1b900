package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinova/shift-scheduler/internal/storage"
	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "shifts", []byte(`[{"id":"s1"}]`)))

	data, err := store.Read(ctx, "shifts")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"s1"}]`, string(data))

	// one file per collection
	_, err = os.Stat(filepath.Join(dir, "shifts.json"))
	assert.NoError(t, err)
}

func TestFileStore_MissingCollectionReadsNil(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	data, err := store.Read(context.Background(), "appointments")

	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileStore_OverwriteReplacesContent(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "shifts", []byte(`[{"id":"s1"}]`)))
	require.NoError(t, store.Write(ctx, "shifts", []byte(`[]`)))

	data, err := store.Read(ctx, "shifts")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestFileStore_RejectsPathEscapingNames(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read(context.Background(), "../etc/passwd")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
