package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/misterclayt0n/mapty/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	_, err := st.Get(ctx, "workouts")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Set(ctx, "workouts", `[{"id":"1"}]`))
	value, err := st.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, value)

	require.NoError(t, st.Set(ctx, "workouts", `[]`))
	value, err = st.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)

	require.NoError(t, st.Remove(ctx, "workouts"))
	_, err = st.Get(ctx, "workouts")
	require.ErrorIs(t, err, ErrNotFound)

	// Removing a missing key is a no-op.
	require.NoError(t, st.Remove(ctx, "workouts"))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	require.NoError(t, err)
	defer st.Close()

	exerciseStore(t, st)

	require.NoError(t, st.Set(context.Background(), "workouts", "data"))
	data, err := os.ReadFile(filepath.Join(dir, "workouts.json"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.Error(t, st.Set(context.Background(), "../escape", "x"))
	_, err = st.Get(context.Background(), "a/b")
	require.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore(1)
	defer st.Close()
	exerciseStore(t, st)
}

func TestMemoryStore_Quota(t *testing.T) {
	st := NewMemoryStoreBytes(256)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "workouts", strings.Repeat("x", 100)))
	assert.Equal(t, 108, st.Used())

	err := st.Set(ctx, "workouts", strings.Repeat("x", 4096))
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// The previous value survives a rejected write.
	value, err := st.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Len(t, value, 100)

	// Replacing a value only counts the difference.
	require.NoError(t, st.Set(ctx, "workouts", strings.Repeat("x", 240)))
	assert.Equal(t, 248, st.Used())
}

func TestMemoryStore_QuotaSharedByKeys(t *testing.T) {
	st := NewMemoryStoreBytes(100)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "a", strings.Repeat("x", 59)))
	require.ErrorIs(t, st.Set(ctx, "b", strings.Repeat("x", 59)), ErrQuotaExceeded)

	require.NoError(t, st.Remove(ctx, "a"))
	assert.Zero(t, st.Used())
	require.NoError(t, st.Set(ctx, "b", strings.Repeat("x", 59)))
}

func TestMemoryStore_QuotaIsMegabytes(t *testing.T) {
	st := NewMemoryStore(5)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "workouts", strings.Repeat("x", 4<<20)))
	require.ErrorIs(t, st.Set(ctx, "workouts", strings.Repeat("x", 5<<20)), ErrQuotaExceeded)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, config.StorageConfig{Backend: config.BackendFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, st)

	st, err = Open(ctx, config.StorageConfig{Backend: config.BackendMemory, MemoryQuotaMB: 1})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, st)

	_, err = Open(ctx, config.StorageConfig{Backend: "tape"})
	require.Error(t, err)
}
