package tracker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	return NewStore(filepath.Join(t.TempDir(), "timer.json"))
}

func TestLoadMissingFileIsIdle(t *testing.T) {
	store := newTestStore(t)

	st, err := store.Load()
	require.NoError(t, err)
	assert.False(t, st.Running)
}

func TestSetRunningRoundTrip(t *testing.T) {
	store := newTestStore(t)
	start := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.SetRunning(State{
		EntryID:     12,
		StartTime:   start,
		ClientID:    "c1",
		Description: "wireframes",
	}))

	st, err := store.Load()
	require.NoError(t, err)
	assert.True(t, st.Running)
	assert.Equal(t, int64(12), st.EntryID)
	assert.True(t, st.StartTime.Equal(start))
	assert.Equal(t, "wireframes", st.Description)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetRunning(State{EntryID: 1}))

	require.NoError(t, store.Clear())

	st, err := store.Load()
	require.NoError(t, err)
	assert.False(t, st.Running)
	// clearing twice is fine
	require.NoError(t, store.Clear())
}

func TestReconcileRemoteWins(t *testing.T) {
	store := newTestStore(t)
	// stale local state from a previous run
	require.NoError(t, store.SetRunning(State{EntryID: 1}))

	remote := &State{EntryID: 99, ClientID: "c2"}
	st, err := store.Reconcile(remote)
	require.NoError(t, err)
	assert.True(t, st.Running)
	assert.Equal(t, int64(99), st.EntryID)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(99), persisted.EntryID)
}

func TestReconcileNoRemoteClearsLocal(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetRunning(State{EntryID: 1}))

	st, err := store.Reconcile(nil)
	require.NoError(t, err)
	assert.False(t, st.Running)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.False(t, persisted.Running)
}

func TestLoadCorruptFileFallsBackToIdle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timer.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewStore(path)
	st, err := store.Load()
	require.NoError(t, err)
	assert.False(t, st.Running)
}
