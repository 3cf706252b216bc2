package registry

import (
	"testing"
	"time"

	"github.com/misterclayt0n/mapty/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRun(t *testing.T, at time.Time) models.Workout {
	t.Helper()
	w, err := models.NewRunning(at, models.Coordinates{40.7, -74.0}, 5.2, 24, 178)
	require.NoError(t, err)
	return w
}

func newRide(t *testing.T, at time.Time) models.Workout {
	t.Helper()
	w, err := models.NewCycling(at, models.Coordinates{40.7, -74.0}, 27, 95, 523)
	require.NoError(t, err)
	return w
}

func TestRegistry_AppendAndFind(t *testing.T) {
	now := time.Now()
	r := New()
	require.Equal(t, 0, r.Len())

	run := newRun(t, now)
	ride := newRide(t, now.Add(time.Second))
	r.Append(run)
	r.Append(ride)

	require.Equal(t, 2, r.Len())
	all := r.All()
	assert.Equal(t, run.ID, all[0].ID)
	assert.Equal(t, ride.ID, all[1].ID)

	found, ok := r.FindByID(ride.ID)
	require.True(t, ok)
	assert.Equal(t, ride, found)

	_, ok = r.FindByID("nope")
	assert.False(t, ok)
}

func TestRegistry_RemoveByID(t *testing.T) {
	now := time.Now()
	r := New()
	run := newRun(t, now)
	ride := newRide(t, now.Add(time.Second))
	run2 := newRun(t, now.Add(2*time.Second))
	r.Append(run)
	r.Append(ride)
	r.Append(run2)

	assert.False(t, r.RemoveByID("missing"))
	assert.Equal(t, 3, r.Len())

	assert.True(t, r.RemoveByID(run.ID))
	assert.Equal(t, 2, r.Len())
	_, ok := r.FindByID(run.ID)
	assert.False(t, ok)

	all := r.All()
	assert.Equal(t, ride.ID, all[0].ID)
	assert.Equal(t, run2.ID, all[1].ID)
}

func TestRegistry_RemoveAll(t *testing.T) {
	r := New()
	r.Append(newRun(t, time.Now()))
	r.RemoveAll()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.All())
}

func TestRegistry_ReplaceWith(t *testing.T) {
	now := time.Now()
	r := New()
	r.Append(newRun(t, now))

	ride := newRide(t, now.Add(time.Second))
	run := newRun(t, now.Add(2*time.Second))
	r.ReplaceWith([]models.Workout{ride, run})

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, ride.ID, all[0].ID)
	assert.Equal(t, run.ID, all[1].ID)
}

func TestRegistry_HandsOutCopies(t *testing.T) {
	r := New()
	run := newRun(t, time.Now())
	r.Append(run)

	all := r.All()
	all[0].Running.Pace = 1
	all[0].Distance = 1

	found, ok := r.FindByID(run.ID)
	require.True(t, ok)
	assert.Equal(t, run.Pace, found.Pace)
	assert.Equal(t, run.Distance, found.Distance)
}
