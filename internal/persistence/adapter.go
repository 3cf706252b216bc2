// Package persistence maps the workout registry to a single key of a flat
// store.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/misterclayt0n/mapty/internal/models"
	"github.com/misterclayt0n/mapty/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Key is where the workout list lives in the store.
const Key = "workouts"

// ErrWrite wraps every failure to persist workouts.
var ErrWrite = errors.New("could not save workouts")

type Adapter struct {
	store storage.Store
	key   string
}

func New(store storage.Store) *Adapter {
	return &Adapter{store: store, key: Key}
}

// Save stores the workouts as a JSON array, derived fields included.
func (a *Adapter) Save(ctx context.Context, workouts []models.Workout) error {
	if workouts == nil {
		workouts = []models.Workout{}
	}

	data, err := json.Marshal(workouts)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWrite, err)
	}
	if err := a.store.Set(ctx, a.key, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	log.Debugf("saved %d workouts (%d bytes)", len(workouts), len(data))
	return nil
}

// Load returns the stored workouts exactly as they were written. Records are
// decoded straight into workouts: nothing is validated or recomputed. A
// missing or unreadable entry yields an empty slice.
func (a *Adapter) Load(ctx context.Context) []models.Workout {
	data, err := a.store.Get(ctx, a.key)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debugf("no saved workouts under %q", a.key)
		return []models.Workout{}
	}
	if err != nil {
		log.Warnf("read saved workouts: %s", err)
		return []models.Workout{}
	}

	var workouts []models.Workout
	if err := json.Unmarshal([]byte(data), &workouts); err != nil {
		log.Warnf("saved workouts are corrupt, ignoring them: %s", err)
		return []models.Workout{}
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}

	log.Debugf("loaded %d workouts", len(workouts))
	return workouts
}

// Clear removes the stored workouts entirely.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.store.Remove(ctx, a.key); err != nil {
		return fmt.Errorf("%w: clear: %w", ErrWrite, err)
	}
	return nil
}
