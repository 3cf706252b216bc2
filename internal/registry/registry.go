// Package registry holds the ordered set of workouts recorded in a session.
package registry

import "github.com/misterclayt0n/mapty/internal/models"

// Registry keeps workouts in creation order. It is not safe for concurrent
// use; its owner serializes access.
type Registry struct {
	workouts []models.Workout
}

func New() *Registry {
	return &Registry{}
}

// Append adds w to the end. Ids are trusted to be unique.
func (r *Registry) Append(w models.Workout) {
	r.workouts = append(r.workouts, w.Clone())
}

func (r *Registry) FindByID(id string) (models.Workout, bool) {
	for _, w := range r.workouts {
		if w.ID == id {
			return w.Clone(), true
		}
	}
	return models.Workout{}, false
}

// RemoveByID drops the first workout with the given id and reports whether
// anything was removed.
func (r *Registry) RemoveByID(id string) bool {
	for i, w := range r.workouts {
		if w.ID == id {
			r.workouts = append(r.workouts[:i], r.workouts[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) RemoveAll() {
	r.workouts = nil
}

// All returns a copy of the current workouts in order.
func (r *Registry) All() []models.Workout {
	out := make([]models.Workout, len(r.workouts))
	for i, w := range r.workouts {
		out[i] = w.Clone()
	}
	return out
}

// ReplaceWith discards the current content and adopts workouts in the given
// order. Used when rehydrating from storage.
func (r *Registry) ReplaceWith(workouts []models.Workout) {
	r.workouts = make([]models.Workout, len(workouts))
	for i, w := range workouts {
		r.workouts[i] = w.Clone()
	}
}

func (r *Registry) Len() int {
	return len(r.workouts)
}
