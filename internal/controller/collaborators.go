package controller

import (
	"context"

	"github.com/misterclayt0n/mapty/internal/models"
)

// Geolocator resolves the current position once.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (models.Coordinates, error)
}

// MapRenderer draws the map and its markers. The click handler may run
// from inside OnClick or from any goroutine once registered, but never
// from inside PlaceMarker, PanTo or Reset.
type MapRenderer interface {
	Init(center models.Coordinates, zoom int) error
	OnClick(handler func(models.Coordinates))
	PlaceMarker(w models.Workout, popup, class string) error
	PanTo(coords models.Coordinates, zoom int) error
	// Reset removes every marker.
	Reset()
}

// Submission holds the raw form fields as typed by the user.
type Submission struct {
	Type               string
	Distance           string
	Duration           string
	CadenceOrElevation string
}

type Form interface {
	Show()
	Hide()
	Clear()
	ToggleElevationField(kind models.Kind)
	Values() Submission
}

type ListRenderer interface {
	RenderRow(w models.Workout)
	RemoveRow(id string)
	ClearRows()
}

type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// Store is the persistence the controller writes through.
type Store interface {
	Save(ctx context.Context, workouts []models.Workout) error
	Load(ctx context.Context) []models.Workout
	Clear(ctx context.Context) error
}
