// Package controller drives the workout flow: it turns map clicks and form
// submissions into workouts, keeps the registry and the store in sync, and
// tells the map, list and form what to show.
package controller

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/mapty/internal/models"
	"github.com/misterclayt0n/mapty/internal/registry"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var (
	ErrPositionUnavailable = errors.New("could not get your position")
	ErrMapNotReady         = errors.New("map is not ready")
	ErrNotAwaitingInput    = errors.New("no map position selected")
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrConfirmationPending = errors.New("another confirmation is pending")
)

const (
	msgPosition      = "Could not get your position"
	msgInvalidInput  = "Inputs have to be positive numbers!"
	msgSaveFailed    = "Could not save your workouts"
	msgUnknownType   = "Workout type must be running or cycling"
	msgDeleteAll     = "Delete all workouts?"
	defaultZoomLevel = 13
)

// State is the visibility state of the workout form.
type State int

const (
	StateIdle State = iota
	StateAwaitingInput
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting-input"
	default:
		return "unknown"
	}
}

type Collaborators struct {
	Geo     Geolocator
	Map     MapRenderer
	Form    Form
	List    ListRenderer
	Confirm Confirmer
	Alert   Alerter
}

type Options struct {
	Zoom               int
	GeolocationTimeout time.Duration
	Clock              models.Clock
}

// Controller owns the registry and is its only writer.
type Controller struct {
	mu sync.Mutex

	registry *registry.Registry
	store    Store
	geo      Geolocator
	mapView  MapRenderer
	form     Form
	list     ListRenderer
	confirm  Confirmer
	alert    Alerter

	zoom       int
	geoTimeout time.Duration
	now        models.Clock
	log        *log.Entry

	state      State
	pending    models.Coordinates
	mapReady   bool
	confirming bool
}

func New(store Store, c Collaborators, opts Options) *Controller {
	if opts.Zoom <= 0 {
		opts.Zoom = defaultZoomLevel
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Controller{
		registry:   registry.New(),
		store:      store,
		geo:        c.Geo,
		mapView:    c.Map,
		form:       c.Form,
		list:       c.List,
		confirm:    c.Confirm,
		alert:      c.Alert,
		zoom:       opts.Zoom,
		geoTimeout: opts.GeolocationTimeout,
		now:        opts.Clock,
		log:        log.WithField("session", uuid.NewString()),
	}
}

// OnStartup rehydrates the registry, renders the list, then resolves the
// position and brings up the map. Markers need the map, so they are drawn
// only once it is ready. A position failure is alerted and returned; list
// and delete flows keep working without a map.
func (c *Controller) OnStartup(ctx context.Context) error {
	c.mu.Lock()
	c.registry.ReplaceWith(c.store.Load(ctx))
	c.list.ClearRows()
	for _, w := range c.registry.All() {
		c.list.RenderRow(w)
	}
	c.log.Debugf("rehydrated %d workouts", c.registry.Len())
	c.mu.Unlock()

	pos, err := c.locate(ctx)
	if err != nil {
		c.log.Warnf("geolocation failed: %s", err)
		c.alert.Alert(msgPosition)
		return fmt.Errorf("%w: %w", ErrPositionUnavailable, err)
	}
	c.log.Debugf("https://www.openstreetmap.org/#map=%d/%f/%f", c.zoom, pos.Lat(), pos.Lng())

	// Map calls here run without c.mu: a renderer may deliver a click from
	// inside OnClick.
	if err := c.mapView.Init(pos, c.zoom); err != nil {
		return fmt.Errorf("init map: %w", err)
	}

	c.mu.Lock()
	c.mapReady = true
	workouts := c.registry.All()
	c.mu.Unlock()

	c.mapView.OnClick(c.handleClick)
	c.drawMarkers(workouts)
	return nil
}

func (c *Controller) locate(ctx context.Context) (models.Coordinates, error) {
	if c.geoTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.geoTimeout)
		defer cancel()
	}
	return c.geo.CurrentPosition(ctx)
}

func (c *Controller) handleClick(coords models.Coordinates) {
	if err := c.OnMapClicked(coords); err != nil {
		c.log.Warnf("map click at %s: %s", coords, err)
	}
}

// OnMapClicked remembers where the next workout happened and opens the form.
// Clicking again before submitting moves the pending position.
func (c *Controller) OnMapClicked(coords models.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mapReady {
		return ErrMapNotReady
	}

	c.pending = coords
	c.state = StateAwaitingInput
	c.form.Show()
	return nil
}

// OnTypeChanged swaps the cadence and elevation inputs.
func (c *Controller) OnTypeChanged(kind models.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.ToggleElevationField(kind)
}

// OnFormSubmitted validates the raw fields and records the workout at the
// pending position. Invalid input is alerted and leaves everything as it was,
// the form included.
func (c *Controller) OnFormSubmitted(ctx context.Context, sub Submission) (models.Workout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingInput {
		return models.Workout{}, ErrNotAwaitingInput
	}

	w, err := c.build(sub)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.alert.Alert(msgInvalidInput)
		} else {
			c.alert.Alert(msgUnknownType)
		}
		return models.Workout{}, err
	}

	c.registry.Append(w)
	c.persist(ctx)

	if err := c.mapView.PlaceMarker(w, popupText(w), w.PopupClass()); err != nil {
		c.log.Warnf("place marker for %s: %s", w.ID, err)
	}
	c.list.RenderRow(w)

	c.form.Clear()
	c.form.Hide()
	c.state = StateIdle

	c.log.WithField("workout", w.ID).Infof("recorded %s", w.Description)
	return w, nil
}

func (c *Controller) build(sub Submission) (models.Workout, error) {
	kind, err := models.ParseKind(sub.Type)
	if err != nil {
		return models.Workout{}, err
	}

	distance, err := parseNumber("distance", sub.Distance)
	if err != nil {
		return models.Workout{}, err
	}
	duration, err := parseNumber("duration", sub.Duration)
	if err != nil {
		return models.Workout{}, err
	}

	switch kind {
	case models.KindRunning:
		cadence, err := parseNumber("cadence", sub.CadenceOrElevation)
		if err != nil {
			return models.Workout{}, err
		}
		return models.NewRunning(c.now(), c.pending, distance, duration, cadence)
	default:
		elevation, err := parseNumber("elevation gain", sub.CadenceOrElevation)
		if err != nil {
			return models.Workout{}, err
		}
		return models.NewCycling(c.now(), c.pending, distance, duration, elevation)
	}
}

func parseNumber(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &models.ValidationError{Field: name, Value: math.NaN()}
	}
	return v, nil
}

// OnWorkoutSelected pans the map to a recorded workout.
func (c *Controller) OnWorkoutSelected(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mapReady {
		return ErrMapNotReady
	}
	w, ok := c.registry.FindByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	return c.mapView.PanTo(w.Coords, c.zoom)
}

// OnDeleteRequested asks for confirmation and removes the workout. Only one
// confirmation can be open at a time; it reports whether anything was
// deleted.
func (c *Controller) OnDeleteRequested(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	if c.confirming {
		c.mu.Unlock()
		return false, ErrConfirmationPending
	}
	w, ok := c.registry.FindByID(id)
	if !ok {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	c.confirming = true
	c.mu.Unlock()

	confirmed, err := c.confirm.Confirm(ctx, fmt.Sprintf("Delete %s?", w.Description))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirming = false

	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !confirmed || !c.registry.RemoveByID(id) {
		return false, nil
	}

	c.persist(ctx)
	c.list.RemoveRow(id)
	c.redrawMarkers()

	c.log.WithField("workout", id).Info("deleted workout")
	return true, nil
}

// OnDeleteAllRequested asks for confirmation and wipes every workout, in
// memory and in the store.
func (c *Controller) OnDeleteAllRequested(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.confirming {
		c.mu.Unlock()
		return false, ErrConfirmationPending
	}
	c.confirming = true
	c.mu.Unlock()

	confirmed, err := c.confirm.Confirm(ctx, msgDeleteAll)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirming = false

	if err != nil {
		return false, fmt.Errorf("confirm delete all: %w", err)
	}
	if !confirmed {
		return false, nil
	}

	c.registry.RemoveAll()
	if err := c.store.Clear(ctx); err != nil {
		c.log.Errorf("clear saved workouts: %s", err)
		c.alert.Alert(msgSaveFailed)
	}
	c.list.ClearRows()
	if c.mapReady {
		c.mapView.Reset()
	}

	c.log.Info("deleted all workouts")
	return true, nil
}

// State returns the current form state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Workouts returns a copy of the registry in creation order.
func (c *Controller) Workouts() []models.Workout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.All()
}

// MapReady reports whether the map came up during startup.
func (c *Controller) MapReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mapReady
}

// persist writes the registry through. A failed write is logged and alerted;
// the in-memory state is kept.
func (c *Controller) persist(ctx context.Context) {
	if err := c.store.Save(ctx, c.registry.All()); err != nil {
		c.log.Errorf("save workouts: %s", err)
		c.alert.Alert(msgSaveFailed)
	}
}

func (c *Controller) drawMarkers(workouts []models.Workout) {
	var errs error
	for _, w := range workouts {
		errs = multierr.Append(errs, c.mapView.PlaceMarker(w, popupText(w), w.PopupClass()))
	}
	if errs != nil {
		c.log.Warnf("%d markers failed to draw: %s", len(multierr.Errors(errs)), errs)
	}
}

func (c *Controller) redrawMarkers() {
	if !c.mapReady {
		return
	}
	c.mapView.Reset()
	c.drawMarkers(c.registry.All())
}

func popupText(w models.Workout) string {
	return fmt.Sprintf("%s %s", w.Icon(), w.Description)
}
