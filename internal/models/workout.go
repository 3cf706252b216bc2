package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

// ErrInvalidInput is matched by every *ValidationError.
var ErrInvalidInput = errors.New("inputs have to be positive numbers")

// ValidationError reports the first numeric field that failed validation.
type ValidationError struct {
	Field string
	Value float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, ErrInvalidInput)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Coordinates is a [latitude, longitude] pair.
type Coordinates [2]float64

func (c Coordinates) Lat() float64 { return c[0] }
func (c Coordinates) Lng() float64 { return c[1] }

func (c Coordinates) String() string {
	return fmt.Sprintf("%.5f, %.5f", c[0], c[1])
}

// Clock supplies the current time to anything that stamps workouts.
type Clock func() time.Time

type Running struct {
	Cadence float64 `json:"cadence"` // Steps per minute.
	Pace    float64 `json:"pace"`    // Min/km.
}

type Cycling struct {
	ElevationGain float64 `json:"elevationGain"` // Meters, may be negative.
	Speed         float64 `json:"speed"`         // Km/h.
}

// Workout is one recorded activity. Exactly one of Running or Cycling is set,
// matching Type. The embedded payload is flattened into the JSON object.
type Workout struct {
	ID          string      `json:"id"`
	Date        time.Time   `json:"date"`
	Coords      Coordinates `json:"coords"`
	Distance    float64     `json:"distance"` // Km.
	Duration    float64     `json:"duration"` // Minutes.
	Type        Kind        `json:"type"`
	Description string      `json:"description"`
	*Running
	*Cycling
}

// NewRunning builds a running workout stamped at now.
func NewRunning(now time.Time, coords Coordinates, distance, duration, cadence float64) (Workout, error) {
	if err := allPositive(
		field{"distance", distance},
		field{"duration", duration},
		field{"cadence", cadence},
	); err != nil {
		return Workout{}, err
	}

	w := newWorkout(now, KindRunning, coords, distance, duration)
	w.Running = &Running{
		Cadence: cadence,
		Pace:    duration / distance,
	}
	return w, nil
}

// NewCycling builds a cycling workout stamped at now. Elevation gain only has
// to be finite: descents are recorded as negative gain.
func NewCycling(now time.Time, coords Coordinates, distance, duration, elevationGain float64) (Workout, error) {
	if err := allPositive(
		field{"distance", distance},
		field{"duration", duration},
	); err != nil {
		return Workout{}, err
	}
	if !isFinite(elevationGain) {
		return Workout{}, &ValidationError{Field: "elevation gain", Value: elevationGain}
	}

	w := newWorkout(now, KindCycling, coords, distance, duration)
	w.Cycling = &Cycling{
		ElevationGain: elevationGain,
		Speed:         distance / (duration / 60),
	}
	return w, nil
}

func newWorkout(now time.Time, kind Kind, coords Coordinates, distance, duration float64) Workout {
	return Workout{
		ID:          idFromTime(now),
		Date:        now,
		Coords:      coords,
		Distance:    distance,
		Duration:    duration,
		Type:        kind,
		Description: describe(kind, now),
	}
}

// Describe returns the label computed when the workout was created.
func Describe(w Workout) string {
	return w.Description
}

// ParseKind maps user input to a workout kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindRunning:
		return KindRunning, nil
	case KindCycling:
		return KindCycling, nil
	default:
		return "", fmt.Errorf("unknown workout type %q", s)
	}
}

// Metric returns the derived figure for the workout's kind and its unit.
func (w Workout) Metric() (float64, string) {
	switch w.Type {
	case KindRunning:
		if w.Running != nil {
			return w.Running.Pace, "min/km"
		}
	case KindCycling:
		if w.Cycling != nil {
			return w.Cycling.Speed, "km/h"
		}
	}
	return 0, ""
}

// Detail returns the variant specific input and its unit.
func (w Workout) Detail() (float64, string) {
	switch w.Type {
	case KindRunning:
		if w.Running != nil {
			return w.Running.Cadence, "spm"
		}
	case KindCycling:
		if w.Cycling != nil {
			return w.Cycling.ElevationGain, "m"
		}
	}
	return 0, ""
}

func (w Workout) Icon() string {
	if w.Type == KindRunning {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// PopupClass is the style tag markers of this kind are drawn with.
func (w Workout) PopupClass() string {
	return string(w.Type) + "-popup"
}

// Clone returns a copy that shares no variant payload with w.
func (w Workout) Clone() Workout {
	if w.Running != nil {
		r := *w.Running
		w.Running = &r
	}
	if w.Cycling != nil {
		c := *w.Cycling
		w.Cycling = &c
	}
	return w
}

// IDs are the last 10 digits of the creation time in Unix milliseconds.
func idFromTime(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 10 {
		ms = ms[len(ms)-10:]
	}
	return ms
}

func describe(kind Kind, t time.Time) string {
	name := string(kind)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s on %s %d", name, t.Month(), t.Day())
}

type field struct {
	name  string
	value float64
}

func allPositive(fields ...field) error {
	for _, f := range fields {
		if !isFinite(f.value) || f.value <= 0 {
			return &ValidationError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
