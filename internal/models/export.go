package models

import "time"

//
// For TOML export only
//

type WorkoutTOML struct {
	ID            string    `toml:"id"`
	Date          time.Time `toml:"date"`
	Latitude      float64   `toml:"latitude"`
	Longitude     float64   `toml:"longitude"`
	Distance      float64   `toml:"distance"`
	Duration      float64   `toml:"duration"`
	Type          string    `toml:"type"`
	Description   string    `toml:"description"`
	Cadence       *float64  `toml:"cadence,omitempty"`
	Pace          *float64  `toml:"pace,omitempty"`
	ElevationGain *float64  `toml:"elevation_gain,omitempty"`
	Speed         *float64  `toml:"speed,omitempty"`
}

type WorkoutDump struct {
	Workouts []WorkoutTOML `toml:"workout"`
}

func ToTOML(w Workout) WorkoutTOML {
	rec := WorkoutTOML{
		ID:          w.ID,
		Date:        w.Date,
		Latitude:    w.Coords.Lat(),
		Longitude:   w.Coords.Lng(),
		Distance:    w.Distance,
		Duration:    w.Duration,
		Type:        string(w.Type),
		Description: w.Description,
	}
	if w.Running != nil {
		cadence, pace := w.Running.Cadence, w.Running.Pace
		rec.Cadence, rec.Pace = &cadence, &pace
	}
	if w.Cycling != nil {
		gain, speed := w.Cycling.ElevationGain, w.Cycling.Speed
		rec.ElevationGain, rec.Speed = &gain, &speed
	}
	return rec
}

// Workout copies the dumped fields back verbatim. Nothing is validated or
// recomputed, the same as records read back from the store.
func (r WorkoutTOML) Workout() Workout {
	w := Workout{
		ID:          r.ID,
		Date:        r.Date,
		Coords:      Coordinates{r.Latitude, r.Longitude},
		Distance:    r.Distance,
		Duration:    r.Duration,
		Type:        Kind(r.Type),
		Description: r.Description,
	}
	if r.Cadence != nil || r.Pace != nil {
		w.Running = &Running{Cadence: deref(r.Cadence), Pace: deref(r.Pace)}
	}
	if r.ElevationGain != nil || r.Speed != nil {
		w.Cycling = &Cycling{ElevationGain: deref(r.ElevationGain), Speed: deref(r.Speed)}
	}
	return w
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
