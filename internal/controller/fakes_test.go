package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/misterclayt0n/mapty/internal/models"
)

type fakeGeo struct {
	coords models.Coordinates
	err    error
	block  bool
}

func (g *fakeGeo) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	if g.block {
		<-ctx.Done()
		return models.Coordinates{}, ctx.Err()
	}
	return g.coords, g.err
}

type marker struct {
	id    string
	popup string
	class string
}

type fakeMap struct {
	center  models.Coordinates
	zoom    int
	inits   int
	handler func(models.Coordinates)
	markers []marker
	pans    []models.Coordinates
	resets  int
	failIDs map[string]bool

	// clickOnRegister fires the handler as soon as it is registered.
	clickOnRegister *models.Coordinates
}

func (m *fakeMap) Init(center models.Coordinates, zoom int) error {
	m.center, m.zoom = center, zoom
	m.inits++
	return nil
}

func (m *fakeMap) OnClick(handler func(models.Coordinates)) {
	m.handler = handler
	if m.clickOnRegister != nil {
		handler(*m.clickOnRegister)
	}
}

func (m *fakeMap) PlaceMarker(w models.Workout, popup, class string) error {
	if m.failIDs[w.ID] {
		return errors.New("tile layer gone")
	}
	m.markers = append(m.markers, marker{id: w.ID, popup: popup, class: class})
	return nil
}

func (m *fakeMap) PanTo(coords models.Coordinates, zoom int) error {
	m.pans = append(m.pans, coords)
	return nil
}

func (m *fakeMap) Reset() {
	m.markers = nil
	m.resets++
}

func (m *fakeMap) click(coords models.Coordinates) { m.handler(coords) }

type fakeForm struct {
	visible bool
	clears  int
	toggled []models.Kind
	values  Submission
}

func (f *fakeForm) Show()                                 { f.visible = true }
func (f *fakeForm) Hide()                                 { f.visible = false }
func (f *fakeForm) Clear()                                { f.clears++; f.values = Submission{} }
func (f *fakeForm) ToggleElevationField(kind models.Kind) { f.toggled = append(f.toggled, kind) }
func (f *fakeForm) Values() Submission                    { return f.values }

type fakeList struct {
	rows []string
}

func (l *fakeList) RenderRow(w models.Workout) { l.rows = append(l.rows, w.ID) }

func (l *fakeList) RemoveRow(id string) {
	for i, row := range l.rows {
		if row == id {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			return
		}
	}
}

func (l *fakeList) ClearRows() { l.rows = nil }

type fakeConfirmer struct {
	answer   bool
	err      error
	messages []string
	// When set, Confirm signals entered and waits for release.
	entered chan struct{}
	release chan struct{}
}

func (c *fakeConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	c.messages = append(c.messages, message)
	if c.entered != nil {
		c.entered <- struct{}{}
		<-c.release
	}
	return c.answer, c.err
}

type fakeAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (a *fakeAlerter) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
}

type failingStore struct {
	Store
	saveErr  error
	clearErr error
}

func (s *failingStore) Save(ctx context.Context, workouts []models.Workout) error {
	return s.saveErr
}

func (s *failingStore) Clear(ctx context.Context) error {
	return s.clearErr
}
