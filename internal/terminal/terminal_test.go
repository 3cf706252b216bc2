package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/mapty/internal/controller"
	"github.com/misterclayt0n/mapty/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

var now = time.Date(2024, time.April, 14, 9, 30, 0, 0, time.UTC)

func TestMapView(t *testing.T) {
	var out bytes.Buffer
	m := NewMapView(&out)

	require.ErrorIs(t, m.Click(models.Coordinates{1, 2}), controller.ErrMapNotReady)

	require.NoError(t, m.Init(models.Coordinates{40.7, -74.0}, 13))
	assert.Contains(t, out.String(), "Map centered at 40.70000, -74.00000 (zoom 13)")

	var clicked models.Coordinates
	m.OnClick(func(c models.Coordinates) { clicked = c })
	require.NoError(t, m.Click(models.Coordinates{1, 2}))
	assert.Equal(t, models.Coordinates{1, 2}, clicked)

	w, err := models.NewRunning(now, models.Coordinates{40.7, -74.0}, 5.2, 24, 178)
	require.NoError(t, err)
	require.NoError(t, m.PlaceMarker(w, "🏃‍♂️ Running on April 14", "running-popup"))
	assert.Contains(t, out.String(), "📍 [40.70000, -74.00000] 🏃‍♂️ Running on April 14")
	assert.Equal(t, []string{w.ID}, m.Markers())

	require.NoError(t, m.PanTo(models.Coordinates{3, 4}, 13))
	assert.Contains(t, out.String(), "Panned to 3.00000, 4.00000")

	m.Reset()
	assert.Empty(t, m.Markers())
}

func TestListView(t *testing.T) {
	var out bytes.Buffer
	l := NewListView(&out)

	run, err := models.NewRunning(now, models.Coordinates{}, 5.2, 24, 178)
	require.NoError(t, err)
	ride, err := models.NewCycling(now, models.Coordinates{}, 27, 95, 523)
	require.NoError(t, err)

	l.RenderRow(run)
	l.RenderRow(ride)
	text := out.String()

	assert.Contains(t, text, "Running on April 14")
	assert.Contains(t, text, "id "+run.ID)
	assert.Contains(t, text, "5.2 km")
	assert.Contains(t, text, "4.6 min/km")
	assert.Contains(t, text, "178 spm")
	assert.Contains(t, text, "Cycling on April 14")
	assert.Contains(t, text, "17.1 km/h")
	assert.Contains(t, text, "523 m")

	l.RemoveRow(run.ID)
	assert.Contains(t, out.String(), "Removed workout "+run.ID)
}

func TestForm(t *testing.T) {
	f := NewForm()
	assert.Equal(t, "running", f.Values().Type)

	f.Show()
	assert.True(t, f.Visible())
	f.ToggleElevationField(models.KindCycling)
	assert.True(t, f.ElevationVisible())
	f.ToggleElevationField(models.KindRunning)
	assert.False(t, f.ElevationVisible())

	f.Fill(controller.Submission{Type: "cycling", Distance: "27", Duration: "95", CadenceOrElevation: "523"})
	assert.Equal(t, "27", f.Values().Distance)

	f.Clear()
	assert.Equal(t, controller.Submission{Type: "cycling"}, f.Values())
	f.Hide()
	assert.False(t, f.Visible())
}

func TestPrompt(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"y", true},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		p := NewPrompt(strings.NewReader(tc.input), &out, false)
		got, err := p.Confirm(context.Background(), "Delete all workouts?")
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
		assert.Contains(t, out.String(), "Delete all workouts? [y/N]")
	}

	p := NewPrompt(strings.NewReader(""), &bytes.Buffer{}, false)
	_, err := p.Confirm(context.Background(), "Delete?")
	require.Error(t, err)

	p = NewPrompt(strings.NewReader(""), &bytes.Buffer{}, true)
	got, err := p.Confirm(context.Background(), "Delete?")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestAlerter(t *testing.T) {
	var out bytes.Buffer
	NewAlerter(&out).Alert("Could not get your position")
	assert.Equal(t, "⚠  Could not get your position\n", out.String())
}

func TestPrintBoxedHeader(t *testing.T) {
	var out bytes.Buffer
	PrintBoxedHeader(&out, "WORKOUTS")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "WORKOUTS")
}
