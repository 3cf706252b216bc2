// Package terminal renders the map, the workout list and the form as text.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/mapty/internal/controller"
	"github.com/misterclayt0n/mapty/internal/models"
)

var (
	_ controller.MapRenderer  = (*MapView)(nil)
	_ controller.ListRenderer = (*ListView)(nil)
	_ controller.Form         = (*Form)(nil)
	_ controller.Confirmer    = (*Prompt)(nil)
	_ controller.Alerter      = (*Alerter)(nil)
)

var (
	cyanBold   = color.New(color.FgCyan, color.Bold)
	yellowBold = color.New(color.FgYellow, color.Bold)
	green      = color.New(color.FgGreen)
	orange     = color.New(color.FgHiYellow)
	red        = color.New(color.FgRed, color.Bold)
	faint      = color.New(color.Faint)
)

// popupColor picks the color for a marker style tag.
func popupColor(class string) *color.Color {
	switch class {
	case "running-popup":
		return green
	case "cycling-popup":
		return orange
	default:
		return faint
	}
}

// PrintBoxedHeader prints the title in a Unicode box with a fixed width.
func PrintBoxedHeader(w io.Writer, title string) {
	width := 40
	border := strings.Repeat("═", width)
	cyanBold.Fprintln(w, "╔"+border+"╗")
	cyanBold.Fprintln(w, "║"+centerText(title, width)+"║")
	cyanBold.Fprintln(w, "╚"+border+"╝")
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// MapView keeps markers in memory and prints every change.
type MapView struct {
	out     io.Writer
	center  models.Coordinates
	zoom    int
	handler func(models.Coordinates)
	markers []string
}

func NewMapView(out io.Writer) *MapView {
	return &MapView{out: out}
}

func (m *MapView) Init(center models.Coordinates, zoom int) error {
	m.center, m.zoom = center, zoom
	fmt.Fprintf(m.out, "🗺  Map centered at %s (zoom %d)\n", center, zoom)
	return nil
}

func (m *MapView) OnClick(handler func(models.Coordinates)) {
	m.handler = handler
}

// Click delivers a click at coords to the registered handler.
func (m *MapView) Click(coords models.Coordinates) error {
	if m.handler == nil {
		return controller.ErrMapNotReady
	}
	m.handler(coords)
	return nil
}

func (m *MapView) PlaceMarker(w models.Workout, popup, class string) error {
	m.markers = append(m.markers, w.ID)
	fmt.Fprintf(m.out, "📍 [%s] %s\n", w.Coords, popupColor(class).Sprint(popup))
	return nil
}

func (m *MapView) PanTo(coords models.Coordinates, zoom int) error {
	m.center, m.zoom = coords, zoom
	fmt.Fprintf(m.out, "↦  Panned to %s (zoom %d)\n", coords, zoom)
	return nil
}

func (m *MapView) Reset() {
	m.markers = nil
}

// Center is the coordinate the map is currently centered on.
func (m *MapView) Center() models.Coordinates {
	return m.center
}

// Markers returns the ids of the workouts currently marked.
func (m *MapView) Markers() []string {
	return append([]string(nil), m.markers...)
}

// ListView prints one summary row per workout.
type ListView struct {
	out io.Writer
}

func NewListView(out io.Writer) *ListView {
	return &ListView{out: out}
}

func (l *ListView) RenderRow(w models.Workout) {
	metric, metricUnit := w.Metric()
	detail, detailUnit := w.Detail()
	detailIcon := "🦶🏼"
	if w.Type == models.KindCycling {
		detailIcon = "⛰"
	}

	fmt.Fprintf(l.out, "%s %s\n",
		popupColor(w.PopupClass()).Sprint(w.Description),
		faint.Sprintf("(id %s)", w.ID))
	fmt.Fprintf(l.out, "   %s %s km   ⏱ %s min   ⚡️ %s %s   %s %s %s\n",
		w.Icon(),
		yellowBold.Sprint(formatNumber(w.Distance)),
		yellowBold.Sprint(formatNumber(w.Duration)),
		yellowBold.Sprintf("%.1f", metric), metricUnit,
		detailIcon, yellowBold.Sprint(formatNumber(detail)), detailUnit,
	)
}

func (l *ListView) RemoveRow(id string) {
	fmt.Fprintf(l.out, "🗑  Removed workout %s\n", id)
}

func (l *ListView) ClearRows() {}

func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}

// Form holds the field values the user passed on the command line.
type Form struct {
	values           controller.Submission
	visible          bool
	elevationVisible bool
}

func NewForm() *Form {
	return &Form{values: controller.Submission{Type: string(models.KindRunning)}}
}

// Fill sets the field values as if typed by the user.
func (f *Form) Fill(values controller.Submission) {
	f.values = values
}

func (f *Form) Show() { f.visible = true }
func (f *Form) Hide() { f.visible = false }

func (f *Form) Clear() {
	f.values = controller.Submission{Type: f.values.Type}
}

func (f *Form) ToggleElevationField(kind models.Kind) {
	f.elevationVisible = kind == models.KindCycling
}

func (f *Form) Values() controller.Submission { return f.values }
func (f *Form) Visible() bool                 { return f.visible }

// ElevationVisible reports whether the elevation input replaces cadence.
func (f *Form) ElevationVisible() bool { return f.elevationVisible }

// Prompt asks yes/no questions on a reader. AssumeYes skips the question.
type Prompt struct {
	in        *bufio.Reader
	out       io.Writer
	AssumeYes bool
}

func NewPrompt(in io.Reader, out io.Writer, assumeYes bool) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out, AssumeYes: assumeYes}
}

func (p *Prompt) Confirm(ctx context.Context, message string) (bool, error) {
	if p.AssumeYes {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(p.out, "%s [y/N] ", yellowBold.Sprint(message))
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Alerter prints messages in red.
type Alerter struct {
	out io.Writer
}

func NewAlerter(out io.Writer) *Alerter {
	return &Alerter{out: out}
}

func (a *Alerter) Alert(message string) {
	red.Fprintf(a.out, "⚠  %s\n", message)
}
