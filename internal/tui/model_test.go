package tui

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/statview/internal/controller"
	"github.com/tinytelemetry/statview/internal/model"
	"github.com/tinytelemetry/statview/internal/registry"
)

type stubTransport struct{}

func (stubTransport) Get(context.Context, string, url.Values) (*model.DataEnvelope, error) {
	var env model.DataEnvelope
	env.Data.Data = map[string]any{"type": "count", "value": 1.0}
	return &env, nil
}

type wallStub struct{ n int64 }

func (w *wallStub) Now() int64 { w.n++; return w.n }

func testReports() []model.ReportDescriptor {
	return []model.ReportDescriptor{
		{Name: "ClientsByVersion", Type: model.ReportTypeClient, RequiresTimeRange: true},
		{Name: "ServerLoad", Type: model.ReportTypeServer},
	}
}

func newTestModel(t *testing.T) *DashboardModel {
	t.Helper()
	ctrl := controller.New(
		controller.Config{DefaultStartTime: 1, DefaultDuration: model.OneWeekSeconds},
		registry.NewStatic(testReports()...),
		stubTransport{},
		&wallStub{},
	)
	t.Cleanup(ctrl.Close)
	return NewDashboardModel(ctrl, testReports(), time.Millisecond)
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestCycleReportWraps(t *testing.T) {
	m := newTestModel(t)

	if m.SelectedReport().Name != "ClientsByVersion" {
		t.Fatalf("initial selection = %s", m.SelectedReport().Name)
	}

	m.Update(key("tab"))
	if m.SelectedReport().Name != "ServerLoad" {
		t.Errorf("after tab: %s, want ServerLoad", m.SelectedReport().Name)
	}

	m.Update(key("tab"))
	if m.SelectedReport().Name != "ClientsByVersion" {
		t.Errorf("tab did not wrap: %s", m.SelectedReport().Name)
	}

	m.Update(key("shift+tab"))
	if m.SelectedReport().Name != "ServerLoad" {
		t.Errorf("shift+tab did not wrap backwards: %s", m.SelectedReport().Name)
	}
}

func TestCommitDurationEdit(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("2"))
	if m.focused != inputDuration {
		t.Fatalf("focused = %d, want duration input", m.focused)
	}

	for _, r := range "3600" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(key("enter"))

	if m.focused != -1 {
		t.Errorf("input still focused after commit")
	}
	if m.inputErr != "" {
		t.Errorf("unexpected input error: %s", m.inputErr)
	}
}

func TestCommitRejectsNonNumeric(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("1"))
	for _, r := range "soon" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(key("enter"))

	if m.inputErr == "" {
		t.Error("expected a parse error for non-numeric start time")
	}
	if m.focused != inputStartTime {
		t.Errorf("focus lost on invalid input: %d", m.focused)
	}

	m.Update(key("esc"))
	if m.focused != -1 || m.inputErr != "" {
		t.Errorf("esc did not reset input state: focused=%d err=%q", m.focused, m.inputErr)
	}
}

func TestViewRendersAllStates(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	out := m.View()
	if !strings.Contains(out, "ClientsByVersion") {
		t.Error("picker missing from view")
	}
	if !strings.Contains(out, "no data yet") {
		t.Error("empty data pane missing from view")
	}

	// Loaded snapshot with a chartable series.
	m.snap = controller.Snapshot{
		View: controller.View{
			Phase: model.PhaseLoaded,
			StrippedData: map[string]any{
				"series": []any{
					map[string]any{"label": "4.1.1", "value": 476.0},
					map[string]any{"label": "4.1.2", "value": 94.0},
				},
			},
		},
		Label: "Client",
	}
	out = m.View()
	if !strings.Contains(out, "Client") {
		t.Error("derived label missing from status line")
	}
	if !strings.Contains(out, "4.1.1: 476") {
		t.Error("series legend missing from data pane")
	}
}

func TestExtractSeries(t *testing.T) {
	points, ok := extractSeries(map[string]any{
		"series": []any{
			map[string]any{"label": "a", "value": 1.0},
			map[string]any{"label": "b", "value": 2.0},
		},
	})
	if !ok || len(points) != 2 || points[1].Label != "b" || points[1].Value != 2.0 {
		t.Fatalf("extractSeries = %+v, %v", points, ok)
	}

	if _, ok := extractSeries("scalar"); ok {
		t.Error("scalar payload treated as series")
	}
	if _, ok := extractSeries(map[string]any{"series": []any{"not a row"}}); ok {
		t.Error("malformed row treated as series")
	}
	if _, ok := extractSeries(map[string]any{"series": []any{map[string]any{"label": "x", "value": "NaN"}}}); ok {
		t.Error("non-numeric value treated as series")
	}
}
