// Package tui is the terminal dashboard bound to the report controller:
// a report picker, the three parameter inputs, the fetch phase, and the
// stripped data projection rendered as a chart or raw YAML.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/statview/internal/controller"
	"github.com/tinytelemetry/statview/internal/model"
)

// Input slots, in focus order.
const (
	inputStartTime = iota
	inputDuration
	inputClientLabel
	inputCount
)

// DashboardModel is the bubbletea model for the report dashboard.
type DashboardModel struct {
	ctrl     *controller.Controller
	reports  []model.ReportDescriptor
	selected int

	inputs   [inputCount]textinput.Model
	focused  int // -1 when no input is focused
	inputErr string

	snap           controller.Snapshot
	updateInterval time.Duration

	width  int
	height int
}

// NewDashboardModel binds a dashboard to ctrl. The reports slice drives
// the picker; the first entry is highlighted but nothing is fetched until
// the user picks it.
func NewDashboardModel(ctrl *controller.Controller, reports []model.ReportDescriptor, updateInterval time.Duration) *DashboardModel {
	if updateInterval <= 0 {
		updateInterval = model.DefaultUpdateInterval
	}

	m := &DashboardModel{
		ctrl:           ctrl,
		reports:        reports,
		focused:        -1,
		updateInterval: updateInterval,
	}

	placeholders := [inputCount]string{"start time (epoch s)", "duration (s)", "client label"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 64
		in.Width = 24
		m.inputs[i] = in
	}
	return m
}

// SelectedReport returns the descriptor under the picker, or nil when no
// reports are available.
func (m *DashboardModel) SelectedReport() *model.ReportDescriptor {
	if len(m.reports) == 0 {
		return nil
	}
	return &m.reports[m.selected]
}

// tickMsg drives snapshot polling and the loading spinner.
type tickMsg struct{}

func (m *DashboardModel) tick() tea.Cmd {
	return tea.Tick(m.updateInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Init starts the poll loop.
func (m *DashboardModel) Init() tea.Cmd {
	return m.tick()
}
