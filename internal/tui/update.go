package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles input, resize, and poll ticks.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.snap = m.ctrl.Snapshot()
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focused >= 0 {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.cycleReport(1)
		return m, nil

	case "shift+tab":
		m.cycleReport(-1)
		return m, nil

	case "enter":
		if d := m.SelectedReport(); d != nil {
			m.ctrl.SelectReport(d.Name)
		}
		return m, nil

	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		m.focusInput(idx)
		return m, textinput.Blink

	case "r":
		m.ctrl.Refresh()
		return m, nil
	}
	return m, nil
}

// handleInputKey routes keys into the focused parameter input. Enter
// commits the value as a pending edit; escape abandons it.
func (m *DashboardModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.blurInput()
		return m, nil

	case "enter":
		m.commitInput()
		return m, nil

	default:
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
}

func (m *DashboardModel) cycleReport(dir int) {
	if len(m.reports) == 0 {
		return
	}
	m.selected = (m.selected + dir + len(m.reports)) % len(m.reports)
}

func (m *DashboardModel) focusInput(idx int) {
	m.inputErr = ""
	m.focused = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *DashboardModel) blurInput() {
	if m.focused >= 0 {
		m.inputs[m.focused].Blur()
	}
	m.focused = -1
	m.inputErr = ""
}

// commitInput stages the focused input's value on the controller. Edits
// only reach the parameter store on refresh.
func (m *DashboardModel) commitInput() {
	value := m.inputs[m.focused].Value()

	switch m.focused {
	case inputStartTime:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			m.inputErr = "start time must be an integer"
			return
		}
		m.ctrl.SetPendingStartTime(v)
	case inputDuration:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			m.inputErr = "duration must be an integer"
			return
		}
		m.ctrl.SetPendingDuration(v)
	case inputClientLabel:
		m.ctrl.SetPendingClientLabel(value)
	}

	m.blurInput()
}
