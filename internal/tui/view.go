package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/statview/internal/model"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	width := m.width
	if width < 40 {
		width = 80
	}

	sections := []string{
		m.renderPicker(width),
		m.renderParams(width),
		m.renderStatus(),
		m.renderData(width),
		helpStyle.Render("tab: pick report  enter: load  1/2/3: edit params  r: refresh  q: quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) renderPicker(width int) string {
	if len(m.reports) == 0 {
		return sectionStyle.Width(width - 2).Render(helpStyle.Render("no reports available"))
	}

	names := make([]string, len(m.reports))
	for i, d := range m.reports {
		label := d.Name
		if i == m.selected {
			label = selectedStyle.Render("[" + label + "]")
		}
		names[i] = label
	}

	line := titleStyle.Render("Reports ") + strings.Join(names, "  ")
	if summary := m.reports[m.selected].Summary; summary != "" {
		line += "\n" + helpStyle.Render(summary)
	}
	return sectionStyle.Width(width - 2).Render(line)
}

func (m *DashboardModel) renderParams(width int) string {
	labels := [inputCount]string{"1 start", "2 duration", "3 label"}
	fields := make([]string, 0, inputCount+1)
	for i := range m.inputs {
		fields = append(fields, labels[i]+" "+m.inputs[i].View())
	}
	line := strings.Join(fields, "   ")
	if m.inputErr != "" {
		line += "\n" + errorStyle.Render(m.inputErr)
	}
	return sectionStyle.Width(width - 2).Render(line)
}

func (m *DashboardModel) renderStatus() string {
	title := m.snap.Label
	if title == "" {
		title = "No report loaded"
	}
	if m.snap.Descriptor != nil {
		title += " · " + m.snap.Descriptor.Name
	}

	var phase string
	switch m.snap.View.Phase {
	case model.PhaseLoading:
		frame := spinnerFrames[time.Now().UnixMilli()/120%int64(len(spinnerFrames))]
		phase = phaseLoadingStyle.Render(frame + " loading")
	case model.PhaseLoaded:
		phase = phaseLoadedStyle.Render("loaded")
	default:
		phase = helpStyle.Render("idle")
	}

	return titleStyle.Render(title) + "  " + phase
}

func (m *DashboardModel) renderData(width int) string {
	if m.snap.View.StrippedData == nil {
		return sectionStyle.Width(width - 2).Render(helpStyle.Render("no data yet"))
	}

	if points, ok := extractSeries(m.snap.View.StrippedData); ok && len(points) > 0 {
		return sectionStyle.Width(width - 2).Render(renderSeriesChart(points, width-6))
	}

	raw, err := yaml.Marshal(m.snap.View.StrippedData)
	if err != nil {
		return sectionStyle.Width(width - 2).Render(errorStyle.Render(fmt.Sprintf("render: %v", err)))
	}
	return sectionStyle.Width(width - 2).Render(clampLines(string(raw), 16))
}

func clampLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	clipped := append(lines[:n:n], helpStyle.Render(fmt.Sprintf("… %d more lines", len(lines)-n)))
	return strings.Join(clipped, "\n")
}
