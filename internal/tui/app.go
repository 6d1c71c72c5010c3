package tui

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/subcover/internal/ipc"
	"github.com/1broseidon/subcover/internal/settings"
)

const (
	opacityStep = 0.05
	radiusStep  = 1.0
)

// settingsMsg carries the daemon's settings after a fetch or update. seq
// orders replies; zero marks the initial fetch.
type settingsMsg struct {
	seq      int
	settings settings.Settings
	err      error
}

// savedMsg reports the outcome of writing the config file.
type savedMsg struct {
	path string
	err  error
}

// model is the root bubbletea model for the panel.
type model struct {
	client     Client
	configPath string

	current   settings.Settings
	connected bool
	loaded    bool
	status    string
	lastError string
	fatalErr  error

	editing bool
	form    *appearanceForm

	// Requests reach the daemon in issue order: each one waits for prev.
	// seq numbers them so a late reply cannot undo a newer one.
	seq  int
	prev chan struct{}

	width  int
	height int
}

func newModel(client Client, configPath string) model {
	return model{client: client, configPath: configPath}
}

func (m *model) request(fn func() (settings.Settings, error)) tea.Cmd {
	m.seq++
	seq := m.seq
	prev, done := m.prev, make(chan struct{})
	m.prev = done
	return func() tea.Msg {
		defer close(done)
		if prev != nil {
			<-prev
		}
		s, err := fn()
		return settingsMsg{seq: seq, settings: s, err: err}
	}
}

func (m *model) fetch() tea.Cmd {
	return m.request(m.client.GetSettings)
}

func (m *model) push(p ipc.SetSettingsPayload) tea.Cmd {
	client := m.client
	return m.request(func() (settings.Settings, error) {
		return client.SetSettings(p)
	})
}

func (m model) save() tea.Cmd {
	path, s := m.configPath, m.current
	return func() tea.Msg {
		saved, err := saveAppearance(path, s)
		return savedMsg{path: saved, err: err}
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		s, err := client.GetSettings()
		return settingsMsg{settings: s, err: err}
	}
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case settingsMsg:
		if msg.seq < m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.connected = false
			m.lastError = msg.err.Error()
			return m, nil
		}
		m.current = msg.settings
		m.connected = true
		m.loaded = true
		m.lastError = ""
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.lastError = fmt.Sprintf("save failed: %v", msg.err)
			m.status = ""
		} else {
			m.lastError = ""
			m.status = "Saved to " + msg.path
		}
		return m, nil
	}

	if m.editing {
		return m.updateEditing(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r":
		m.status = ""
		return m, m.fetch()
	}
	if !m.loaded {
		return m, nil
	}

	switch km.String() {
	case "left", "h":
		return m.adjustOpacity(-opacityStep)
	case "right", "l":
		return m.adjustOpacity(opacityStep)
	case "down", "j":
		return m.adjustRadius(-radiusStep)
	case "up", "k":
		return m.adjustRadius(radiusStep)
	case "e":
		m.form = newAppearanceForm(m.current, m.width)
		m.editing = true
		m.status = ""
		return m, m.form.form.Init()
	case "s":
		m.status = "Saving..."
		return m, m.save()
	}
	return m, nil
}

func (m model) adjustOpacity(delta float64) (tea.Model, tea.Cmd) {
	v := clampStep(m.current.Opacity+delta, settings.MinOpacity, settings.MaxOpacity)
	if v == m.current.Opacity {
		return m, nil
	}
	m.current.Opacity = v
	m.status = ""
	return m, m.push(ipc.SetSettingsPayload{Opacity: &v})
}

func (m model) adjustRadius(delta float64) (tea.Model, tea.Cmd) {
	v := clampStep(m.current.CornerRadius+delta, settings.MinCornerRadius, settings.MaxCornerRadius)
	if v == m.current.CornerRadius {
		return m, nil
	}
	m.current.CornerRadius = v
	m.status = ""
	return m, m.push(ipc.SetSettingsPayload{CornerRadius: &v})
}

// clampStep rounds to two decimals so repeated steps do not drift.
func clampStep(v, lo, hi float64) float64 {
	v = math.Round(v*100) / 100
	return max(lo, min(v, hi))
}

func (m model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.editing = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}

	switch m.form.form.State {
	case huh.StateCompleted:
		p, err := m.form.payload()
		m.editing = false
		m.form = nil
		if err != nil {
			m.lastError = err.Error()
			return m, nil
		}
		return m, m.push(p)
	case huh.StateAborted:
		m.editing = false
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	statusBar := renderStatusBar(m.connected, m.width)
	helpBar := renderHelpBar(m.editing, m.width)

	var content string
	switch {
	case m.editing && m.form != nil:
		content = m.viewEditing()
	case !m.loaded:
		content = m.viewDisconnected()
	default:
		content = m.viewSettings()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		content,
		helpBar,
	)
}

func (m model) viewSettings() string {
	s := m.current
	lines := []string{
		"",
		row("Color", s.Color.String()+"  "+renderSwatch(s.Color, 6)),
		row("Opacity", fmt.Sprintf("%.2f", s.Opacity)+"  "+renderGauge(s.Opacity, settings.MaxOpacity, 20)),
		row("Corner Radius", fmt.Sprintf("%.0f", s.CornerRadius)+"  "+renderGauge(s.CornerRadius, settings.MaxCornerRadius, 20)),
		row("Size", fmt.Sprintf("%.0f x %.0f", s.Width, s.Height)),
		"",
	}
	if m.status != "" {
		lines = append(lines, okStyle.Render("  "+m.status))
	}
	if m.lastError != "" {
		lines = append(lines, errStyle.Render("  "+m.lastError))
	}
	return contentStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m model) viewDisconnected() string {
	msg := "Connecting to daemon..."
	if m.lastError != "" {
		msg = m.lastError + "\n\nStart it with 'subcover run', then press r."
	}
	return contentStyle.Render(dimStyle.Render(msg))
}

func (m model) viewEditing() string {
	header := headerStyle.Render("Editing Appearance") + dimStyle.Render("  (esc to cancel)")
	return contentStyle.Render(header + "\n\n" + m.form.form.View())
}
