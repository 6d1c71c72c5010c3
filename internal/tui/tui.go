// Package tui is the interactive settings panel. It edits the running
// overlay over IPC and can persist the appearance to the config file.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/subcover/internal/ipc"
	"github.com/1broseidon/subcover/internal/settings"
)

// Client is the subset of the IPC client the panel needs.
type Client interface {
	GetSettings() (settings.Settings, error)
	SetSettings(p ipc.SetSettingsPayload) (settings.Settings, error)
}

var _ Client = (*ipc.Client)(nil)

// Run starts the panel. configPath may be empty for the default location.
func Run(client Client, configPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("settings panel requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(client, configPath), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}
