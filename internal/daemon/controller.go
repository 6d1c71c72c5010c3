package daemon

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/1broseidon/subcover/internal/config"
	"github.com/1broseidon/subcover/internal/host"
	"github.com/1broseidon/subcover/internal/hotkeys"
	"github.com/1broseidon/subcover/internal/ipc"
	"github.com/1broseidon/subcover/internal/settings"
)

type surface interface {
	Show()
	Hide()
}

type runner interface {
	Do(ctx context.Context, fn func()) error
}

// controller implements both the IPC controller and the hotkey actions.
// Hotkey callbacks already run on the loop goroutine; IPC calls are
// marshalled onto it through loop.Do.
type controller struct {
	surf            surface
	loop            runner
	store           *settings.Store
	status          func() host.Status
	configPath      string
	settingsCommand string
	cancel          context.CancelFunc
	logger          *slog.Logger

	visible atomic.Bool
}

var (
	_ ipc.Controller  = (*controller)(nil)
	_ hotkeys.Actions = (*controller)(nil)
)

func (c *controller) Visible() bool {
	return c.visible.Load()
}

func (c *controller) SetVisible(ctx context.Context, visible bool) error {
	return c.loop.Do(ctx, func() { c.setVisible(visible) })
}

func (c *controller) setVisible(visible bool) {
	if visible {
		c.surf.Show()
	} else {
		c.surf.Hide()
	}
	c.visible.Store(visible)
	c.logger.Info("overlay visibility changed", "visible", visible)
}

func (c *controller) Gesture() ipc.GestureInfo {
	st := c.status()
	return ipc.GestureInfo{
		Mode:   st.Mode,
		Edge:   st.Edge,
		X:      st.X,
		Y:      st.Y,
		Width:  st.Width,
		Height: st.Height,
	}
}

// Reload applies the appearance from the config file. Geometry in the file
// is startup-only and ignored here.
func (c *controller) Reload() (settings.Settings, error) {
	res, err := config.LoadFromPath(c.configPath)
	if err != nil {
		return settings.Settings{}, err
	}
	next := c.store.SetAppearance(res.Config.AppearanceUpdate())
	c.logger.Info("appearance reloaded", "path", c.configPath, "color", next.Color.String(), "opacity", next.Opacity)
	return next, nil
}

func (c *controller) Quit() {
	c.logger.Info("quit requested")
	c.cancel()
}

func (c *controller) ToggleVisible() {
	c.setVisible(!c.visible.Load())
}

func (c *controller) OpenSettings() {
	if c.settingsCommand == "" {
		return
	}
	if err := hotkeys.Launch(c.settingsCommand, c.logger); err != nil {
		c.logger.Warn("failed to open settings", "error", err)
	}
}
