// Package daemon wires the overlay, its gesture binding, hotkeys and the IPC
// server into one supervised process.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/1broseidon/subcover/internal/config"
	"github.com/1broseidon/subcover/internal/host"
	"github.com/1broseidon/subcover/internal/hotkeys"
	"github.com/1broseidon/subcover/internal/ipc"
	"github.com/1broseidon/subcover/internal/overlay"
	"github.com/1broseidon/subcover/internal/settings"
	"github.com/1broseidon/subcover/internal/transform"
	"github.com/1broseidon/subcover/internal/x11"
)

// Options configure a daemon run.
type Options struct {
	Config *config.Config
	// ConfigPath is re-read on RELOAD.
	ConfigPath string
	SocketPath string
	Logger     *slog.Logger
}

// Run shows the overlay and serves until ctx is cancelled or QUIT is
// received. Losing the X connection ends the process from inside xgbutil;
// the next start clears the stale socket.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	display, err := x11.ApplySessionEnv(cfg.Display, cfg.XAuthority)
	if err != nil {
		return err
	}
	logger.Info("connecting to X server", "display", display)

	conn, err := x11.NewConnection(display)
	if err != nil {
		return err
	}
	defer conn.Close()

	store := settings.NewStore(cfg.InitialSettings())
	initial := store.Snapshot()

	x, y := cfg.Window.X, cfg.Window.Y
	if area, err := conn.VisibleAreaAt(x, y); err != nil {
		logger.Warn("failed to query visible area, using configured position", "error", err)
	} else {
		x, y = startPosition(x, y, initial, area)
	}

	surf, err := overlay.New(conn.XUtil, conn.Root, x, y, initial, logger)
	if err != nil {
		return err
	}
	defer surf.Destroy()

	binding := host.NewBinding(surf, conn, store, host.LoadCursors(conn.XUtil, logger), logger)
	binding.Attach(conn.XUtil)
	loop := host.NewLoop(conn.XUtil, surf, store, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl := &controller{
		surf:            surf,
		loop:            loop,
		store:           store,
		status:          binding.Status,
		configPath:      opts.ConfigPath,
		settingsCommand: cfg.SettingsCommand,
		cancel:          cancel,
		logger:          logger,
	}

	hk := hotkeys.NewHandler(conn.XUtil, conn.Root, logger)
	if err := hk.Register(hotkeys.Bindings{
		Toggle:   cfg.ToggleHotkey,
		Settings: cfg.SettingsHotkey,
		Quit:     cfg.QuitHotkey,
	}, ctrl); err != nil {
		logger.Warn("hotkeys unavailable", "error", err)
	}

	ctrl.setVisible(true)

	srv, err := ipc.NewServer(opts.SocketPath, store, ctrl, logger)
	if err != nil {
		return err
	}

	sup := newSupervisor(logger)
	sup.Add(service{loop})
	sup.Add(service{srv})

	logger.Info("subcover running", "pid", os.Getpid(), "socket", opts.SocketPath,
		"x", x, "y", y, "width", initial.Width, "height", initial.Height)

	if err := sup.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("subcover stopped")
	return nil
}

// startPosition pulls the configured top-left corner inside area so the
// overlay never starts off screen. Clamping is per axis, so root (y-down)
// coordinates work unchanged.
func startPosition(x, y int, s settings.Settings, area x11.Monitor) (int, int) {
	visible := transform.Rect{
		X:      float64(area.X),
		Y:      float64(area.Y),
		Width:  float64(area.Width),
		Height: float64(area.Height),
	}
	p := transform.ClampOrigin(transform.Point{X: float64(x), Y: float64(y)}, s.Width, s.Height, visible)
	return int(p.X), int(p.Y)
}
