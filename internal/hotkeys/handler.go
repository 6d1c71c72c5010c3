// Package hotkeys registers the daemon's global keyboard shortcuts.
package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Actions are the operations bound to hotkeys. Callbacks run on the X event
// loop goroutine.
type Actions interface {
	ToggleVisible()
	OpenSettings()
	Quit()
}

// Bindings holds key sequences in xgbutil keybind syntax, e.g.
// "Mod4-Mod1-s". Empty sequences are not registered.
type Bindings struct {
	Toggle   string
	Settings string
	Quit     string
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(xu *xgbutil.XUtil, root xproto.Window, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})
	return &Handler{xu: xu, root: root, logger: logger}
}

// Register binds every non-empty sequence in b to its action.
func (h *Handler) Register(b Bindings, actions Actions) error {
	for _, entry := range []struct {
		name string
		seq  string
		fn   func()
	}{
		{"toggle", b.Toggle, actions.ToggleVisible},
		{"settings", b.Settings, actions.OpenSettings},
		{"quit", b.Quit, actions.Quit},
	} {
		if entry.seq == "" {
			continue
		}
		name, fn := entry.name, entry.fn
		if err := h.RegisterFunc(entry.seq, func() {
			h.logger.Debug("hotkey triggered", "action", name)
			fn()
		}); err != nil {
			return fmt.Errorf("failed to register %s hotkey %q: %w", name, entry.seq, err)
		}
		h.logger.Info("hotkey registered", "action", name, "keys", entry.seq)
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = ignoreMasks(base)
}

// ignoreMasks returns every combination of the given lock masks, including
// the empty one.
func ignoreMasks(base []uint16) []uint16 {
	out := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		out = append(out, mask)
	}
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
