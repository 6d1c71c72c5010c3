package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/subcover/internal/settings"
)

// Appearance holds the user-editable look of the overlay. It is the only part
// of the config the settings panel writes back.
type Appearance struct {
	Color        settings.Color `yaml:"color"`
	Opacity      float64        `yaml:"opacity"`       // 0-1
	CornerRadius float64        `yaml:"corner_radius"` // 0-10
}

// Window is the overlay's geometry at startup. It is read once and never
// saved; moves and resizes last only for the life of the process.
type Window struct {
	X      int `yaml:"x"` // left edge, root window pixels
	Y      int `yaml:"y"` // top edge, root window pixels
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config holds the application configuration.
type Config struct {
	Appearance      Appearance `yaml:"appearance"`
	Window          Window     `yaml:"window"`
	ToggleHotkey    string     `yaml:"toggle_hotkey"`
	SettingsHotkey  string     `yaml:"settings_hotkey"`
	QuitHotkey      string     `yaml:"quit_hotkey"`
	SettingsCommand string     `yaml:"settings_command"`
	Display         string     `yaml:"display,omitempty"`
	XAuthority      string     `yaml:"xauthority,omitempty"`
	LogLevel        string     `yaml:"log_level"`
}

func DefaultConfig() *Config {
	def := settings.Defaults()
	return &Config{
		Appearance: Appearance{
			Color:        def.Color,
			Opacity:      def.Opacity,
			CornerRadius: def.CornerRadius,
		},
		Window: Window{
			X:      100,
			Y:      100,
			Width:  int(def.Width),
			Height: int(def.Height),
		},
		ToggleHotkey:    "Mod4-Mod1-s",     // Super+Alt+S to show/hide
		SettingsHotkey:  "Mod4-Mod1-comma", // Super+Alt+, for settings
		QuitHotkey:      "",
		SettingsCommand: "x-terminal-emulator -e {{exe}} settings",
		LogLevel:        "info",
	}
}

// InitialSettings builds the shared window configuration the daemon starts
// with.
func (c *Config) InitialSettings() settings.Settings {
	return settings.Settings{
		Color:        c.Appearance.Color,
		Opacity:      c.Appearance.Opacity,
		CornerRadius: c.Appearance.CornerRadius,
		Width:        float64(c.Window.Width),
		Height:       float64(c.Window.Height),
	}.Normalize()
}

// AppearanceUpdate returns the appearance as a full settings update.
func (c *Config) AppearanceUpdate() settings.Appearance {
	a := c.Appearance
	return settings.Appearance{
		Color:        &a.Color,
		Opacity:      &a.Opacity,
		CornerRadius: &a.CornerRadius,
	}
}

// SetAppearance copies the user-editable fields from a live snapshot.
func (c *Config) SetAppearance(s settings.Settings) {
	c.Appearance = Appearance{
		Color:        s.Color,
		Opacity:      s.Opacity,
		CornerRadius: s.CornerRadius,
	}
}

// ValidationError points at the offending config key.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (c *Config) Validate() error {
	a := c.Appearance
	if a.Opacity < settings.MinOpacity || a.Opacity > settings.MaxOpacity {
		return &ValidationError{Path: "appearance.opacity", Err: fmt.Errorf("opacity must be between 0 and 1")}
	}
	if a.CornerRadius < settings.MinCornerRadius || a.CornerRadius > settings.MaxCornerRadius {
		return &ValidationError{Path: "appearance.corner_radius", Err: fmt.Errorf("corner_radius must be between 0 and 10")}
	}
	if c.Window.Width < settings.MinSize || c.Window.Width > settings.MaxSize {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be between %d and %d", int(settings.MinSize), int(settings.MaxSize))}
	}
	if c.Window.Height < settings.MinSize || c.Window.Height > settings.MaxSize {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be between %d and %d", int(settings.MinSize), int(settings.MaxSize))}
	}
	if c.SettingsHotkey != "" && strings.TrimSpace(c.SettingsCommand) == "" {
		return &ValidationError{Path: "settings_command", Err: fmt.Errorf("settings_command is required when settings_hotkey is set")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

// SaveTo validates and writes the config to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
