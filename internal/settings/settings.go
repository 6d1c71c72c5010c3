// Package settings holds the overlay's shared window configuration: the
// appearance the settings panel edits and the size resize gestures write
// back. The Store is the single owner; every reader works from snapshots.
package settings

import (
	"math"
	"sync"
)

// Ranges enforced on every write.
const (
	MinOpacity      = 0.0
	MaxOpacity      = 1.0
	MinCornerRadius = 0.0
	MaxCornerRadius = 10.0
	MinSize         = 100.0
	MaxSize         = math.MaxUint16 // X11 window sizes are 16-bit
)

// Settings is a snapshot of the window configuration.
type Settings struct {
	Color        Color   `json:"color" yaml:"color"`
	Opacity      float64 `json:"opacity" yaml:"opacity"`
	CornerRadius float64 `json:"corner_radius" yaml:"corner_radius"`
	Width        float64 `json:"width" yaml:"width"`
	Height       float64 `json:"height" yaml:"height"`
}

// Defaults returns the configuration a fresh overlay starts with.
func Defaults() Settings {
	return Settings{
		Color:        Black,
		Opacity:      0.5,
		CornerRadius: 0,
		Width:        1000,
		Height:       200,
	}
}

// Normalize clamps every field into its allowed range.
func (s Settings) Normalize() Settings {
	s.Opacity = clamp(s.Opacity, MinOpacity, MaxOpacity)
	s.CornerRadius = clamp(s.CornerRadius, MinCornerRadius, MaxCornerRadius)
	s.Width = clamp(s.Width, MinSize, MaxSize)
	s.Height = clamp(s.Height, MinSize, MaxSize)
	return s
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return max(lo, min(v, hi))
}

// Appearance is a partial update of the user-editable fields. Nil fields are
// left unchanged.
type Appearance struct {
	Color        *Color   `json:"color,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`
	CornerRadius *float64 `json:"corner_radius,omitempty"`
}

// Empty reports whether the update changes nothing.
func (a Appearance) Empty() bool {
	return a.Color == nil && a.Opacity == nil && a.CornerRadius == nil
}

func (a Appearance) apply(s Settings) Settings {
	if a.Color != nil {
		s.Color = *a.Color
	}
	if a.Opacity != nil {
		s.Opacity = *a.Opacity
	}
	if a.CornerRadius != nil {
		s.CornerRadius = *a.CornerRadius
	}
	return s
}

// Observer is notified after every change with the new snapshot. Observers
// run on the goroutine that made the change and must not block.
type Observer func(Settings)

// Store owns the live configuration. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	current   Settings
	observers []Observer
}

// NewStore creates a store seeded with initial (normalized).
func NewStore(initial Settings) *Store {
	return &Store{current: initial.Normalize()}
}

// Snapshot returns the current configuration.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn for change notifications.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// SetAppearance applies a partial appearance update and returns the result.
func (s *Store) SetAppearance(a Appearance) Settings {
	return s.update(a.apply)
}

// SetSize records the overlay's current size.
func (s *Store) SetSize(width, height float64) Settings {
	return s.update(func(cur Settings) Settings {
		cur.Width = width
		cur.Height = height
		return cur
	})
}

func (s *Store) update(fn func(Settings) Settings) Settings {
	s.mu.Lock()
	prev := s.current
	next := fn(prev).Normalize()
	s.current = next
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	if next == prev {
		return next
	}
	for _, obs := range observers {
		obs(next)
	}
	return next
}
