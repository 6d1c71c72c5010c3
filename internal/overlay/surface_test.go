package overlay

import (
	"testing"

	"github.com/1broseidon/subcover/internal/settings"
)

func TestDiff(t *testing.T) {
	base := settings.Defaults()

	tests := []struct {
		name   string
		mutate func(*settings.Settings)
		first  bool
		want   change
	}{
		{"first render pushes everything", func(*settings.Settings) {}, true, changeSize | changeColor | changeOpacity | changeShape},
		{"unchanged snapshot is skipped", func(*settings.Settings) {}, false, 0},
		{"resize reshapes", func(s *settings.Settings) { s.Width = 1050 }, false, changeSize | changeShape},
		{"color only", func(s *settings.Settings) { s.Color = 0xffffff }, false, changeColor},
		{"opacity only", func(s *settings.Settings) { s.Opacity = 0 }, false, changeOpacity},
		{"radius only", func(s *settings.Settings) { s.CornerRadius = 4 }, false, changeShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := base
			tt.mutate(&next)
			if got := diff(base, next, tt.first); got != tt.want {
				t.Fatalf("diff = %04b, want %04b", got, tt.want)
			}
		})
	}
}

func TestDiff_ZeroOpacityIsRenderOnly(t *testing.T) {
	prev := settings.Defaults()
	next := prev
	next.Opacity = 0
	if got := diff(prev, next, false); got&(changeSize|changeShape) != 0 {
		t.Fatalf("opacity 0 must not touch geometry, got %04b", got)
	}
}
