package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/subcover/internal/ipc"
	"github.com/1broseidon/subcover/internal/settings"
)

// appearanceForm edits all three appearance fields at once. Values are held
// as strings for huh and converted on submit.
type appearanceForm struct {
	form *huh.Form

	fColor   string
	fOpacity string
	fRadius  string
}

func newAppearanceForm(s settings.Settings, width int) *appearanceForm {
	f := &appearanceForm{
		fColor:   s.Color.String(),
		fOpacity: strconv.FormatFloat(s.Opacity, 'f', -1, 64),
		fRadius:  strconv.FormatFloat(s.CornerRadius, 'f', -1, 64),
	}

	w := max(width-4, 40)

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("color").
				Title("Color").
				Description("#rgb, #rrggbb or a color name").
				Validate(validateColor).
				Value(&f.fColor),
			huh.NewInput().
				Key("opacity").
				Title("Opacity").
				Description("0 (invisible) to 1 (solid)").
				Validate(rangeValidator(settings.MinOpacity, settings.MaxOpacity)).
				Value(&f.fOpacity),
			huh.NewInput().
				Key("corner_radius").
				Title("Corner Radius").
				Description("Pixels, 0 to 10").
				Validate(rangeValidator(settings.MinCornerRadius, settings.MaxCornerRadius)).
				Value(&f.fRadius),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	return f
}

func validateColor(s string) error {
	_, err := settings.ParseColor(strings.TrimSpace(s))
	return err
}

func rangeValidator(lo, hi float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("not a number")
		}
		if v < lo || v > hi {
			return fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return nil
	}
}

// payload converts the submitted strings into an IPC update.
func (f *appearanceForm) payload() (ipc.SetSettingsPayload, error) {
	color := strings.TrimSpace(f.fColor)
	if err := validateColor(color); err != nil {
		return ipc.SetSettingsPayload{}, err
	}
	opacity, err := strconv.ParseFloat(strings.TrimSpace(f.fOpacity), 64)
	if err != nil {
		return ipc.SetSettingsPayload{}, fmt.Errorf("invalid opacity %q", f.fOpacity)
	}
	radius, err := strconv.ParseFloat(strings.TrimSpace(f.fRadius), 64)
	if err != nil {
		return ipc.SetSettingsPayload{}, fmt.Errorf("invalid corner radius %q", f.fRadius)
	}
	return ipc.SetSettingsPayload{
		Color:        &color,
		Opacity:      &opacity,
		CornerRadius: &radius,
	}, nil
}
