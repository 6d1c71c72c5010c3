package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB fill color.
type Color uint32

// Black is the default overlay color.
const Black Color = 0x000000

var namedColors = map[string]Color{
	"black": 0x000000,
	"white": 0xffffff,
	"gray":  0x808080,
	"grey":  0x808080,
	"red":   0xff0000,
	"green": 0x00ff00,
	"blue":  0x0000ff,
}

// ParseColor accepts "#rrggbb", "#rgb" (leading '#' optional) or one of a
// few color names.
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return 0, fmt.Errorf("empty color")
	}
	if c, ok := namedColors[v]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(v, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: want #rrggbb, #rgb or a color name", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(n), nil
}

// RGB splits the color into 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// MarshalText implements encoding.TextMarshaler so colors read naturally in
// YAML and JSON.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
