package mcp

// GetOverlayInput is the input for the get_overlay tool.
type GetOverlayInput struct{}

// OverlayOutput describes the running overlay.
type OverlayOutput struct {
	Visible      bool    `json:"visible"`
	Color        string  `json:"color"`
	Opacity      float64 `json:"opacity"`
	CornerRadius float64 `json:"corner_radius"`
	X            int     `json:"x"`
	Y            int     `json:"y"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	// Gesture is "idle", "dragging" or "resizing".
	Gesture string `json:"gesture"`
}

// SetOverlayInput is the input for the set_overlay tool.
type SetOverlayInput struct {
	Color        *string  `json:"color,omitempty" jsonschema:"Overlay color as #rgb, #rrggbb or a color name such as black or white"`
	Opacity      *float64 `json:"opacity,omitempty" jsonschema:"Opacity from 0 (invisible) to 1 (solid); out-of-range values are clamped"`
	CornerRadius *float64 `json:"corner_radius,omitempty" jsonschema:"Corner radius in pixels from 0 to 10; out-of-range values are clamped"`
}

// AppearanceOutput is the appearance after an update.
type AppearanceOutput struct {
	Color        string  `json:"color"`
	Opacity      float64 `json:"opacity"`
	CornerRadius float64 `json:"corner_radius"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
}

// SetOverlayVisibleInput is the input for the set_overlay_visible tool.
type SetOverlayVisibleInput struct {
	Visible bool `json:"visible" jsonschema:"true to show the overlay, false to hide it"`
}

// VisibleOutput reports the overlay's visibility.
type VisibleOutput struct {
	Visible bool `json:"visible"`
}
