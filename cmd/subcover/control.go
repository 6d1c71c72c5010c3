package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/1broseidon/subcover/internal/ipc"
)

func runStatus(args []string) int {
	fs := newFlagSet("status", "Usage: subcover status [--json]", "Show daemon status via IPC.")
	asJSON := fs.Bool("json", false, "Print raw JSON")
	if code, done := parseFlags(fs, args); done {
		return code
	}
	if !noArgs(fs) {
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	s := status.Settings
	fmt.Printf("pid:            %d\n", status.PID)
	fmt.Printf("uptime:         %s\n", time.Duration(status.UptimeSeconds)*time.Second)
	fmt.Printf("visible:        %v\n", status.Visible)
	fmt.Printf("gesture:        %s\n", formatGesture(status.Gesture))
	fmt.Printf("frame:          %dx%d at (%d,%d)\n", status.Gesture.Width, status.Gesture.Height, status.Gesture.X, status.Gesture.Y)
	fmt.Printf("color:          %s\n", s.Color)
	fmt.Printf("opacity:        %.2f\n", s.Opacity)
	fmt.Printf("corner_radius:  %g\n", s.CornerRadius)
	return 0
}

func formatGesture(g ipc.GestureInfo) string {
	if g.Edge == "" || g.Edge == "none" {
		return g.Mode
	}
	return fmt.Sprintf("%s (%s)", g.Mode, g.Edge)
}

func runSet(args []string) int {
	fs := newFlagSet("set", "Usage: subcover set [--color COLOR] [--opacity N] [--radius N]",
		"Change the running overlay's appearance. Omitted values are left unchanged.")
	color := fs.String("color", "", "Color as #rgb, #rrggbb or a name")
	opacity := fs.Float64("opacity", 0, "Opacity from 0 to 1")
	radius := fs.Float64("radius", 0, "Corner radius from 0 to 10")
	if code, done := parseFlags(fs, args); done {
		return code
	}
	if !noArgs(fs) {
		return 2
	}

	var p ipc.SetSettingsPayload
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "color":
			p.Color = color
		case "opacity":
			p.Opacity = opacity
		case "radius":
			p.CornerRadius = radius
		}
	})
	if p.Color == nil && p.Opacity == nil && p.CornerRadius == nil {
		fmt.Fprintln(os.Stderr, "set requires at least one of --color, --opacity or --radius")
		fs.Usage()
		return 2
	}

	next, err := ipc.NewClient().SetSettings(p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("color: %s  opacity: %.2f  corner_radius: %g\n", next.Color, next.Opacity, next.CornerRadius)
	return 0
}

func runVisible(name string, args []string) int {
	fs := newFlagSet(name, "Usage: subcover "+name, "")
	if code, done := parseFlags(fs, args); done {
		return code
	}
	if !noArgs(fs) {
		return 2
	}

	client := ipc.NewClient()
	var (
		visible bool
		err     error
	)
	switch name {
	case "show":
		visible, err = client.SetVisible(true)
	case "hide":
		visible, err = client.SetVisible(false)
	default:
		visible, err = client.ToggleVisible()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("visible: %v\n", visible)
	return 0
}

func runReload(args []string) int {
	fs := newFlagSet("reload", "Usage: subcover reload", "Re-read the appearance from the daemon's config file.")
	if code, done := parseFlags(fs, args); done {
		return code
	}
	if !noArgs(fs) {
		return 2
	}

	next, err := ipc.NewClient().Reload()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("color: %s  opacity: %.2f  corner_radius: %g\n", next.Color, next.Opacity, next.CornerRadius)
	return 0
}

func runStop(args []string) int {
	fs := newFlagSet("stop", "Usage: subcover stop", "Ask the running daemon to exit.")
	if code, done := parseFlags(fs, args); done {
		return code
	}
	if !noArgs(fs) {
		return 2
	}

	if err := ipc.NewClient().Quit(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
