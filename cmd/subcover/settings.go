package main

import (
	"fmt"
	"os"

	"github.com/1broseidon/subcover/internal/ipc"
	"github.com/1broseidon/subcover/internal/tui"
)

func runSettings(args []string) int {
	fs := newFlagSet("settings", "Usage: subcover settings [--path PATH]", "")
	path := fs.String("path", "", "Config file path used by save (default: ~/.config/subcover/config.yaml)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: subcover settings [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive panel for the running overlay's appearance.")
		fmt.Fprintln(os.Stderr, "Changes apply live; press s to keep them in the config file.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  ←/→, h/l  Opacity -/+ 0.05")
		fmt.Fprintln(os.Stderr, "  ↑/↓, k/j  Corner radius +/- 1")
		fmt.Fprintln(os.Stderr, "  e         Edit color, opacity and radius in a form")
		fmt.Fprintln(os.Stderr, "  s         Save appearance to the config file")
		fmt.Fprintln(os.Stderr, "  r         Refresh from the daemon")
		fmt.Fprintln(os.Stderr, "  q, Esc    Quit")
		return 0
	}

	if code, done := parseFlags(fs, args); done {
		return code
	}

	if err := tui.Run(ipc.NewClient(), *path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
