package hotkeys

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// ExpandCommand substitutes {{exe}} in template with the shell-quoted path
// of the running binary.
func ExpandCommand(template, exe string) string {
	return strings.ReplaceAll(template, "{{exe}}", shellQuote(exe))
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Launch runs template through sh without waiting for it. The child is
// reaped in the background.
func Launch(template string, logger *slog.Logger) error {
	exe, err := os.Executable()
	if err != nil {
		exe = "subcover"
	}
	command := ExpandCommand(template, exe)

	cmd := exec.Command("sh", "-c", command)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %q: %w", command, err)
	}
	logger.Info("launched settings command", "command", command, "pid", cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Warn("settings command exited with error", "command", command, "error", err)
		}
	}()
	return nil
}
