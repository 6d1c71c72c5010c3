package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"

	"github.com/1broseidon/subcover/internal/config"
	"github.com/1broseidon/subcover/internal/daemon"
	"github.com/1broseidon/subcover/internal/runtimepath"
)

func main() {
	godotenv.Load()

	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "set":
		os.Exit(runSet(os.Args[2:]))
	case "show":
		os.Exit(runVisible("show", os.Args[2:]))
	case "hide":
		os.Exit(runVisible("hide", os.Args[2:]))
	case "toggle":
		os.Exit(runVisible("toggle", os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "stop":
		os.Exit(runStop(os.Args[2:]))
	case "settings":
		os.Exit(runSettings(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: subcover <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the overlay daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  set                 Change color, opacity or corner radius")
	fmt.Fprintln(w, "  show                Show the overlay")
	fmt.Fprintln(w, "  hide                Hide the overlay")
	fmt.Fprintln(w, "  toggle              Toggle overlay visibility")
	fmt.Fprintln(w, "  reload              Re-read appearance from the config file")
	fmt.Fprintln(w, "  stop                Stop the daemon")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  settings            Open the interactive settings panel")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config path         Print the config file location")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'subcover <command> --help' for command-specific options.")
}

// InitLogger installs the console handler as the default logger.
func InitLogger(level slog.Level) *slog.Logger {
	logger := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runDaemon(args []string) int {
	fs := newFlagSet("run", "Usage: subcover run [--debug] [--path PATH]",
		"Show the overlay and serve IPC until stopped.")
	debug := fs.Bool("debug", false, "Enable debug logging")
	path := fs.String("path", "", "Config file path (default: ~/.config/subcover/config.yaml)")
	if code, done := parseFlags(fs, args); done {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	InitLogger(slog.LevelInfo)

	res, err := loadConfig(*path)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}
	cfg := res.Config

	level := parseLogLevel(cfg.LogLevel)
	if *debug {
		level = slog.LevelDebug
	}
	logger := InitLogger(level)
	logger.Info("configuration loaded", "path", res.Path, "exists", res.Exists,
		"toggle_hotkey", cfg.ToggleHotkey, "settings_hotkey", cfg.SettingsHotkey)

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		logger.Error("failed to resolve socket path", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := daemon.Run(ctx, daemon.Options{
		Config:     cfg,
		ConfigPath: res.Path,
		SocketPath: socketPath,
		Logger:     logger,
	}); err != nil {
		logger.Error("daemon exited", "error", err)
		return 1
	}
	return 0
}
