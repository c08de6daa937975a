package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// main delegates to runMain so that deferred calls run before the process
// terminates; os.Exit does not run defers.
func main() {
	os.Exit(runMain())
}

// runMain manages the process lifecycle and exit codes.
func runMain() int {
	// Cancel the root context on SIGINT (Ctrl+C) or SIGTERM. External
	// calls carry this context, so an interrupt aborts the run cleanly
	// before any state is written.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// setupLogging configures the default slog logger. Logs go to stderr so
// event listings and prompts on stdout stay machine-readable.
func setupLogging(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.String(config.LogKeyOS, runtime.GOOS),
		slog.String(config.LogKeyArch, runtime.GOARCH),
		slog.Int(config.LogKeyPID, os.Getpid()),
	)
}
