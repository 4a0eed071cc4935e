package logging

import (
	"log/slog"
	"os"
)

// Init configures the default slog logger. Verbose enables debug output;
// otherwise only info and above is emitted.
func Init(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
