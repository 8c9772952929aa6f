// Package logger provides a thin factory around Go's slog package with
// functional options and attribute helpers shared by the uploader packages.
//
// New creates a *slog.Logger backed by slog.NewJSONHandler (default) or
// slog.NewTextHandler. NewNope returns a logger that discards everything and is
// the default for components that accept an optional logger.
//
// Helper constructors such as Field, Filename, Path and Rule keep attribute
// naming consistent across log lines.
//
// # Usage
//
//	import "github.com/dmitrymomot/uploader/pkg/logger"
//
//	log := logger.New(
//	    logger.WithTextFormatter(),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithComponent("uploader"),
//	)
//
//	log.Warn("file move failed",
//	    logger.Field("avatar"),
//	    logger.Path("/var/uploads/a.png"),
//	    logger.Error(err),
//	)
//
// # Configuration
//
// The default configuration writes JSON to os.Stdout at INFO level.
// WithFormat panics on unknown formats so misconfiguration is caught at startup.
package logger
