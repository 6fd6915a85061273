// Package logger is the public API of the foldersync logging subsystem.
// Most code only needs to import this package.
//
// A Context owns the set of sinks shared by every logger of an
// application. Configure it once at startup:
//
//	ctx := logger.NewContext()
//	root, err := ctx.Configure(logger.Config{
//	    Level: "debug",
//	    File:  "logs/foldersync.log",
//	})
//
// and hand out named loggers to components:
//
//	log := ctx.Logger("scanner") // named "folder_sync.scanner"
//	log.Info("scan started")
//
// A Logger is only a name and a pointer to its Context. Each call reads the
// context's current sink set, which Configure replaces atomically, so
// loggers created before Configure, or kept across a reconfiguration,
// always write to the latest sinks. Calling Configure again replaces the
// sinks instead of adding to them; the old sinks are closed once the new
// ones are live.
//
// The package also keeps a default Context for programs that prefer
// package-level calls:
//
//	logger.Configure(logger.Config{Level: "info"})
//	logger.GetLogger("main").Info("Folder Sync starting...")
//
// Records emitted before any successful Configure are dropped.
//
// NewSlogHandler and NewZapCore route log/slog and go.uber.org/zap output
// from dependencies into the same sinks.
package logger
