// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("file written", slog.String("path", path))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Info], [Warn], and so on) write through a
// default logger on [os.Stderr] that is reconfigured with [Config].
//
// # Context-Aware Logging
//
// Each level has a context-aware variant. Context-unaware functions use
// [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Messages below the configured level are discarded.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. With [WithPretty] enabled, both
// are styled with lipgloss, which falls back to plain text when the output
// is not a color terminal.
package log
