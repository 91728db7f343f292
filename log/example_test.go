package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/slicerini/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithPretty(false), log.WithTimeLayout("none"))
	logger.Info("application started", slog.String("version", "1.0.0"))
	// Output:
	// level=INFO msg="application started" version=1.0.0
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	// Output:
	// level=WARN msg="warning message" key=value
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithPretty(false), log.WithTimeLayout("none")).
		With(slog.String("section", "vendor:PrusaResearch"))

	logger.InfoContext(context.Background(), "key upserted", slog.String("key", "model:MK4IS"))
	// Output:
	// level=INFO msg="key upserted" section=vendor:PrusaResearch key=model:MK4IS
}
