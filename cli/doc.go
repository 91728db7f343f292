// Package cli contains the command line interface for slicerini.
//
// # Usage
//
//	slicerini upsert vendor:PrusaResearch model:MK4IS 0.4
//	slicerini printer --write MK4IS 0.4 0.6
//	slicerini fmt json --where 'section startsWith "vendor:"'
//	slicerini repl
//
// Commands act on the file named by --file. By default it is the first
// PrusaSlicer.ini found in the directories listed by $SLICERINI_PATH,
// followed by the platform PrusaSlicer data directories.
//
// # Configuration
//
// Flag defaults are read from the [slicerini] section of config.ini in the
// configuration directory (~/.config/slicerini on Linux), then from
// config.json beside it. The init command writes config.ini from the
// current flag values. Command-line flags always win.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o slicerini .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default
//     ~/.cache/slicerini/pprof)
package cli
