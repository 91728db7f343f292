// Package profile provides optional runtime profiling for slicerini.
//
// Profiling is built on [github.com/pkg/profile] and must be enabled at
// build time with the "pprof" build tag:
//
//	go build -tags pprof .
//	./slicerini --pprof-mode cpu fmt native
//
// Without the tag, [Config.Start] always returns a no-op and [Modes] is
// empty.
//
// # Modes
//
//   - allocs, heap, mem: memory profiling
//   - block, mutex: synchronization profiling
//   - clock, cpu: wall-clock and CPU profiling
//   - goroutine, thread: goroutine and thread creation profiling
//   - trace: execution tracing
//
// Profiles are written to the configured directory, which defaults to
// the slicerini cache directory, and can be inspected with go tool pprof:
//
//	go tool pprof -http=: $XDG_CACHE_HOME/slicerini/pprof/cpu.pprof
//
// When built with the tag, the package also imports [net/http/pprof].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
