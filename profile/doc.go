// Package profile provides optional runtime profiling for the linelog
// application.
//
// The package wraps [github.com/pkg/profile] behind the "pprof" build tag.
// Without the tag (the default), every operation is a no-op with zero
// runtime overhead, and [Modes] returns an empty list.
//
// # Profiling Modes
//
// When built with the pprof tag, the following modes are available:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Usage
//
// A profiler is described by a [Config] and started with [Config.Start]:
//
//	cfg := profile.Config(func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", false
//	})
//	ctrl := cfg.Start()
//	defer ctrl.Stop()
//
// Profile files are written to the configured directory with names matching
// the profiling mode (cpu.pprof, mem.pprof, and so on). Analyze them with
// the standard tooling:
//
//	go tool pprof ./linelog /tmp/profiles/cpu.pprof
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// # Command-Line Usage
//
// The linelog command exposes profiling flags when built with the tag:
//
//	# CPU profile, written to the default cache directory
//	./linelog --pprof-mode cpu render "test message"
//
//	# Heap profile with a custom output directory
//	./linelog --pprof-mode heap --pprof-dir ./profiles render "test message"
//
// The default output directory is the "pprof" subdirectory of the user
// cache directory (for example $XDG_CACHE_HOME/linelog/pprof on Linux).
//
// # HTTP Profiling
//
// Building with the pprof tag also imports [net/http/pprof], registering
// handlers under /debug/pprof/ for any HTTP server the process starts.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
