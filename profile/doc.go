// Package profile provides optional runtime profiling for sngc.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] to provide runtime profiling
// capabilities with conditional compilation support. Profiling is optional and
// must be enabled at build time using the "pprof" build tag.
//
// When built with profiling disabled (default), [Modes] is empty and
// [Profiler.Start] always returns a no-op. [Source] labels work in every
// build.
//
// # Available Profiling Modes
//
// The following profiling modes are supported when built with the pprof tag:
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
// # Using File-Based Profiling
//
// A [Profiler] is built from functional options and started with
// [Profiler.Start]:
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithDir("/tmp/profiles"))
//	defer p.Start(ctx)()
//
// Work run through [Source] carries a "source" pprof label, so a CPU profile
// of several compiles can be split per input file with
// "go tool pprof -tagfocus source=image.sng".
//
// Profile files are written to the configured directory with names matching
// the profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
//	go build -tags pprof -o sngc .
//	./sngc --pprof-mode cpu large.sng
//	go tool pprof ./sngc ~/.cache/sngc/pprof/cpu.pprof
//
// The default output directory is:
//
//	$XDG_CACHE_HOME/sngc/pprof   (Linux/Unix)
//	~/Library/Caches/sngc/pprof  (macOS)
//	%LocalAppData%\sngc\pprof    (Windows)
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
