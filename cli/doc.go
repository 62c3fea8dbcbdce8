// Package cli contains the command line interface for sngc.
//
// # Usage
//
//	sngc [flags] [SOURCE]          # compile SOURCE (default "-") to a PNG
//	sngc compile -o out.png SOURCE
//	sngc check SOURCE              # validate only
//	sngc dump --format=json SOURCE # print the chunk records
//	sngc init [--force]            # write the current flags to config.yaml
//
// Compiling SOURCE "image.sng" writes "image.png" unless -o is given. Source
// read from stdin is written to stdout. The image is written only after the
// whole source compiles.
//
// # Exit Status
//
//   - 0: success
//   - 1: usage, configuration or I/O failure
//   - 2: compile diagnostic (lexical, syntax or semantic)
//   - 3: value rejected by the PNG encoder
//
// Every failure prints one diagnostic line on stderr, in the form
// "<source>:<line>: <message>" for compile diagnostics.
//
// # Configuration Loader
//
// Flag defaults are read from config.yaml (see [loadYAML]) and config.json in
// the user configuration directory, for example ~/.config/sngc on Linux.
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output on terminals
//
// At trace level the compiler logs every token and every chunk it validates.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o sngc .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/sngc/pprof)
package cli
