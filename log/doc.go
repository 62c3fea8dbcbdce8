// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("none"))
//
// Five levels are supported. [LevelTrace] sits below [LevelDebug] and is
// used by the compiler to report every token it reads.
//
// The text format is pretty-printed with [github.com/charmbracelet/lipgloss]
// styles unless [WithPretty] disables it. Styling degrades to plain text when
// the output is not a terminal.
//
// The zero [Logger] discards all records, so components may hold one
// without checking whether logging was configured.
package log
