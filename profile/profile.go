package profile

import (
	"context"
	"log/slog"
	"runtime/pprof"

	"github.com/ardnew/sngc/log"
)

// Profiler starts and stops one profiling session.
//
// The zero value profiles nothing. Start and the returned stop function are
// always safely callable.
type Profiler struct {
	mode   string
	dir    string
	quiet  bool
	logger log.Logger
}

// Option configures a [Profiler].
type Option func(Profiler) Profiler

// New returns a Profiler configured by opts.
func New(opts ...Option) Profiler {
	var p Profiler
	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// WithMode sets the profiling mode, one of [Modes]. An empty or unknown mode
// disables profiling.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.mode = mode

		return p
	}
}

// WithDir sets the directory receiving profile files.
func WithDir(dir string) Option {
	return func(p Profiler) Profiler {
		p.dir = dir

		return p
	}
}

// WithQuiet suppresses the profiler's own progress messages.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.quiet = quiet

		return p
	}
}

// WithLogger sets the logger receiving session start and stop records.
func WithLogger(logger log.Logger) Option {
	return func(p Profiler) Profiler {
		p.logger = logger

		return p
	}
}

// Enabled reports whether Start would begin a session.
func (p Profiler) Enabled() bool { return p.mode != "" && isMode(p.mode) }

// Start begins profiling and returns the function that ends it.
func (p Profiler) Start(ctx context.Context) (stop func()) {
	if !p.Enabled() {
		return func() {}
	}

	attrs := []slog.Attr{
		slog.String("mode", p.mode),
		slog.String("dir", p.dir),
	}

	p.logger.DebugContext(ctx, "pprof start", attrs...)

	s := start(p.mode, p.dir, p.quiet)

	return func() {
		s.Stop()
		p.logger.DebugContext(ctx, "pprof stop", attrs...)
	}
}

// Source runs fn with the pprof label "source" set to name, so samples
// taken while compiling are attributed to the file being compiled.
func Source(ctx context.Context, name string, fn func(context.Context)) {
	pprof.Do(ctx, pprof.Labels("source", name), fn)
}
