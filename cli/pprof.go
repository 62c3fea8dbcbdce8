//go:build pprof

package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sngc/log"
	"github.com/ardnew/sngc/profile"
)

type pprofConfig struct {
	Mode string `default:""                enum:",${pprofModeEnum}" help:"Enable profiling ([${enum}])" short:"p"`
	Dir  string `default:"${cache}/pprof"                           help:"Profile output directory"     type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start starts profiling if a mode was selected.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	return profile.New(
		profile.WithMode(f.Mode),
		profile.WithDir(f.Dir),
		profile.WithQuiet(true),
		profile.WithLogger(log.Default()),
	).Start(ctx)
}
