package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sngc/cli/cmd"
	"github.com/ardnew/sngc/codec"
	"github.com/ardnew/sngc/lang"
	"github.com/ardnew/sngc/pkg"
)

// ErrConfig reports a configuration file that cannot be read or parsed.
var ErrConfig = cmd.NewError("read configuration file")

// CLI is the top-level command-line interface for sngc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	MaxToken int `default:"${maxToken}" help:"Maximum length of a single source token" name:"max-token"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Init  cmd.Init  `cmd:"" help:"Initialize configuration file"`
	Check cmd.Check `cmd:"" help:"Validate SNG source without writing an image"`
	Dump  cmd.Dump  `cmd:"" help:"Print the validated chunk records"`

	Compile cmd.Compile `cmd:"" default:"withargs" help:"Compile SNG source into a PNG image"`
}

// vars returns the kong variables interpolated into flag tags and read by
// commands.
func (c *CLI) vars(configFile string) kong.Vars {
	return kong.Vars{
		"version":               pkg.Version,
		"maxToken":              strconv.Itoa(lang.DefaultMaxTokenLength),
		cmd.ConfigIdentifier:    configFile,
		cmd.CacheIdentifier:     cacheDir(),
		cmd.ChunkSizeIdentifier: strconv.Itoa(codec.DefaultChunkSize),
	}.
		CloneWith(c.Log.vars()).
		CloneWith(c.Pprof.vars())
}

// Run executes the sngc CLI with the given context and arguments.
// The exit function is called by kong for help and version output; every
// other outcome is returned as an error for [ExitCode] and [Diagnose].
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	configFilePath := configPath(baseConfig + ".yaml")

	vars := cli.vars(configFilePath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(loadYAML, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithOptions(ctx, lang.WithMaxTokenLength(cli.MaxToken))

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
