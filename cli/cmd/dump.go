package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/sngc/lang"
)

// Dump compiles an SNG source file without encoding an image and prints the
// validated chunk records.
type Dump struct {
	Format string `default:"yaml" enum:"sng,yaml,json" help:"Output format (${enum})." short:"f"`
	Indent int    `default:"2"                         help:"Indentation width; 0 selects compact output." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) error {
	unit, _, err := compileUnit(ctx, d.Source, nil)
	if err != nil {
		return err
	}

	var format func(context.Context, *lang.Unit) error

	switch d.Format {
	case "sng":
		format = func(ctx context.Context, u *lang.Unit) error {
			return u.Format(ctx, stdout, d.Indent)
		}
	case "json":
		format = func(ctx context.Context, u *lang.Unit) error {
			return u.FormatJSON(ctx, stdout, d.Indent)
		}
	default:
		format = func(ctx context.Context, u *lang.Unit) error {
			return u.FormatYAML(ctx, stdout, d.Indent)
		}
	}

	if err := format(ctx, unit); err != nil {
		return ErrFormat.
			With(slog.String("format", d.Format)).
			Wrap(err)
	}

	return nil
}
