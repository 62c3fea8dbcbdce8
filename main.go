package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/sngc/cli"
	"github.com/ardnew/sngc/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		log.Debug(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		cli.Diagnose(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
