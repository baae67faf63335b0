package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rpezzi/pipelint/internal/app"
	"github.com/rpezzi/pipelint/internal/cli"
)

// main is the entrypoint for the pipelint binary.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		if errors.Is(err, app.ErrValidationFailed) {
			os.Exit(cli.ExitFail)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitEngineError)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a := app.NewApp(outW, os.Stderr, config)
	ctx := context.Background()
	if config.Watch {
		return a.Watch(ctx)
	}
	return a.Run(ctx)
}
