package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/tfx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := newApp(runner)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command: global flags, config loading before any command runs,
// and store cleanup afterwards.
func newApp(runner *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tfx",
		Usage:   "Edit Telefyna playout configuration documents",
		Version: "0.1.0",
		// names and keys may contain commas
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, runner.configure(cmd.String("config"), cmd.Bool("verbose"))
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			return runner.Close()
		},
		Commands: runner.register(),
	}
}
