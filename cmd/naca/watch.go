package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/naca456/internal/watch"
)

func watchCmd() *cli.Command {
	var debounce time.Duration

	return &cli.Command{
		Name:      "watch",
		Usage:     "Regenerate airfoils when .nml decks in a directory change",
		ArgsUsage: "<dir>",
		Flags: commonFlags(
			&cli.DurationFlag{
				Name:        "debounce",
				Usage:       "quiet period before a changed deck is processed",
				Value:       watch.DefaultDebounce,
				Destination: &debounce,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, log := setup(ctx, cmd)
			eng, err := newEngine(cmd, cfg, log)
			if err != nil {
				return err
			}
			dir, err := checkWatchDir(cmd.Args().First(), eng.Layout().NML())
			if err != nil {
				return err
			}
			w, err := watch.New(watch.Config{Dir: dir, Debounce: debounce}, eng, log)
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}
}
