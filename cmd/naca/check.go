package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/naca456/internal/engine"
	"github.com/samcharles93/naca456/internal/namelist"
)

func checkCmd() *cli.Command {
	var quiet bool

	return &cli.Command{
		Name:      "check",
		Usage:     "Validate namelist decks (or the parameter flags) without running the engine",
		ArgsUsage: "[deck.nml ...]",
		Flags: append(loggingFlags(), append(paramFlags(),
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       "only report problems",
				Destination: &quiet,
			},
		)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, _, log := setup(ctx, cmd)
			out := io.Writer(os.Stdout)
			if quiet {
				out = io.Discard
			}

			files := cmd.Args().Slice()
			if len(files) == 0 {
				p, err := paramsFromFlags(cmd)
				if err != nil {
					return err
				}
				return checkParams(out, "flags", p)
			}

			failed := 0
			for _, path := range files {
				p, err := readDeck(path)
				if err == nil {
					err = checkParams(out, path, p)
				}
				if err != nil {
					failed++
					log.Error("check failed", "file", path, "err", err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d decks invalid", failed, len(files))
			}
			return nil
		},
	}
}

// checkParams prints the normalized deck on success and every rejected field
// otherwise.
func checkParams(w io.Writer, source string, p namelist.Params) error {
	ignored := p.Normalize().Ignored()
	prepared, err := engine.Prepare(p)
	if err != nil {
		var verr *namelist.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				_, _ = fmt.Fprintf(w, "%s: %s\n", source, f.Error())
			}
		}
		return err
	}
	_, _ = fmt.Fprintf(w, "! %s: %s\n", source, prepared.Name)
	if len(ignored) > 0 {
		_, _ = fmt.Fprintf(w, "! ignored: %s\n", strings.Join(ignored, ", "))
	}
	_, err = io.WriteString(w, namelist.Marshal(prepared))
	return err
}
