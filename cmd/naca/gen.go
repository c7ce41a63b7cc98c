package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/naca456/internal/engine"
	"github.com/samcharles93/naca456/internal/ordinates"
)

func genCmd() *cli.Command {
	var (
		printTable bool
		asJSON     bool
		scaled     bool
	)

	return &cli.Command{
		Name:      "gen",
		Usage:     "Run naca456 for one airfoil and export the ordinates",
		ArgsUsage: " ",
		Flags: append(commonFlags(paramFlags()...),
			&cli.BoolFlag{
				Name:        "print",
				Usage:       "print the ordinate table to stdout",
				Destination: &printTable,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the ordinates as JSON to stdout",
				Destination: &asJSON,
			},
			&cli.BoolFlag{
				Name:        "scaled",
				Usage:       "apply chord and origin to printed ordinates",
				Destination: &scaled,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, log := setup(ctx, cmd)
			p, err := paramsFromFlags(cmd)
			if err != nil {
				return err
			}
			eng, err := newEngine(cmd, cfg, log)
			if err != nil {
				return err
			}
			res, err := eng.Generate(ctx, p)
			if err != nil {
				return err
			}

			a := res.Airfoil
			if scaled {
				a = a.Scale(res.Params.Chord, res.Params.XOrigin, res.Params.YOrigin)
			}
			switch {
			case asJSON:
				return ordinates.WriteJSON(os.Stdout, a)
			case printTable:
				if err := ordinates.WriteTable(os.Stdout, a); err != nil {
					return err
				}
			}
			printSummary(os.Stderr, res)
			return nil
		},
	}
}

func printSummary(w io.Writer, res *engine.Result) {
	t, x := res.Airfoil.MaxThickness()
	kind := "symmetric"
	if res.Airfoil.Cambered {
		kind = "cambered"
	}
	_, _ = fmt.Fprintf(w, "%s (%s): %d points, %s, t/c %.4f at x %.3f, %s\n",
		res.Name, res.Stem, res.Airfoil.Len(), kind, t, x, res.Elapsed.Round(1e6))
	_, _ = fmt.Fprintf(w, "  out:   %s\n", res.Files.Out)
	_, _ = fmt.Fprintf(w, "  xfoil: %s\n", res.Files.XFOIL)
	if res.Files.GNU != "" {
		_, _ = fmt.Fprintf(w, "  gnu:   %s\n", res.Files.GNU)
	}
	if res.Files.DBG != "" {
		_, _ = fmt.Fprintf(w, "  dbg:   %s\n", res.Files.DBG)
	}
	if len(res.Ignored) > 0 {
		_, _ = fmt.Fprintf(w, "  ignored: %s\n", strings.Join(res.Ignored, ", "))
	}
}
