package main

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/naca456/internal/engine"
)

var (
	rootDir    string
	executable string
	timeout    time.Duration
	logLevel   string
	logFormat  string
	debug      bool
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "root",
			Usage:       "naca456 workspace holding the executable and the nml/out/gnu/dbg tree (env " + envRoot + ")",
			Destination: &rootDir,
		},
		&cli.StringFlag{
			Name:        "executable",
			Aliases:     []string{"exe"},
			Usage:       "engine binary, relative to --root unless absolute",
			Value:       engine.DefaultExecutable,
			Destination: &executable,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "per-run limit for the engine",
			Value:       engine.DefaultTimeout,
			Destination: &timeout,
		},
	}
}

func commonFlags(extra ...cli.Flag) []cli.Flag {
	flags := append(loggingFlags(), engineFlags()...)
	return append(flags, extra...)
}

// paramFlags mirror the namelist keys one to one.
func paramFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "deck", Usage: "start from this .nml file instead of the defaults"},
		&cli.StringFlag{Name: "name", Usage: "output title; derived from the designation when empty"},
		&cli.StringFlag{Name: "camber", Usage: "camber line (0, 2, 3, 3R, 6, 6A, 6M)"},
		&cli.StringFlag{Name: "profile", Usage: "thickness family (4, 4M, 6, 6A, 63..67, 63A, 64A, 65A)"},
		&cli.Float64Flag{Name: "toc", Usage: "thickness-chord ratio"},
		&cli.Float64Flag{Name: "chord", Usage: "model chord"},
		&cli.Float64Flag{Name: "cmax", Usage: "maximum camber (2-digit camber)"},
		&cli.Float64Flag{Name: "xmaxc", Usage: "position of maximum camber (2-digit camber)"},
		&cli.Float64Flag{Name: "cl", Usage: "design lift coefficient (3-digit and 6-series camber)"},
		&cli.Float64Flag{Name: "a", Usage: "extent of constant loading (6-series camber)"},
		&cli.Float64Flag{Name: "xmaxt", Usage: "position of maximum thickness (4M profile)"},
		&cli.Float64Flag{Name: "leindex", Usage: "leading-edge radius index (4M profile)"},
		&cli.Int64Flag{Name: "dencode", Usage: "x spacing: 0 user table, 1 coarse, 2 fine, 3 very fine"},
		&cli.Float64SliceFlag{Name: "xtable", Usage: "user x stations, used with --dencode 0"},
		&cli.Float64Flag{Name: "xorigin", Usage: "leading-edge x"},
		&cli.Float64Flag{Name: "yorigin", Usage: "leading-edge y"},
	}
}
