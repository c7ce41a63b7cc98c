package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/naca456/internal/namelist"
)

// flagSource is the part of *cli.Command read by paramsFromFlags.
type flagSource interface {
	IsSet(name string) bool
	String(name string) string
	Float64(name string) float64
	Int64(name string) int64
	Float64Slice(name string) []float64
}

var _ flagSource = (*cli.Command)(nil)

// paramsFromFlags starts from --deck (or the defaults) and applies every
// parameter flag given on the command line.
func paramsFromFlags(cmd flagSource) (namelist.Params, error) {
	p := namelist.Defaults()
	if path := cmd.String("deck"); path != "" {
		deck, err := readDeck(path)
		if err != nil {
			return p, err
		}
		p = deck
	}

	if cmd.IsSet("name") {
		p.Name = cmd.String("name")
	}
	if cmd.IsSet("camber") {
		c, err := namelist.ParseCamber(cmd.String("camber"))
		if err != nil {
			return p, fmt.Errorf("--camber: %w", err)
		}
		p.Camber = c
	}
	if cmd.IsSet("profile") {
		pr, err := namelist.ParseProfile(cmd.String("profile"))
		if err != nil {
			return p, fmt.Errorf("--profile: %w", err)
		}
		p.Profile = pr
	}
	reals := []struct {
		flag string
		dst  *float64
	}{
		{"toc", &p.TOC},
		{"chord", &p.Chord},
		{"cmax", &p.CMax},
		{"xmaxc", &p.XMaxC},
		{"cl", &p.CL},
		{"a", &p.A},
		{"xmaxt", &p.XMaxT},
		{"leindex", &p.LEIndex},
		{"xorigin", &p.XOrigin},
		{"yorigin", &p.YOrigin},
	}
	for _, r := range reals {
		if cmd.IsSet(r.flag) {
			*r.dst = cmd.Float64(r.flag)
		}
	}
	if cmd.IsSet("dencode") {
		p.Dencode = namelist.Dencode(cmd.Int64("dencode"))
	}
	if cmd.IsSet("xtable") {
		p.XTable = cmd.Float64Slice("xtable")
		p.NTable = 0
	}
	return p, nil
}

func readDeck(path string) (namelist.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return namelist.Params{}, err
	}
	defer f.Close()
	p, err := namelist.Decode(f)
	if err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
