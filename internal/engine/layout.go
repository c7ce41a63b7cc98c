package engine

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout is the directory tree kept under the engine root:
//
//	root/
//	  naca456      executable
//	  nml/         input decks
//	  out/         listings
//	  out/xfoil/   XFOIL .dat exports
//	  gnu/         gnuplot data
//	  dbg/         debug dumps
type Layout struct {
	Root string
}

func (l Layout) NML() string   { return filepath.Join(l.Root, "nml") }
func (l Layout) OUT() string   { return filepath.Join(l.Root, "out") }
func (l Layout) XFOIL() string { return filepath.Join(l.Root, "out", "xfoil") }
func (l Layout) GNU() string   { return filepath.Join(l.Root, "gnu") }
func (l Layout) DBG() string   { return filepath.Join(l.Root, "dbg") }

// Ensure creates every directory of the layout.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.NML(), l.OUT(), l.XFOIL(), l.GNU(), l.DBG()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Files lists the artifacts of one run. Empty entries were not produced.
type Files struct {
	Namelist string `json:"namelist"`
	Out      string `json:"out"`
	GNU      string `json:"gnu,omitempty"`
	DBG      string `json:"dbg,omitempty"`
	XFOIL    string `json:"xfoil"`
}

// engine writes these into its working directory.
var listings = []struct {
	src string
	dir func(Layout) string
	ext string
}{
	{src: "naca.out", dir: Layout.OUT, ext: ".out"},
	{src: "naca.gnu", dir: Layout.GNU, ext: ".gnu"},
	{src: "naca.dbg", dir: Layout.DBG, ext: ".dbg"},
}

// collect moves the engine listings out of the scratch directory.
func (l Layout) collect(scratch, stem string) (Files, error) {
	var files Files
	for _, lst := range listings {
		src := filepath.Join(scratch, lst.src)
		if _, err := os.Stat(src); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return files, err
		}
		dst := filepath.Join(lst.dir(l), stem+lst.ext)
		if err := os.Rename(src, dst); err != nil {
			return files, fmt.Errorf("move %s: %w", lst.src, err)
		}
		switch lst.ext {
		case ".out":
			files.Out = dst
		case ".gnu":
			files.GNU = dst
		case ".dbg":
			files.DBG = dst
		}
	}
	if files.Out == "" {
		return files, ErrNoOutput
	}
	return files, nil
}
