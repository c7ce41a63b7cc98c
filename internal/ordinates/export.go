package ordinates

import (
	"bufio"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/google/renameio/v2"
)

// WriteXFOIL writes the Selig-style loop XFOIL reads: a title line, then
// the upper surface from trailing edge to leading edge and the lower
// surface back to the trailing edge, sharing the leading-edge point.
func WriteXFOIL(w io.Writer, a *Airfoil) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, a.Name); err != nil {
		return err
	}
	for i := len(a.X) - 1; i >= 0; i-- {
		fmt.Fprintf(bw, "%.6f  %.6f\n", a.X[i], a.YUpper[i])
	}
	for i := 1; i < len(a.X); i++ {
		fmt.Fprintf(bw, "%.6f  %.6f\n", a.X[i], a.YLower[i])
	}
	return bw.Flush()
}

// WriteXFOILFile replaces path atomically with the XFOIL listing.
func WriteXFOILFile(path string, a *Airfoil) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending xfoil file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if err := WriteXFOIL(pending, a); err != nil {
		return fmt.Errorf("write xfoil data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace xfoil file: %w", err)
	}
	return nil
}

// WriteJSON writes a as an indented JSON document.
func WriteJSON(w io.Writer, a *Airfoil) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// WriteTable prints a plain x / yupper / ylower listing.
func WriteTable(w io.Writer, a *Airfoil) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%10s %10s %10s\n", "x", "yupper", "ylower")
	for i := range a.X {
		fmt.Fprintf(bw, "%10.6f %10.6f %10.6f\n", a.X[i], a.YUpper[i], a.YLower[i])
	}
	return bw.Flush()
}
