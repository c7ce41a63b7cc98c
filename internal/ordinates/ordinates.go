// Package ordinates reads the coordinate tables the naca456 engine writes
// and exports them for other tools.
package ordinates

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoTable is returned when the engine output holds no coordinate table.
var ErrNoTable = errors.New("no coordinate table in engine output")

// cambered output carries this banner before its upper/lower table.
const interpolatedBanner = "INTERPOLATED COORDINATES"

// Airfoil holds ordinates at matching chordwise stations, leading edge first.
type Airfoil struct {
	Name     string    `json:"name"`
	Cambered bool      `json:"cambered"`
	X        []float64 `json:"x"`
	YUpper   []float64 `json:"y_upper"`
	YLower   []float64 `json:"y_lower"`
}

// Len returns the number of stations.
func (a *Airfoil) Len() int {
	return len(a.X)
}

// Parse reads an engine listing. A cambered listing is recognised by its
// interpolated-coordinates banner and yields separate upper and lower
// surfaces; otherwise the symmetric half-thickness table is mirrored.
func Parse(r io.Reader) (*Airfoil, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	banner := -1
	for i, l := range lines {
		if strings.Contains(l, interpolatedBanner) {
			banner = i
			break
		}
	}

	if banner >= 0 {
		header := findHeader(lines, banner+1, "yupper")
		if header < 0 {
			return nil, fmt.Errorf("%w: cambered listing has no x/yupper header", ErrNoTable)
		}
		a := &Airfoil{Cambered: true}
		err := readRows(lines, header+1, 3, func(v []float64) {
			a.X = append(a.X, v[0])
			a.YUpper = append(a.YUpper, v[1])
			a.YLower = append(a.YLower, v[2])
		})
		if err != nil {
			return nil, err
		}
		return checkEmpty(a)
	}

	header := findHeader(lines, 0, "dy/dx")
	if header < 0 {
		return nil, ErrNoTable
	}
	a := &Airfoil{}
	err := readRows(lines, header+1, 2, func(v []float64) {
		a.X = append(a.X, v[0])
		a.YUpper = append(a.YUpper, v[1])
		a.YLower = append(a.YLower, -v[1])
	})
	if err != nil {
		return nil, err
	}
	return checkEmpty(a)
}

func findHeader(lines []string, from int, marker string) int {
	for i := from; i < len(lines); i++ {
		l := strings.ToLower(strings.TrimSpace(lines[i]))
		if strings.HasPrefix(l, "x") && strings.Contains(l, marker) {
			return i
		}
	}
	return -1
}

// readRows parses "index v1 v2 ..." rows until a blank line or "end".
func readRows(lines []string, from, cols int, emit func([]float64)) error {
	vals := make([]float64, cols)
	for i := from; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if l == "" || strings.HasPrefix(strings.ToLower(l), "end") {
			return nil
		}
		fields := strings.Fields(l)
		if len(fields) < cols+1 {
			return fmt.Errorf("engine output line %d: expected %d columns, got %d", i+1, cols+1, len(fields))
		}
		for c := 0; c < cols; c++ {
			raw := strings.Trim(fields[c+1], " *")
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("engine output line %d: bad value %q", i+1, fields[c+1])
			}
			vals[c] = v
		}
		emit(vals)
	}
	return nil
}

func checkEmpty(a *Airfoil) (*Airfoil, error) {
	if a.Len() == 0 {
		return nil, fmt.Errorf("%w: table is empty", ErrNoTable)
	}
	return a, nil
}

// Scale returns a copy in dimensional units: stations and ordinates are
// multiplied by chord and shifted so the leading edge sits at (x0, y0).
func (a *Airfoil) Scale(chord, x0, y0 float64) *Airfoil {
	out := &Airfoil{
		Name:     a.Name,
		Cambered: a.Cambered,
		X:        make([]float64, len(a.X)),
		YUpper:   make([]float64, len(a.YUpper)),
		YLower:   make([]float64, len(a.YLower)),
	}
	for i, x := range a.X {
		out.X[i] = x*chord + x0
	}
	for i, y := range a.YUpper {
		out.YUpper[i] = y*chord + y0
	}
	for i, y := range a.YLower {
		out.YLower[i] = y*chord + y0
	}
	return out
}

// MaxThickness returns the largest upper-lower distance and its station.
func (a *Airfoil) MaxThickness() (t, x float64) {
	for i := range a.X {
		if d := a.YUpper[i] - a.YLower[i]; d > t {
			t, x = d, a.X[i]
		}
	}
	return t, x
}
