package namelist

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalid is matched by every validation failure.
	ErrInvalid = errors.New("invalid namelist")
	// ErrSyntax is matched by every decode failure.
	ErrSyntax = errors.New("namelist syntax error")
	// ErrNoGroup is returned when the input carries no /NACA/ group.
	ErrNoGroup = errors.New("no &NACA group found")
)

// FieldError reports one rejected field.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Msg
}

// ValidationError collects every FieldError found in one record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "invalid namelist: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Validate checks p against the engine's input rules. Fields that do not
// apply to the selected families are not range-checked; see Ignored.
func (p Params) Validate() error {
	var errs []FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Msg: fmt.Sprintf(format, args...)})
	}

	if !p.Camber.Valid() {
		add("camber", "unknown camber line %q", string(p.Camber))
	}
	if !p.Profile.Valid() {
		add("profile", "unknown thickness family %q", string(p.Profile))
	}
	if !p.Dencode.Valid() {
		add("dencode", "must be 0, 1, 2 or 3, got %d", int(p.Dencode))
	}

	// NaN fails every comparison below, so non-finite reals are caught first
	// and skip their range check.
	nonFinite := make(map[string]bool)
	for _, r := range p.reals() {
		if !isFinite(r.v) {
			add(r.key, "must be finite, got %g", r.v)
			nonFinite[r.key] = true
		}
	}
	check := func(key string, bad bool, format string, v float64) {
		if !nonFinite[key] && bad {
			add(key, format, v)
		}
	}

	check("chord", p.Chord <= 0, "must be positive, got %g", p.Chord)
	check("toc", p.TOC <= 0 || p.TOC >= 1, "must be in (0, 1), got %g", p.TOC)
	check("a", p.Applicable("a") && (p.A < 0 || p.A > 1), "must be in [0, 1], got %g", p.A)
	check("cmax", p.Applicable("cmax") && (p.CMax < 0 || p.CMax >= 1), "must be in [0, 1), got %g", p.CMax)
	check("xmaxc", p.Applicable("xmaxc") && (p.XMaxC <= 0 || p.XMaxC >= 1), "must be in (0, 1), got %g", p.XMaxC)
	check("xmaxt", p.Applicable("xmaxt") && (p.XMaxT <= 0 || p.XMaxT >= 1), "must be in (0, 1), got %g", p.XMaxT)
	check("leindex", p.Applicable("leindex") && p.LEIndex < 0, "must not be negative, got %g", p.LEIndex)

	if p.Dencode == DencodeUser {
		switch {
		case p.NTable <= 0:
			add("ntable", "must be positive when dencode=0, got %d", p.NTable)
		case len(p.XTable) != p.NTable:
			add("xtable", "has %d entries, ntable says %d", len(p.XTable), p.NTable)
		}
		for i, x := range p.XTable {
			if !isFinite(x) || x < 0 || x > 1 {
				add("xtable", "entry %d is %g, outside [0, 1]", i+1, x)
				break
			}
			if i > 0 && x <= p.XTable[i-1] {
				add("xtable", "entry %d (%g) does not increase", i+1, x)
				break
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// Applicable reports whether the engine reads key for the selected camber
// line, thickness family and spacing mode. Unknown keys are not applicable.
func (p Params) Applicable(key string) bool {
	switch strings.ToLower(key) {
	case "name", "camber", "profile", "toc", "chord", "dencode", "xorigin", "yorigin":
		return true
	case "a":
		return p.Camber.SixSeries()
	case "cl":
		return p.Camber.ThreeDigit() || p.Camber.SixSeries()
	case "cmax", "xmaxc":
		return p.Camber == CamberTwoDigit
	case "xmaxt", "leindex":
		return p.Profile == ProfileFourModified
	case "ntable", "xtable":
		return p.Dencode == DencodeUser
	default:
		return false
	}
}

// Ignored lists the keys that carry a non-default value the engine will
// not read. A 3-digit line keeps xmaxc when the record has no name, since
// the five-digit designation is derived from it.
func (p Params) Ignored() []string {
	d := Defaults()
	var out []string
	check := func(key string, changed bool) {
		if changed && !p.Applicable(key) {
			out = append(out, key)
		}
	}
	check("a", p.A != d.A)
	check("cl", p.CL != d.CL)
	check("cmax", p.CMax != d.CMax)
	if !(p.Camber.ThreeDigit() && p.Name == "") {
		check("xmaxc", p.XMaxC != d.XMaxC)
	}
	check("xmaxt", p.XMaxT != d.XMaxT)
	check("leindex", p.LEIndex != d.LEIndex)
	check("ntable", p.NTable != d.NTable)
	check("xtable", len(p.XTable) > 0)
	return out
}

type realField struct {
	key string
	v   float64
}

func (p Params) reals() []realField {
	return []realField{
		{"a", p.A}, {"cl", p.CL}, {"chord", p.Chord}, {"cmax", p.CMax},
		{"leindex", p.LEIndex}, {"toc", p.TOC}, {"xmaxc", p.XMaxC},
		{"xmaxt", p.XMaxT}, {"xorigin", p.XOrigin}, {"yorigin", p.YOrigin},
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
