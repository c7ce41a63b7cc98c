// Package namelist models the /NACA/ input record consumed by the naca456
// engine and converts it to and from Fortran namelist text.
package namelist

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GroupName is the namelist group the engine reads.
const GroupName = "NACA"

// Camber selects the camber-line family.
type Camber string

const (
	CamberNone        Camber = "0"
	CamberTwoDigit    Camber = "2"
	CamberThreeDigit  Camber = "3"
	CamberThreeReflex Camber = "3R"
	CamberSixSeries   Camber = "6"
	CamberSixSeriesA  Camber = "6A"
	// CamberSixSeriesM is the spelling used by older input decks for the
	// modified 6-series line.
	CamberSixSeriesM Camber = "6M"
)

var cambers = []Camber{
	CamberNone, CamberTwoDigit, CamberThreeDigit, CamberThreeReflex,
	CamberSixSeries, CamberSixSeriesA, CamberSixSeriesM,
}

// ParseCamber accepts any case and surrounding blanks.
func ParseCamber(s string) (Camber, error) {
	c := Camber(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return c, fmt.Errorf("unknown camber line %q", s)
	}
	return c, nil
}

func (c Camber) Valid() bool {
	for _, k := range cambers {
		if c == k {
			return true
		}
	}
	return false
}

// SixSeries reports whether the line is one of the uniform-load 6-series lines.
func (c Camber) SixSeries() bool {
	return c == CamberSixSeries || c == CamberSixSeriesA || c == CamberSixSeriesM
}

// ThreeDigit reports whether the line is the 3-digit line or its reflexed variant.
func (c Camber) ThreeDigit() bool {
	return c == CamberThreeDigit || c == CamberThreeReflex
}

func (c *Camber) UnmarshalText(b []byte) error {
	v, err := ParseCamber(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c *Camber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	return c.UnmarshalText([]byte(unquoteScalar(b)))
}

func (c *Camber) UnmarshalYAML(value *yaml.Node) error {
	return c.UnmarshalText([]byte(value.Value))
}

// Profile selects the thickness family.
type Profile string

const (
	ProfileFour         Profile = "4"
	ProfileFourModified Profile = "4M"
	ProfileSix          Profile = "6"
	ProfileSixA         Profile = "6A"
	Profile63           Profile = "63"
	Profile64           Profile = "64"
	Profile65           Profile = "65"
	Profile66           Profile = "66"
	Profile67           Profile = "67"
	Profile63A          Profile = "63A"
	Profile64A          Profile = "64A"
	Profile65A          Profile = "65A"
)

var profiles = []Profile{
	ProfileFour, ProfileFourModified, ProfileSix, ProfileSixA,
	Profile63, Profile64, Profile65, Profile66, Profile67,
	Profile63A, Profile64A, Profile65A,
}

func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return p, fmt.Errorf("unknown thickness family %q", s)
	}
	return p, nil
}

func (p Profile) Valid() bool {
	for _, k := range profiles {
		if p == k {
			return true
		}
	}
	return false
}

// SixSeries reports whether p is any 6-series thickness family.
func (p Profile) SixSeries() bool {
	return strings.HasPrefix(string(p), "6")
}

// ASeries reports whether p is one of the 6A-series families.
func (p Profile) ASeries() bool {
	return p.SixSeries() && strings.HasSuffix(string(p), "A")
}

func (p *Profile) UnmarshalText(b []byte) error {
	v, err := ParseProfile(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *Profile) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	return p.UnmarshalText([]byte(unquoteScalar(b)))
}

func (p *Profile) UnmarshalYAML(value *yaml.Node) error {
	return p.UnmarshalText([]byte(value.Value))
}

// Dencode selects how the engine spaces the chordwise stations.
type Dencode int

const (
	DencodeUser     Dencode = 0
	DencodeCoarse   Dencode = 1
	DencodeFine     Dencode = 2
	DencodeVeryFine Dencode = 3
)

func (d Dencode) Valid() bool {
	return d >= DencodeUser && d <= DencodeVeryFine
}

func (d Dencode) String() string {
	switch d {
	case DencodeUser:
		return "user"
	case DencodeCoarse:
		return "coarse"
	case DencodeFine:
		return "fine"
	case DencodeVeryFine:
		return "very-fine"
	default:
		return "dencode(" + strconv.Itoa(int(d)) + ")"
	}
}

// Params is the /NACA/ record. Keys follow the engine's namelist names.
type Params struct {
	A       float64   `nml:"a" json:"a" yaml:"a"`
	Camber  Camber    `nml:"camber" json:"camber" yaml:"camber"`
	CL      float64   `nml:"cl" json:"cl" yaml:"cl"`
	Chord   float64   `nml:"chord" json:"chord" yaml:"chord"`
	CMax    float64   `nml:"cmax" json:"cmax" yaml:"cmax"`
	Dencode Dencode   `nml:"dencode" json:"dencode" yaml:"dencode"`
	LEIndex float64   `nml:"leindex" json:"leindex" yaml:"leindex"`
	Name    string    `nml:"name" json:"name" yaml:"name"`
	NTable  int       `nml:"ntable" json:"ntable" yaml:"ntable"`
	Profile Profile   `nml:"profile" json:"profile" yaml:"profile"`
	TOC     float64   `nml:"toc" json:"toc" yaml:"toc"`
	XMaxC   float64   `nml:"xmaxc" json:"xmaxc" yaml:"xmaxc"`
	XMaxT   float64   `nml:"xmaxt" json:"xmaxt" yaml:"xmaxt"`
	XOrigin float64   `nml:"xorigin" json:"xorigin" yaml:"xorigin"`
	YOrigin float64   `nml:"yorigin" json:"yorigin" yaml:"yorigin"`
	XTable  []float64 `nml:"xtable" json:"xtable,omitempty" yaml:"xtable,omitempty"`
}

// Defaults returns the values the engine assumes for keys absent from the
// input deck.
func Defaults() Params {
	return Params{
		A:       1.0,
		Camber:  CamberNone,
		Chord:   1.0,
		Dencode: DencodeCoarse,
		LEIndex: 6.0,
		Profile: ProfileFour,
		TOC:     0.1,
		XMaxC:   0.4,
		XMaxT:   0.3,
	}
}

// Normalize fills ntable from the table length when only xtable was given.
func (p Params) Normalize() Params {
	if p.Dencode == DencodeUser && p.NTable == 0 && len(p.XTable) > 0 {
		p.NTable = len(p.XTable)
	}
	if len(p.XTable) > 0 {
		p.XTable = append([]float64(nil), p.XTable...)
	}
	return p
}

func unquoteScalar(b []byte) string {
	s := strings.TrimSpace(string(b))
	if uq, err := strconv.Unquote(s); err == nil {
		return uq
	}
	return s
}
