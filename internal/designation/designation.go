// Package designation derives canonical NACA names and filesystem stems
// from a /NACA/ record.
package designation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/samcharles93/naca456/internal/namelist"
)

// ErrNoDesignation is returned when the families selected by a record have
// no standard NACA number.
var ErrNoDesignation = errors.New("no standard designation")

// Name returns the NACA number for p, e.g. "NACA 2412", "NACA 23012",
// "NACA 0012-63", "NACA 63-615" or "NACA 64A210".
func Name(p namelist.Params) (string, error) {
	t := digits(p.TOC * 100)
	if t < 0 || t > 99 {
		return "", fmt.Errorf("%w: thickness %g%% does not fit two digits", ErrNoDesignation, p.TOC*100)
	}

	switch {
	case p.Profile == namelist.ProfileFour && p.Camber.ThreeDigit():
		return fiveDigit(p, t)
	case p.Profile == namelist.ProfileFour:
		base, err := fourDigit(p, t)
		if err != nil {
			return "", err
		}
		return "NACA " + base, nil
	case p.Profile == namelist.ProfileFourModified:
		base, err := fourDigit(p, t)
		if err != nil {
			return "", err
		}
		le, pos := digits(p.LEIndex), digits(p.XMaxT*10)
		if le < 0 || le > 9 || pos < 1 || pos > 9 {
			return "", fmt.Errorf("%w: leindex %g / xmaxt %g do not fit one digit", ErrNoDesignation, p.LEIndex, p.XMaxT)
		}
		return fmt.Sprintf("NACA %s-%d%d", base, le, pos), nil
	case p.Profile.SixSeries():
		return sixSeries(p, t)
	}
	return "", fmt.Errorf("%w: profile %q with camber %q", ErrNoDesignation, p.Profile, p.Camber)
}

func fourDigit(p namelist.Params, t int) (string, error) {
	var m, pos int
	switch p.Camber {
	case namelist.CamberNone:
	case namelist.CamberTwoDigit:
		m, pos = digits(p.CMax*100), digits(p.XMaxC*10)
	default:
		return "", fmt.Errorf("%w: 4-digit thickness with camber %q", ErrNoDesignation, p.Camber)
	}
	if m < 0 || m > 9 || pos < 0 || pos > 9 {
		return "", fmt.Errorf("%w: cmax %g / xmaxc %g do not fit one digit", ErrNoDesignation, p.CMax, p.XMaxC)
	}
	if m == 0 {
		pos = 0
	}
	return fmt.Sprintf("%d%d%02d", m, pos, t), nil
}

// fiveDigit covers the 3-digit camber lines: L = 20/3 of the design lift
// coefficient, P = twice the max camber position in tenths, Q = reflex flag.
func fiveDigit(p namelist.Params, t int) (string, error) {
	l := digits(p.CL * 20 / 3)
	pos := digits(p.XMaxC * 20)
	if l < 1 || l > 9 || pos < 1 || pos > 9 {
		return "", fmt.Errorf("%w: cl %g / xmaxc %g do not fit the five-digit series", ErrNoDesignation, p.CL, p.XMaxC)
	}
	q := 0
	if p.Camber == namelist.CamberThreeReflex {
		q = 1
	}
	return fmt.Sprintf("NACA %d%d%d%02d", l, pos, q, t), nil
}

func sixSeries(p namelist.Params, t int) (string, error) {
	if p.Profile == namelist.ProfileSix || p.Profile == namelist.ProfileSixA {
		return "", fmt.Errorf("%w: generic %s-series family has no series digit", ErrNoDesignation, p.Profile)
	}
	cl := 0
	if p.Camber != namelist.CamberNone {
		if !p.Camber.SixSeries() {
			return "", fmt.Errorf("%w: 6-series thickness with camber %q", ErrNoDesignation, p.Camber)
		}
		cl = digits(p.CL * 10)
	}
	if cl < 0 || cl > 9 {
		return "", fmt.Errorf("%w: cl %g does not fit one digit", ErrNoDesignation, p.CL)
	}
	if p.Profile.ASeries() {
		return fmt.Sprintf("NACA %s%d%02d", p.Profile, cl, t), nil
	}
	return fmt.Sprintf("NACA %s-%d%02d", p.Profile, cl, t), nil
}

func digits(v float64) int {
	return int(math.Round(v))
}

// Stem turns a title into a filename stem: lower case, letters and digits only.
func Stem(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "airfoil"
	}
	return sb.String()
}

// Resolve fills p.Name from the designation when it is empty.
func Resolve(p namelist.Params) (namelist.Params, error) {
	if strings.TrimSpace(p.Name) != "" {
		return p, nil
	}
	name, err := Name(p)
	if err != nil {
		return p, err
	}
	p.Name = name
	return p, nil
}
