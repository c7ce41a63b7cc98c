package namelist

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
)

// encodeOrder is the key order written by Encode.
var encodeOrder = []string{
	"name", "profile", "camber", "toc", "chord",
	"cmax", "xmaxc", "cl", "a",
	"xmaxt", "leindex",
	"dencode", "ntable", "xtable",
	"xorigin", "yorigin",
}

const valuesPerLine = 6

// Encode writes p as a &NACA group. Only the keys the engine reads for the
// selected families are written.
func Encode(w io.Writer, p Params) error {
	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString("&" + GroupName + "\n")
	for _, key := range encodeOrder {
		if !p.Applicable(key) {
			continue
		}
		if key == "name" && p.Name == "" {
			continue
		}
		if key == "xtable" {
			writeTable(bw, p.XTable)
			continue
		}
		_, _ = bw.WriteString("  " + key + " = " + p.value(key) + ",\n")
	}
	_, _ = bw.WriteString("/\n")
	return bw.Flush()
}

// Marshal returns the encoded group as a string.
func Marshal(p Params) string {
	var buf bytes.Buffer
	_ = Encode(&buf, p)
	return buf.String()
}

func (p Params) value(key string) string {
	switch key {
	case "a":
		return formatReal(p.A)
	case "camber":
		return quote(string(p.Camber))
	case "cl":
		return formatReal(p.CL)
	case "chord":
		return formatReal(p.Chord)
	case "cmax":
		return formatReal(p.CMax)
	case "dencode":
		return strconv.Itoa(int(p.Dencode))
	case "leindex":
		return formatReal(p.LEIndex)
	case "name":
		return quote(p.Name)
	case "ntable":
		return strconv.Itoa(p.NTable)
	case "profile":
		return quote(string(p.Profile))
	case "toc":
		return formatReal(p.TOC)
	case "xmaxc":
		return formatReal(p.XMaxC)
	case "xmaxt":
		return formatReal(p.XMaxT)
	case "xorigin":
		return formatReal(p.XOrigin)
	case "yorigin":
		return formatReal(p.YOrigin)
	}
	return ""
}

func writeTable(bw *bufio.Writer, xs []float64) {
	if len(xs) == 0 {
		return
	}
	_, _ = bw.WriteString("  xtable =")
	for i, x := range xs {
		if i > 0 && i%valuesPerLine == 0 {
			_, _ = bw.WriteString("\n    ")
		}
		_, _ = bw.WriteString(" " + formatReal(x) + ",")
	}
	_ = bw.WriteByte('\n')
}

// formatReal always carries a decimal point so list-directed reads of
// REAL variables never see a bare integer.
func formatReal(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
