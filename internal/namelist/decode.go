package namelist

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SyntaxError reports malformed namelist input.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("namelist line %d: %s", e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

type tokenKind int

const (
	tokWord tokenKind = iota
	tokString
	tokEquals
	tokComma
	tokGroup
	tokEnd
)

type token struct {
	kind tokenKind
	text string
	line int
}

// Decode reads the first &NACA group from r. Keys not present keep their
// Defaults values. Both the "&NACA ... /" and the older "$NACA ... $END"
// forms are accepted.
func Decode(r io.Reader) (Params, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return Params{}, err
	}
	return Unmarshal(string(src))
}

// Unmarshal is Decode over a string.
func Unmarshal(src string) (Params, error) {
	toks, err := lex(src)
	if err != nil {
		return Params{}, err
	}

	start := -1
	for i, t := range toks {
		if t.kind == tokGroup && strings.EqualFold(t.text, GroupName) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return Params{}, ErrNoGroup
	}

	p := Defaults()
	i := start
	for {
		if i >= len(toks) {
			return Params{}, &SyntaxError{Line: toks[len(toks)-1].line, Msg: "unterminated &NACA group"}
		}
		t := toks[i]
		switch t.kind {
		case tokEnd:
			return p, nil
		case tokComma:
			i++
			continue
		case tokWord:
		default:
			return Params{}, &SyntaxError{Line: t.line, Msg: fmt.Sprintf("expected a key, found %q", t.text)}
		}
		if i+1 >= len(toks) || toks[i+1].kind != tokEquals {
			return Params{}, &SyntaxError{Line: t.line, Msg: fmt.Sprintf("expected '=' after %q", t.text)}
		}

		j := i + 2
		var values []token
		for j < len(toks) {
			v := toks[j]
			if v.kind == tokEnd || v.kind == tokGroup {
				break
			}
			if v.kind == tokWord && j+1 < len(toks) && toks[j+1].kind == tokEquals {
				break
			}
			if v.kind == tokEquals {
				return Params{}, &SyntaxError{Line: v.line, Msg: "unexpected '='"}
			}
			if v.kind != tokComma {
				values = append(values, v)
			}
			j++
		}
		if err := p.assign(t, values); err != nil {
			return Params{}, err
		}
		i = j
	}
}

func lex(src string) ([]token, error) {
	var toks []token
	line := 1
	n := len(src)
	for i := 0; i < n; {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '!':
			for i < n && src[i] != '\n' {
				i++
			}
		case c == '=':
			toks = append(toks, token{kind: tokEquals, text: "=", line: line})
			i++
		case c == ',' || c == ';':
			toks = append(toks, token{kind: tokComma, text: ",", line: line})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokEnd, text: "/", line: line})
			i++
		case c == '&' || c == '$':
			j := i + 1
			for j < n && isWordByte(src[j]) {
				j++
			}
			name := src[i+1 : j]
			if name == "" || strings.EqualFold(name, "END") {
				toks = append(toks, token{kind: tokEnd, text: src[i:j], line: line})
			} else {
				toks = append(toks, token{kind: tokGroup, text: name, line: line})
			}
			i = j
		case c == '\'' || c == '"':
			var sb strings.Builder
			startLine := line
			j := i + 1
			closed := false
			for j < n {
				if src[j] == c {
					if j+1 < n && src[j+1] == c {
						sb.WriteByte(c)
						j += 2
						continue
					}
					closed = true
					j++
					break
				}
				if src[j] == '\n' {
					line++
				}
				sb.WriteByte(src[j])
				j++
			}
			if !closed {
				return nil, &SyntaxError{Line: startLine, Msg: "unterminated string"}
			}
			toks = append(toks, token{kind: tokString, text: sb.String(), line: startLine})
			i = j
		default:
			j := i
			for j < n && !isDelimiter(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: src[i:j], line: line})
			i = j
		}
	}
	return toks, nil
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', ';', '=', '/', '!', '&', '$', '\'', '"':
		return true
	}
	return false
}

// assign stores the values of one "key = v1, v2, ..." item. A key may carry
// a 1-based subscript, e.g. "xtable(3) = 0.25".
func (p *Params) assign(key token, values []token) error {
	name, index, err := splitSubscript(key)
	if err != nil {
		return err
	}
	vals, err := expandRepeats(values)
	if err != nil {
		return err
	}

	if name == "xtable" {
		return p.assignTable(key.line, index, vals)
	}
	if index > 0 {
		return &SyntaxError{Line: key.line, Msg: fmt.Sprintf("%s is not an array", name)}
	}
	if len(vals) == 0 {
		// A null value leaves the current setting in place.
		return nil
	}
	if len(vals) > 1 {
		return &SyntaxError{Line: key.line, Msg: fmt.Sprintf("%s takes one value, got %d", name, len(vals))}
	}
	v := vals[0]
	if v == nil {
		return nil
	}

	switch name {
	case "a":
		return parseReal(v, &p.A)
	case "cl":
		return parseReal(v, &p.CL)
	case "chord":
		return parseReal(v, &p.Chord)
	case "cmax":
		return parseReal(v, &p.CMax)
	case "leindex":
		return parseReal(v, &p.LEIndex)
	case "toc":
		return parseReal(v, &p.TOC)
	case "xmaxc":
		return parseReal(v, &p.XMaxC)
	case "xmaxt":
		return parseReal(v, &p.XMaxT)
	case "xorigin":
		return parseReal(v, &p.XOrigin)
	case "yorigin":
		return parseReal(v, &p.YOrigin)
	case "dencode":
		n, err := parseInt(v)
		if err != nil {
			return err
		}
		p.Dencode = Dencode(n)
	case "ntable":
		n, err := parseInt(v)
		if err != nil {
			return err
		}
		p.NTable = n
	case "name":
		p.Name = v.text
	case "camber":
		c, err := ParseCamber(v.text)
		if err != nil {
			return &SyntaxError{Line: v.line, Msg: err.Error()}
		}
		p.Camber = c
	case "profile":
		pr, err := ParseProfile(v.text)
		if err != nil {
			return &SyntaxError{Line: v.line, Msg: err.Error()}
		}
		p.Profile = pr
	default:
		return &SyntaxError{Line: key.line, Msg: fmt.Sprintf("unknown key %q", key.text)}
	}
	return nil
}

func (p *Params) assignTable(line, index int, vals []*token) error {
	if index == 0 {
		index = 1
	}
	for k, v := range vals {
		pos := index - 1 + k
		for len(p.XTable) <= pos {
			p.XTable = append(p.XTable, 0)
		}
		if v == nil {
			continue
		}
		if err := parseReal(v, &p.XTable[pos]); err != nil {
			return err
		}
	}
	if index > 1 && len(vals) == 0 {
		return &SyntaxError{Line: line, Msg: "xtable subscript without a value"}
	}
	return nil
}

func splitSubscript(key token) (string, int, error) {
	name := strings.ToLower(key.text)
	open := strings.IndexByte(name, '(')
	if open < 0 {
		return name, 0, nil
	}
	if !strings.HasSuffix(name, ")") {
		return "", 0, &SyntaxError{Line: key.line, Msg: fmt.Sprintf("malformed subscript in %q", key.text)}
	}
	idx, err := strconv.Atoi(strings.TrimSpace(name[open+1 : len(name)-1]))
	if err != nil || idx < 1 {
		return "", 0, &SyntaxError{Line: key.line, Msg: fmt.Sprintf("malformed subscript in %q", key.text)}
	}
	return name[:open], idx, nil
}

// expandRepeats turns "3*0.5" into three values and "2*" into two nulls.
func expandRepeats(values []token) ([]*token, error) {
	out := make([]*token, 0, len(values))
	for i := range values {
		v := values[i]
		if v.kind == tokWord {
			if star := strings.IndexByte(v.text, '*'); star > 0 {
				count, err := strconv.Atoi(v.text[:star])
				if err != nil || count < 1 {
					return nil, &SyntaxError{Line: v.line, Msg: fmt.Sprintf("bad repeat count in %q", v.text)}
				}
				rest := v.text[star+1:]
				for k := 0; k < count; k++ {
					if rest == "" {
						out = append(out, nil)
						continue
					}
					out = append(out, &token{kind: tokWord, text: rest, line: v.line})
				}
				continue
			}
		}
		out = append(out, &values[i])
	}
	return out, nil
}

func parseReal(t *token, dst *float64) error {
	s := strings.NewReplacer("d", "e", "D", "e").Replace(t.text)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return &SyntaxError{Line: t.line, Msg: fmt.Sprintf("bad real value %q", t.text)}
	}
	*dst = v
	return nil
}

func parseInt(t *token) (int, error) {
	v, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, &SyntaxError{Line: t.line, Msg: fmt.Sprintf("bad integer value %q", t.text)}
	}
	return v, nil
}
