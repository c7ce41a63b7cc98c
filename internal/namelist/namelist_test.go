package namelist

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldsMatchParamsTags(t *testing.T) {
	t.Parallel()

	tags := make(map[string]bool)
	typ := reflect.TypeOf(Params{})
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("nml")
		if tag == "" {
			t.Fatalf("field %s has no nml tag", typ.Field(i).Name)
		}
		tags[tag] = true
	}

	seen := make(map[string]bool)
	for _, f := range Fields() {
		if seen[f.Key] {
			t.Fatalf("field %q documented twice", f.Key)
		}
		seen[f.Key] = true
		if !tags[f.Key] {
			t.Fatalf("documented field %q has no Params field", f.Key)
		}
		if f.Meaning == "" || f.Type == "" {
			t.Fatalf("field %q is missing its type or meaning", f.Key)
		}
	}
	for tag := range tags {
		if !seen[tag] {
			t.Fatalf("Params field %q is not documented", tag)
		}
	}
}

func TestEncodeOrderCoversEveryKey(t *testing.T) {
	t.Parallel()

	for _, f := range Fields() {
		found := false
		for _, k := range encodeOrder {
			if k == f.Key {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("encode order misses %q", f.Key)
		}
	}
}

func TestParseEnums(t *testing.T) {
	t.Parallel()

	if c, err := ParseCamber(" 3r "); err != nil || c != CamberThreeReflex {
		t.Fatalf("ParseCamber(3r) = %q, %v", c, err)
	}
	if _, err := ParseCamber("5"); err == nil {
		t.Fatalf("expected error for camber 5")
	}
	if p, err := ParseProfile("64a"); err != nil || p != Profile64A {
		t.Fatalf("ParseProfile(64a) = %q, %v", p, err)
	}
	if !Profile65A.ASeries() || Profile65.ASeries() || ProfileFour.SixSeries() {
		t.Fatalf("profile family predicates are wrong")
	}
	if !CamberSixSeriesM.SixSeries() || CamberTwoDigit.SixSeries() {
		t.Fatalf("camber family predicates are wrong")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(p *Params)
		fields []string
	}{
		{name: "defaults", mutate: func(*Params) {}},
		{name: "bad camber", mutate: func(p *Params) { p.Camber = "9" }, fields: []string{"camber"}},
		{name: "bad profile", mutate: func(p *Params) { p.Profile = "12" }, fields: []string{"profile"}},
		{name: "bad dencode", mutate: func(p *Params) { p.Dencode = 7 }, fields: []string{"dencode"}},
		{name: "zero chord", mutate: func(p *Params) { p.Chord = 0 }, fields: []string{"chord"}},
		{name: "thick", mutate: func(p *Params) { p.TOC = 1.2 }, fields: []string{"toc"}},
		{
			name: "two digit camber out of range",
			mutate: func(p *Params) {
				p.Camber = CamberTwoDigit
				p.CMax = 1.5
				p.XMaxC = 0
			},
			fields: []string{"cmax", "xmaxc"},
		},
		{
			name: "cmax ignored without two digit camber",
			mutate: func(p *Params) {
				p.CMax = 1.5
			},
		},
		{
			name: "six series loading",
			mutate: func(p *Params) {
				p.Camber = CamberSixSeries
				p.A = 1.4
			},
			fields: []string{"a"},
		},
		{
			name: "four digit modified",
			mutate: func(p *Params) {
				p.Profile = ProfileFourModified
				p.XMaxT = 1
				p.LEIndex = -1
			},
			fields: []string{"xmaxt", "leindex"},
		},
		{
			name: "user table missing",
			mutate: func(p *Params) {
				p.Dencode = DencodeUser
			},
			fields: []string{"ntable"},
		},
		{
			name: "user table length mismatch",
			mutate: func(p *Params) {
				p.Dencode = DencodeUser
				p.NTable = 3
				p.XTable = []float64{0, 0.5}
			},
			fields: []string{"xtable"},
		},
		{
			name: "user table not increasing",
			mutate: func(p *Params) {
				p.Dencode = DencodeUser
				p.NTable = 3
				p.XTable = []float64{0, 0.5, 0.5}
			},
			fields: []string{"xtable"},
		},
		{
			name: "user table out of range",
			mutate: func(p *Params) {
				p.Dencode = DencodeUser
				p.NTable = 2
				p.XTable = []float64{0, 1.5}
			},
			fields: []string{"xtable"},
		},
		{
			name: "non-finite reals",
			mutate: func(p *Params) {
				p.Chord = math.Inf(1)
				p.TOC = math.NaN()
			},
			fields: []string{"chord", "toc"},
		},
		{
			name: "non-finite inapplicable reals",
			mutate: func(p *Params) {
				p.CL = math.NaN()
				p.XOrigin = math.Inf(-1)
			},
			fields: []string{"cl", "xorigin"},
		},
		{
			name: "user table with NaN",
			mutate: func(p *Params) {
				p.Dencode = DencodeUser
				p.NTable = 3
				p.XTable = []float64{0, math.NaN(), 1}
			},
			fields: []string{"xtable"},
		},
		{
			name: "user table ok",
			mutate: func(p *Params) {
				p.Dencode = DencodeUser
				p.NTable = 3
				p.XTable = []float64{0, 0.5, 1}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := Defaults()
			tt.mutate(&p)
			err := p.Validate()
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			var got []string
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			if diff := cmp.Diff(tt.fields, got); diff != "" {
				t.Fatalf("field mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeFillsNTable(t *testing.T) {
	t.Parallel()

	p := Defaults()
	p.Dencode = DencodeUser
	p.XTable = []float64{0, 0.25, 1}
	n := p.Normalize()
	if n.NTable != 3 {
		t.Fatalf("ntable: got %d want 3", n.NTable)
	}
	n.XTable[0] = 9
	if p.XTable[0] != 0 {
		t.Fatalf("Normalize must not alias the caller's table")
	}
}

func TestApplicableAndIgnored(t *testing.T) {
	t.Parallel()

	p := Defaults()
	p.CL = 0.3
	p.CMax = 0.02
	p.XMaxT = 0.4
	p.XTable = []float64{0, 1}
	if diff := cmp.Diff([]string{"cl", "cmax", "xmaxt", "xtable"}, p.Ignored()); diff != "" {
		t.Fatalf("ignored mismatch (-want +got):\n%s", diff)
	}

	p = Defaults()
	p.Camber = CamberThreeDigit
	p.XMaxC = 0.15
	if got := p.Ignored(); len(got) != 0 {
		t.Fatalf("unnamed 3-digit line keeps xmaxc for its designation, got %v", got)
	}
	p.Name = "custom"
	if diff := cmp.Diff([]string{"xmaxc"}, p.Ignored()); diff != "" {
		t.Fatalf("ignored mismatch (-want +got):\n%s", diff)
	}

	p = Defaults()
	p.Camber = CamberSixSeriesA
	for _, key := range []string{"a", "cl", "name", "toc"} {
		if !p.Applicable(key) {
			t.Fatalf("%s should apply to 6A camber", key)
		}
	}
	for _, key := range []string{"cmax", "xmaxc", "xmaxt", "leindex", "xtable", "bogus"} {
		if p.Applicable(key) {
			t.Fatalf("%s should not apply to 6A camber", key)
		}
	}
}

func TestEncodeWritesApplicableKeys(t *testing.T) {
	t.Parallel()

	p := Defaults()
	p.Name = "NACA 2412"
	p.Camber = CamberTwoDigit
	p.CMax = 0.02
	p.TOC = 0.12
	p.CL = 0.5

	got := Marshal(p)
	want := "&NACA\n" +
		"  name = 'NACA 2412',\n" +
		"  profile = '4',\n" +
		"  camber = '2',\n" +
		"  toc = 0.12,\n" +
		"  chord = 1.0,\n" +
		"  cmax = 0.02,\n" +
		"  xmaxc = 0.4,\n" +
		"  dencode = 1,\n" +
		"  xorigin = 0.0,\n" +
		"  yorigin = 0.0,\n" +
		"/\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("encoded namelist mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeQuotesAndTables(t *testing.T) {
	t.Parallel()

	p := Defaults()
	p.Name = "pilot's foil"
	p.Dencode = DencodeUser
	p.XTable = []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 1}
	p = p.Normalize()

	got := Marshal(p)
	if !strings.Contains(got, "name = 'pilot''s foil',") {
		t.Fatalf("quote not doubled:\n%s", got)
	}
	if !strings.Contains(got, "ntable = 8,") {
		t.Fatalf("missing ntable:\n%s", got)
	}
	if !strings.Contains(got, "xtable = 0.0, 0.1, 0.2, 0.3, 0.4, 0.5,\n     0.6, 1.0,") {
		t.Fatalf("unexpected table layout:\n%s", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	p := Defaults()
	p.Name = "NACA 63-615"
	p.Profile = Profile63
	p.Camber = CamberSixSeriesM
	p.CL = 0.6
	p.A = 0.8
	p.TOC = 0.15
	p.Dencode = DencodeVeryFine

	got, err := Unmarshal(Marshal(p))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	src := `Input deck written by hand
 &naca
   NAME = "Test ""foil""",   ! title
   profile='63A' camber = 6a
   toc = 1.2d-1, cl=0.4; a=0.5
   dencode = 0, ntable = 5,
   xtable = 0.0, 3*0.25
   xtable(3) = 0.5, 0.75 xtable(5)=1
 /
 &other x = 1 /
`
	p, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := Defaults()
	want.Name = `Test "foil"`
	want.Profile = Profile63A
	want.Camber = CamberSixSeriesA
	want.TOC = 0.12
	want.CL = 0.4
	want.A = 0.5
	want.Dencode = DencodeUser
	want.NTable = 5
	want.XTable = []float64{0, 0.25, 0.5, 0.75, 1}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("decoded deck should validate: %v", err)
	}
}

func TestDecodeLegacyDollarForm(t *testing.T) {
	t.Parallel()

	p, err := Unmarshal("$NACA profile='4M', leindex=3, xmaxt=0.5, toc=0.09 $END")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Profile != ProfileFourModified || p.LEIndex != 3 || p.XMaxT != 0.5 || p.TOC != 0.09 {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want error
		line int
	}{
		{name: "no group", src: "toc = 0.1", want: ErrNoGroup},
		{name: "empty", src: "", want: ErrNoGroup},
		{name: "unknown key", src: "&NACA\n bogus = 1 /", want: ErrSyntax, line: 2},
		{name: "unterminated", src: "&NACA toc = 0.1,", want: ErrSyntax, line: 1},
		{name: "bad real", src: "&NACA\n\n toc = thin /", want: ErrSyntax, line: 3},
		{name: "bad integer", src: "&NACA dencode = 1.5 /", want: ErrSyntax, line: 1},
		{name: "scalar with two values", src: "&NACA toc = 0.1, 0.2 /", want: ErrSyntax, line: 1},
		{name: "unterminated string", src: "&NACA name = 'abc /", want: ErrSyntax, line: 1},
		{name: "unknown camber", src: "&NACA camber = '5' /", want: ErrSyntax, line: 1},
		{name: "missing equals", src: "&NACA toc 0.1 /", want: ErrSyntax, line: 1},
		{name: "subscript on scalar", src: "&NACA toc(2) = 0.1 /", want: ErrSyntax, line: 1},
		{name: "bad repeat", src: "&NACA xtable = x*0.1 /", want: ErrSyntax, line: 1},
		{name: "nan real", src: "&NACA\n toc = NaN /", want: ErrSyntax, line: 2},
		{name: "infinite real", src: "&NACA chord = Inf /", want: ErrSyntax, line: 1},
		{name: "nan in table", src: "&NACA dencode = 0, xtable = 0.0, NaN, 1.0 /", want: ErrSyntax, line: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Unmarshal(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.line == 0 {
				return
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if serr.Line != tt.line {
				t.Fatalf("line: got %d want %d (%v)", serr.Line, tt.line, err)
			}
		})
	}
}

func TestDecodeNullValuesKeepDefaults(t *testing.T) {
	t.Parallel()

	p, err := Unmarshal("&NACA chord = , toc = 0.2 /")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Chord != 1 || p.TOC != 0.2 {
		t.Fatalf("unexpected params: %+v", p)
	}
}
