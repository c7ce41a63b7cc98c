package batch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samcharles93/naca456/internal/namelist"
)

// ErrManifest is matched by every manifest decoding error.
var ErrManifest = errors.New("invalid batch manifest")

// Manifest is a parsed batch file:
//
//	jobs: 4
//	defaults:
//	  toc: 0.12
//	cases:
//	  - {camber: "2", cmax: 0.02}
//	  - {profile: "4M", leindex: 3}
//
// Each case starts from the namelist defaults, then the defaults block, then
// its own keys.
type Manifest struct {
	Jobs  int
	Cases []namelist.Params
}

type rawManifest struct {
	Jobs     int         `yaml:"jobs"`
	Defaults yaml.Node   `yaml:"defaults"`
	Cases    []yaml.Node `yaml:"cases"`
}

func LoadManifest(r io.Reader) (*Manifest, error) {
	var raw rawManifest
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrManifest)
		}
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	if raw.Jobs < 0 {
		return nil, fmt.Errorf("%w: jobs must not be negative", ErrManifest)
	}
	if len(raw.Cases) == 0 {
		return nil, fmt.Errorf("%w: no cases", ErrManifest)
	}

	base := namelist.Defaults()
	if !raw.Defaults.IsZero() {
		if err := overlay(&base, &raw.Defaults); err != nil {
			return nil, fmt.Errorf("%w: defaults: %v", ErrManifest, err)
		}
	}

	m := &Manifest{Jobs: raw.Jobs, Cases: make([]namelist.Params, 0, len(raw.Cases))}
	for i := range raw.Cases {
		p := base
		p.XTable = append([]float64(nil), base.XTable...)
		if err := overlay(&p, &raw.Cases[i]); err != nil {
			return nil, fmt.Errorf("%w: case %d: %v", ErrManifest, i+1, err)
		}
		m.Cases = append(m.Cases, p)
	}
	return m, nil
}

func LoadManifestFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadManifest(f)
}

// overlay decodes a mapping node over p, keeping keys the node omits.
func overlay(p *namelist.Params, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of namelist keys", node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i]
		if _, ok := namelist.Lookup(key.Value); !ok {
			return fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
	}
	return node.Decode(p)
}
