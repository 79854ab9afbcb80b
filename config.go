package retarget

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// RootFallbackFirstMapped selects the first child of the source root that
// maps to a target joint when the animated source root itself is unmapped.
const RootFallbackFirstMapped = "first-mapped-child"

// Policy tunes the deliberate, named retargeting decisions without touching
// the built-in mapping tables. The zero value is not usable; start from
// DefaultPolicy or LoadPolicy.
type Policy struct {
	// RootFallback selects where the root translation track attaches when
	// the source's translation-bearing joint is unmapped: either
	// RootFallbackFirstMapped or the name of a specific source joint.
	RootFallback string `yaml:"root_fallback"`

	// Skip adds target joints to a format's inert list, keyed by format
	// tag name.
	Skip map[string][]string `yaml:"skip"`

	// NoCorrection adds target joints to a format's direction-correction
	// exception list, keyed by format tag name.
	NoCorrection map[string][]string `yaml:"no_correction"`
}

// DefaultPolicy returns the policy used when no config file is supplied.
func DefaultPolicy() Policy {
	return Policy{RootFallback: RootFallbackFirstMapped}
}

// LoadPolicy reads a YAML policy file. Omitted fields keep their defaults.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse policy %s: %w", path, err)
	}
	if p.RootFallback == "" {
		p.RootFallback = RootFallbackFirstMapped
	}
	return p, nil
}

// tableWith returns the format's table merged with the policy's additions.
// The built-in tables are never mutated.
func (p Policy) tableWith(f Format) *boneTable {
	base := tableFor(f)
	extraSkip := p.Skip[f.String()]
	extraNoCorr := p.NoCorrection[f.String()]
	if len(extraSkip) == 0 && len(extraNoCorr) == 0 {
		return base
	}
	merged := &boneTable{
		bones:        base.bones,
		skip:         make(map[string]bool, len(base.skip)+len(extraSkip)),
		noCorrection: make(map[string]bool, len(base.noCorrection)+len(extraNoCorr)),
		posedRest:    base.posedRest,
	}
	for k := range base.skip {
		merged.skip[k] = true
	}
	for _, k := range extraSkip {
		merged.skip[k] = true
	}
	for k := range base.noCorrection {
		merged.noCorrection[k] = true
	}
	for _, k := range extraNoCorr {
		merged.noCorrection[k] = true
	}
	return merged
}
