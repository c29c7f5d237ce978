// Package framework holds the fixed ZTMM pillar/dimension catalog.
//
// The catalog is defined in catalog.cue and compiled at first use with
// the CUE SDK, so structural constraints (non-empty names, id shape, at
// least one dimension per pillar) are enforced by the schema itself
// rather than hand-written checks.
package framework

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed catalog.cue
var catalogCUE []byte

// Dimension is one scored sub-criterion of a pillar.
type Dimension struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Pillar is one of the four top-level categories.
type Pillar struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	CloudSpecific bool        `json:"cloudSpecific"`
	Dimensions    []Dimension `json:"dimensions"`
}

// Catalog is the decoded framework definition.
type Catalog struct {
	SchemaVersion string             `json:"schemaVersion"`
	Pillars       map[string]*Pillar `json:"pillars"`
}

var loadOnce = sync.OnceValues(compile)

// Load compiles and decodes the embedded catalog. The result is cached;
// repeated calls return the same value.
func Load() (*Catalog, error) {
	return loadOnce()
}

func compile() (*Catalog, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(catalogCUE, cue.Filename("catalog.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile framework catalog: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate framework catalog: %w", err)
	}

	var c Catalog
	if err := v.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode framework catalog: %w", err)
	}
	if len(c.Pillars) == 0 {
		return nil, fmt.Errorf("framework catalog defines no pillars")
	}
	return &c, nil
}

// Pillar returns the named pillar definition, or nil when unknown.
func (c *Catalog) Pillar(id string) *Pillar {
	return c.Pillars[id]
}

// HasDimension reports whether the catalog defines the given dimension
// under the given pillar.
func (c *Catalog) HasDimension(pillarID, dimensionID string) bool {
	p := c.Pillars[pillarID]
	if p == nil {
		return false
	}
	for _, d := range p.Dimensions {
		if d.ID == dimensionID {
			return true
		}
	}
	return false
}

// DimensionCount returns the number of dimensions defined for a pillar,
// or 0 when the pillar is unknown.
func (c *Catalog) DimensionCount(pillarID string) int {
	if p := c.Pillars[pillarID]; p != nil {
		return len(p.Dimensions)
	}
	return 0
}
