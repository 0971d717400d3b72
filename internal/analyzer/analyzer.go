package analyzer

import (
	"sort"

	"github.com/mcncl/jsonkit/internal/models"
)

// Summary describes the shape of a value tree.
type Summary struct {
	// Depth is the deepest container nesting. A lone empty object has depth 1;
	// scalars do not add a level.
	Depth    int `yaml:"depth"`
	Objects  int `yaml:"objects"`
	Arrays   int `yaml:"arrays"`
	Strings  int `yaml:"strings"`
	Numbers  int `yaml:"numbers"`
	Booleans int `yaml:"booleans"`
	Nulls    int `yaml:"nulls"`
	// Members counts object members across the whole tree.
	Members int `yaml:"members"`
	// Keys lists each distinct object key once, sorted.
	Keys []string `yaml:"keys"`
}

// Analyzer walks value trees and collects a Summary
type Analyzer struct {
	// keys tracks distinct object keys seen so far
	keys    map[string]struct{}
	summary Summary
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{keys: make(map[string]struct{})}
}

// Analyze returns the summary of v. The Analyzer can be reused.
func (a *Analyzer) Analyze(v models.Value) Summary {
	a.keys = make(map[string]struct{})
	a.summary = Summary{}

	a.summary.Depth = a.analyzeNode(v)

	keys := make([]string, 0, len(a.keys))
	for k := range a.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	a.summary.Keys = keys

	return a.summary
}

// analyzeNode counts node and its descendants and returns the container depth
// below and including node.
func (a *Analyzer) analyzeNode(node models.Value) int {
	switch v := node.(type) {
	case *models.Object:
		if v == nil {
			a.summary.Nulls++
			return 0
		}
		a.summary.Objects++
		a.summary.Members += v.Len()
		deepest := 0
		for _, m := range v.Members() {
			a.keys[m.Key] = struct{}{}
			if d := a.analyzeNode(m.Value); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	case models.Array:
		a.summary.Arrays++
		deepest := 0
		for _, e := range v {
			if d := a.analyzeNode(e); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	case models.String:
		a.summary.Strings++
	case models.Number:
		a.summary.Numbers++
	case models.Boolean:
		a.summary.Booleans++
	case models.Null, nil:
		a.summary.Nulls++
	}
	return 0
}
