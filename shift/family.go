// SPDX-License-Identifier: MIT
// Package shift: the model-family descriptor table.
// One descriptor per family; the forward pass reads everything it needs to
// know about a family from here instead of branching on names.

package shift

import "fmt"

// Family identifies one of the competing model families.
type Family string

// The supported family identifiers (hyperparameter surface values).
const (
	Base          Family = "base"
	Order2        Family = "order-2"
	Order3        Family = "order-3"
	Order4        Family = "order-4"
	CombinedSum   Family = "combined-sum"
	Decomposition Family = "decomposition"
)

// Act names a saturating nonlinearity; the model package maps it to the
// actual function.
type Act int

const (
	// ActTanh is used by every single-track family.
	ActTanh Act = iota
	// ActReLU is used by the three-track decomposition family.
	ActReLU
)

// operator kinds a power term can be rooted at.
type baseOp int

const (
	opLower    baseOp = iota // B1·B1ᵗ
	opUpper                  // B2ᵗ·B2
	opCombined               // lower + upper
)

// opTerm is one entry of a family's operator list: an integer power of a base
// operator. Powers appear in ascending order per base so Build can reuse the
// running product.
type opTerm struct {
	base  baseOp
	power int
}

// Descriptor captures everything family-specific as data.
//
// WeightsPerLayer counts the weight matrices one layer consumes: the
// single-track families pair one weight with the identity term plus one per
// operator (k+1); the decomposition family pairs its seven weights with the
// seven cross-dimensional operators and has no identity term.
type Descriptor struct {
	ID              Family
	Tracks          int // 1, or 3 for node/edge/triangle state
	Activation      Act
	WeightsPerLayer int
	terms           []opTerm // nil for the decomposition family
}

// OperatorCount returns how many shift operators the family consumes.
// Complexity: O(1).
func (d Descriptor) OperatorCount() int {
	if d.ID == Decomposition {
		return decompositionOperators
	}

	return len(d.terms)
}

const decompositionOperators = 7

// The descriptor table. The operator order within each family is load-bearing:
// the forward pass pairs weight i+1 of a layer with operator i positionally,
// so reproducing a checkpoint trained under a different pairing is a matter of
// editing this table, never the propagation code. The order-4 row uses the
// regular ascending lower-then-upper pattern.
var families = map[Family]Descriptor{
	Base: {
		ID: Base, Tracks: 1, Activation: ActTanh, WeightsPerLayer: 3,
		terms: []opTerm{{opLower, 1}, {opUpper, 1}},
	},
	Order2: {
		ID: Order2, Tracks: 1, Activation: ActTanh, WeightsPerLayer: 5,
		terms: []opTerm{{opLower, 1}, {opLower, 2}, {opUpper, 1}, {opUpper, 2}},
	},
	Order3: {
		ID: Order3, Tracks: 1, Activation: ActTanh, WeightsPerLayer: 7,
		terms: []opTerm{
			{opLower, 1}, {opLower, 2}, {opLower, 3},
			{opUpper, 1}, {opUpper, 2}, {opUpper, 3},
		},
	},
	Order4: {
		ID: Order4, Tracks: 1, Activation: ActTanh, WeightsPerLayer: 9,
		terms: []opTerm{
			{opLower, 1}, {opLower, 2}, {opLower, 3}, {opLower, 4},
			{opUpper, 1}, {opUpper, 2}, {opUpper, 3}, {opUpper, 4},
		},
	},
	CombinedSum: {
		ID: CombinedSum, Tracks: 1, Activation: ActTanh, WeightsPerLayer: 4,
		terms: []opTerm{{opCombined, 1}, {opCombined, 2}, {opCombined, 3}},
	},
	Decomposition: {
		ID: Decomposition, Tracks: 3, Activation: ActReLU,
		WeightsPerLayer: decompositionOperators,
	},
}

// Lookup resolves a family identifier to its descriptor.
// Errors: ErrUnknownFamily. Complexity: O(1).
func Lookup(id Family) (Descriptor, error) {
	d, ok := families[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("Lookup(%q): %w", id, ErrUnknownFamily)
	}

	return d, nil
}

// Families returns the known family identifiers (for CLI help and config
// validation); order is unspecified.
func Families() []Family {
	out := make([]Family, 0, len(families))
	for id := range families {
		out = append(out, id)
	}

	return out
}
