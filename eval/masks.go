// SPDX-License-Identifier: MIT
package eval

// Regional transfer splits examples by an index rule instead of random
// sampling: residue 1 (mod 3) marks the upper-region training set, residue 2
// the lower-region test set, and residue 0 stays unassigned. The two masks
// are disjoint and together cover exactly the assigned residues, which tests
// spatial generalization rather than example-level generalization.

const (
	residueUpper = 1
	residueLower = 2
)

// RegionalMasks returns the (train, test) masks for a batch of n examples.
// Complexity: O(n).
func RegionalMasks(n int) (train, test []bool) {
	train = make([]bool, n)
	test = make([]bool, n)
	for i := 0; i < n; i++ {
		switch i % 3 {
		case residueUpper:
			train[i] = true
		case residueLower:
			test[i] = true
		}
	}

	return train, test
}
