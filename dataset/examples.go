// SPDX-License-Identifier: MIT
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/hodgeflow/eval"
	"github.com/katalvlaran/hodgeflow/simplex"
)

// EncodeFlow turns a node walk into its signed one-hot edge encoding: +1 on
// an edge traversed along its stored orientation, -1 against it, summed over
// repeated traversals.
// Errors: simplex.ErrUnknownEdge when consecutive nodes are not adjacent.
// Complexity: O(len(walk)).
func EncodeFlow(c *simplex.Complex, walk []int) ([]float64, error) {
	flow := make([]float64, c.EdgeCount())
	for i := 1; i < len(walk); i++ {
		e, sign, err := c.EdgeBetween(walk[i-1], walk[i])
		if err != nil {
			return nil, fmt.Errorf("EncodeFlow: hop %d: %w", i, err)
		}
		flow[e] += sign
	}

	return flow, nil
}

// DecodePath walks a simple-path flow back into its node sequence starting
// from start, consuming each flow unit as it goes. Only meaningful for flows
// produced from non-self-crossing walks.
// Errors: ErrNoRoute when the flow strands the walk mid-way.
// Complexity: O(len(path) · maxDegree).
func DecodePath(c *simplex.Complex, flow []float64, start int) ([]int, error) {
	remaining := make([]float64, len(flow))
	copy(remaining, flow)

	total := 0
	for _, v := range flow {
		if v != 0 {
			total++
		}
	}

	path := []int{start}
	u := start
	for hop := 0; hop < total; hop++ {
		nbrs, err := c.Neighbors(u)
		if err != nil {
			return nil, fmt.Errorf("DecodePath: %w", err)
		}
		next := -1
		for _, v := range nbrs {
			e, sign, eerr := c.EdgeBetween(u, v)
			if eerr != nil {
				return nil, fmt.Errorf("DecodePath: %w", eerr)
			}
			if remaining[e]*sign > 0 {
				next = v
				remaining[e] -= sign
				break
			}
		}
		if next == -1 {
			return nil, fmt.Errorf("DecodePath: stranded at node %d after %d hops: %w", u, hop, ErrNoRoute)
		}
		u = next
		path = append(path, u)
	}

	return path, nil
}

// Examples derives the forward evaluation batch: per trajectory the prefix is
// everything but the last two nodes, the flow encodes the prefix, and the two
// trailing nodes become the 1-hop and 2-hop targets.
// Errors: ErrShortPath.
// Complexity: O(paths · length).
func (d *Dataset) Examples() ([]eval.Example, error) {
	out := make([]eval.Example, 0, len(d.Paths))
	for i, p := range d.Paths {
		ex, err := exampleFrom(d.Complex, p)
		if err != nil {
			return nil, fmt.Errorf("Examples: trajectory %d: %w", i, err)
		}
		out = append(out, ex)
	}

	return out, nil
}

// ReversedExamples derives the backward batch: every trajectory is walked in
// reverse, so positions and targets swap ends and each flow entry flips sign
// relative to the forward prefix of the reversed walk.
// Errors: ErrShortPath.
func (d *Dataset) ReversedExamples() ([]eval.Example, error) {
	out := make([]eval.Example, 0, len(d.Paths))
	for i, p := range d.Paths {
		rev := make([]int, len(p))
		for j, n := range p {
			rev[len(p)-1-j] = n
		}
		ex, err := exampleFrom(d.Complex, rev)
		if err != nil {
			return nil, fmt.Errorf("ReversedExamples: trajectory %d: %w", i, err)
		}
		out = append(out, ex)
	}

	return out, nil
}

func exampleFrom(c *simplex.Complex, p []int) (eval.Example, error) {
	if len(p) < 3 {
		return eval.Example{}, ErrShortPath
	}
	prefix := p[:len(p)-2]
	flow, err := EncodeFlow(c, prefix)
	if err != nil {
		return eval.Example{}, err
	}

	return eval.Example{
		LastNode: prefix[len(prefix)-1],
		Flow:     flow,
		Target:   p[len(p)-2],
		Target2:  p[len(p)-1],
	}, nil
}

// TrainTestMasks splits n examples into random disjoint train/test masks with
// the given train fraction. The split is a seeded permutation, so the same
// arguments always produce the same masks.
// Errors: ErrBadFraction.
// Complexity: O(n).
func TrainTestMasks(n int, trainFrac float64, seed int64) (train, test []bool, err error) {
	if trainFrac <= 0 || trainFrac >= 1 {
		return nil, nil, fmt.Errorf("TrainTestMasks(%g): %w", trainFrac, ErrBadFraction)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	cut := int(float64(n) * trainFrac)
	train = make([]bool, n)
	test = make([]bool, n)
	for rank, idx := range perm {
		if rank < cut {
			train[idx] = true
		} else {
			test[idx] = true
		}
	}

	return train, test, nil
}
