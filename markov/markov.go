// SPDX-License-Identifier: MIT
// Package markov implements the order-k Markov baseline predictor.
//
// The model counts, over a training corpus of node trajectories, how often
// each next node follows each length-k suffix. Prediction is the most
// frequent continuation of the current suffix; a context never seen in
// training falls back to a seeded uniform draw over the current node's graph
// neighbors, so the baseline always produces a legal hop.
package markov

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/katalvlaran/hodgeflow/simplex"
)

var (
	// ErrBadOrder reports a non-positive suffix length.
	ErrBadOrder = errors.New("markov: order must be positive")

	// ErrShortContext reports a prediction context shorter than the order.
	ErrShortContext = errors.New("markov: context shorter than model order")

	// ErrDeadEnd reports a current node with no neighbors to fall back on.
	ErrDeadEnd = errors.New("markov: current node has no neighbors")
)

// Model is an order-k Markov next-hop predictor over a fixed complex.
// Train may be called repeatedly to accumulate counts; Predict is read-only
// apart from the fallback RNG.
type Model struct {
	c      *simplex.Complex
	order  int
	counts map[string]map[int]int
	rng    *rand.Rand
}

// New builds an empty order-k model. The seed drives only the uniform
// fallback for unseen contexts.
// Errors: ErrBadOrder.
func New(c *simplex.Complex, order int, seed int64) (*Model, error) {
	if order < 1 {
		return nil, fmt.Errorf("markov.New(%d): %w", order, ErrBadOrder)
	}

	return &Model{
		c:      c,
		order:  order,
		counts: make(map[string]map[int]int),
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Order returns the suffix length k.
func (m *Model) Order() int { return m.order }

// Train slides a length-(k+1) window over every trajectory and accumulates
// suffix → next-node counts. Trajectories shorter than k+1 contribute nothing.
// Complexity: O(total path length · k).
func (m *Model) Train(paths [][]int) {
	for _, p := range paths {
		for i := m.order; i < len(p); i++ {
			key := suffixKey(p[i-m.order : i])
			row, ok := m.counts[key]
			if !ok {
				row = make(map[int]int)
				m.counts[key] = row
			}
			row[p[i]]++
		}
	}
}

// Predict returns the next node for a context ending at context[len-1].
// The most frequent trained continuation wins, ties resolving to the lowest
// node id; an unseen suffix falls back to a uniform neighbor draw.
// Errors: ErrShortContext, ErrDeadEnd, simplex.ErrUnknownNode.
// Complexity: O(k + candidates).
func (m *Model) Predict(context []int) (int, error) {
	if len(context) < m.order {
		return 0, fmt.Errorf("Predict: len %d, order %d: %w", len(context), m.order, ErrShortContext)
	}

	key := suffixKey(context[len(context)-m.order:])
	if row, ok := m.counts[key]; ok && len(row) > 0 {
		best, bestCount := -1, -1
		for node, count := range row {
			if count > bestCount || (count == bestCount && node < best) {
				best, bestCount = node, count
			}
		}

		return best, nil
	}

	// Unseen context: uniform over the current node's neighbors.
	nbrs, err := m.c.Neighbors(context[len(context)-1])
	if err != nil {
		return 0, fmt.Errorf("Predict: %w", err)
	}
	if len(nbrs) == 0 {
		return 0, fmt.Errorf("Predict: node %d: %w", context[len(context)-1], ErrDeadEnd)
	}

	return nbrs[m.rng.Intn(len(nbrs))], nil
}

// Accuracy scores 1-hop prediction over test trajectories: for each path the
// context is everything but the last node and the last node is the target.
// Paths shorter than order+1 are skipped; an all-short batch scores 0.
// Complexity: O(paths · Predict).
func (m *Model) Accuracy(paths [][]int) (float64, error) {
	active, hits := 0, 0
	for i, p := range paths {
		if len(p) < m.order+1 {
			continue
		}
		active++
		next, err := m.Predict(p[:len(p)-1])
		if err != nil {
			return 0, fmt.Errorf("Accuracy: path %d: %w", i, err)
		}
		if next == p[len(p)-1] {
			hits++
		}
	}
	if active == 0 {
		return 0, nil
	}

	return float64(hits) / float64(active), nil
}

// TwoHopAccuracy scores the compound two-step prediction: the context is
// everything but the last two nodes, the model predicts twice (feeding its
// own first prediction back in), and a hit requires only the final node to
// match; the intermediate hop is free to differ from the realized path.
// Complexity: O(paths · Predict).
func (m *Model) TwoHopAccuracy(paths [][]int) (float64, error) {
	active, hits := 0, 0
	for i, p := range paths {
		if len(p) < m.order+2 {
			continue
		}
		active++
		context := append([]int(nil), p[:len(p)-2]...)
		first, err := m.Predict(context)
		if err != nil {
			return 0, fmt.Errorf("TwoHopAccuracy: path %d: %w", i, err)
		}
		second, err := m.Predict(append(context, first))
		if err != nil {
			return 0, fmt.Errorf("TwoHopAccuracy: path %d: %w", i, err)
		}
		if second == p[len(p)-1] {
			hits++
		}
	}
	if active == 0 {
		return 0, nil
	}

	return float64(hits) / float64(active), nil
}

// suffixKey flattens a node window into a map key.
func suffixKey(window []int) string {
	var b strings.Builder
	for i, n := range window {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(n))
	}

	return b.String()
}
