// SPDX-License-Identifier: MIT
package train_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgeflow/eval"
	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/shift"
	"github.com/katalvlaran/hodgeflow/simplex"
	"github.com/katalvlaran/hodgeflow/train"
)

func cycle4(t *testing.T) *simplex.Complex {
	t.Helper()
	c, err := simplex.New(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, nil)
	require.NoError(t, err)

	return c
}

// filledTriangle is a 4-node complex with one filled face. Its candidate
// slots are not related by any sign symmetry of the flow, so selector scores
// genuinely depend on the weights and gradients stay nonzero.
func filledTriangle(t *testing.T) *simplex.Complex {
	t.Helper()
	c, err := simplex.New(4,
		[][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}},
		[][3]int{{0, 1, 2}})
	require.NoError(t, err)

	return c
}

func walkExample(t *testing.T, c *simplex.Complex, a, b, pos, target int) eval.Example {
	t.Helper()
	flow := make([]float64, c.EdgeCount())
	for _, hop := range [][2]int{{a, b}, {b, pos}} {
		e, sign, err := c.EdgeBetween(hop[0], hop[1])
		require.NoError(t, err)
		flow[e] += sign
	}

	return eval.Example{LastNode: pos, Flow: flow, Target: target, Target2: eval.NoTarget}
}

func cycleBatch(t *testing.T, c *simplex.Complex) []eval.Example {
	t.Helper()

	return []eval.Example{
		walkExample(t, c, 0, 1, 2, 3),
		walkExample(t, c, 1, 2, 3, 0),
		walkExample(t, c, 2, 3, 0, 1),
		walkExample(t, c, 3, 0, 1, 2),
	}
}

func triangleBatch(t *testing.T, c *simplex.Complex) []eval.Example {
	t.Helper()

	return []eval.Example{
		walkExample(t, c, 0, 1, 2, 3),
		walkExample(t, c, 0, 2, 1, 3),
		walkExample(t, c, 3, 1, 2, 0),
		walkExample(t, c, 3, 2, 1, 0),
	}
}

func TestInitWeights_ShapesAndDeterminism(t *testing.T) {
	d, err := shift.Lookup(shift.Base)
	require.NoError(t, err)

	ws, err := train.InitWeights(d, 2, 8, 7)
	require.NoError(t, err)
	require.Len(t, ws, 2*d.WeightsPerLayer+1)

	for k := 0; k < d.WeightsPerLayer; k++ {
		require.Equal(t, 1, ws[k].Rows())
		require.Equal(t, 8, ws[k].Cols())
		require.Equal(t, 8, ws[d.WeightsPerLayer+k].Rows())
		require.Equal(t, 8, ws[d.WeightsPerLayer+k].Cols())
	}
	terminal := ws[len(ws)-1]
	require.Equal(t, 8, terminal.Rows())
	require.Equal(t, 1, terminal.Cols())

	again, err := train.InitWeights(d, 2, 8, 7)
	require.NoError(t, err)
	for i := range ws {
		require.Equal(t, ws[i].String(), again[i].String())
	}

	_, err = train.InitWeights(d, 0, 8, 7)
	require.ErrorIs(t, err, train.ErrBadSchedule)
}

func TestLoss_TargetMustBeCandidate(t *testing.T) {
	c := cycle4(t)
	set, err := shift.Build(c, shift.Base)
	require.NoError(t, err)
	sel, err := simplex.NewCondIncidence(c, nil)
	require.NoError(t, err)
	ws, err := train.InitWeights(set.Descriptor, 1, 4, 3)
	require.NoError(t, err)

	batch := cycleBatch(t, c)
	batch[0].Target = 0 // not adjacent to node 2

	_, err = train.Loss(set, sel, ws, batch, nil)
	require.ErrorIs(t, err, train.ErrTargetNotCandidate)
}

func TestGradient_MatchesQuadratic(t *testing.T) {
	w, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.NoError(t, w.Set(i, j, float64(i*2+j)-1.5))
		}
	}

	sumSquares := func(ws []*matrix.Dense) (float64, error) {
		total := 0.0
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				v, aerr := ws[0].At(i, j)
				if aerr != nil {
					return 0, aerr
				}
				total += v * v
			}
		}

		return total, nil
	}

	grads, err := train.Gradient(sumSquares, []*matrix.Dense{w}, train.DefaultFDStep)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			wv, aerr := w.At(i, j)
			require.NoError(t, aerr)
			gv, aerr := grads[0].At(i, j)
			require.NoError(t, aerr)
			require.InDelta(t, 2*wv, gv, 1e-6)
		}
	}

	_, err = train.Gradient(sumSquares, []*matrix.Dense{w}, 0)
	require.ErrorIs(t, err, train.ErrBadStep)
}

func TestAdam_FirstStepMovesAgainstGradient(t *testing.T) {
	w, err := matrix.NewDense(1, 2)
	require.NoError(t, err)
	require.NoError(t, w.Set(0, 0, 1.0))
	require.NoError(t, w.Set(0, 1, -1.0))

	g, err := matrix.NewDense(1, 2)
	require.NoError(t, err)
	require.NoError(t, g.Set(0, 0, 0.5))
	require.NoError(t, g.Set(0, 1, -0.5))

	opt, err := train.NewAdam(train.WithLearningRate(0.1))
	require.NoError(t, err)
	require.NoError(t, opt.Step([]*matrix.Dense{w}, []*matrix.Dense{g}))

	// The bias-corrected first step is lr * g/(|g|+eps) ≈ ±lr.
	v0, err := w.At(0, 0)
	require.NoError(t, err)
	v1, err := w.At(0, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.9, v0, 1e-6)
	require.InDelta(t, -0.9, v1, 1e-6)
}

func TestTrainer_RunProducesHistory(t *testing.T) {
	c := filledTriangle(t)
	set, err := shift.Build(c, shift.Base)
	require.NoError(t, err)
	ws, err := train.InitWeights(set.Descriptor, 1, 4, 11)
	require.NoError(t, err)
	before := make([]string, len(ws))
	for i, w := range ws {
		before[i] = w.String()
	}

	tr, err := train.New(c, set, nil, nil, train.Options{Epochs: 3, BatchSize: 4, Seed: 2})
	require.NoError(t, err)

	batch := triangleBatch(t, c)
	mask := []bool{true, true, true, false}
	test := []bool{false, false, false, true}

	res, err := tr.Run(ws, batch, mask, test)
	require.NoError(t, err)
	require.Len(t, res.History, 3)
	for _, row := range res.History {
		require.False(t, math.IsNaN(row.Loss) || math.IsInf(row.Loss, 0))
		require.GreaterOrEqual(t, row.TrainAcc, 0.0)
		require.LessOrEqual(t, row.TrainAcc, 1.0)
	}

	changed := false
	for i, w := range ws {
		if w.String() != before[i] {
			changed = true
			break
		}
	}
	require.True(t, changed, "optimizer left every weight untouched")
	require.Len(t, res.Weights, len(ws))
}

func TestTrainer_EmptyTrainingSet(t *testing.T) {
	c := cycle4(t)
	set, err := shift.Build(c, shift.Base)
	require.NoError(t, err)
	ws, err := train.InitWeights(set.Descriptor, 1, 4, 11)
	require.NoError(t, err)

	tr, err := train.New(c, set, nil, nil, train.Options{Epochs: 1})
	require.NoError(t, err)

	batch := cycleBatch(t, c)
	_, err = tr.Run(ws, batch, make([]bool, len(batch)), nil)
	require.ErrorIs(t, err, train.ErrNoTrainExamples)
}

func TestCheckpointRoundTrip(t *testing.T) {
	d, err := shift.Lookup(shift.CombinedSum)
	require.NoError(t, err)
	ws, err := train.InitWeights(d, 1, 6, 13)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, train.SaveCheckpoint(path, ws))

	back, err := train.LoadCheckpoint(path)
	require.NoError(t, err)
	require.Len(t, back, len(ws))
	for i := range ws {
		require.Equal(t, ws[i].String(), back[i].String())
	}
}
