// SPDX-License-Identifier: MIT
package train

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/hodgeflow/eval"
	"github.com/katalvlaran/hodgeflow/matrix"
	"github.com/katalvlaran/hodgeflow/shift"
	"github.com/katalvlaran/hodgeflow/simplex"
)

// Trainer defaults.
const (
	DefaultEpochs    = 50
	DefaultBatchSize = 32
)

// Options bundles the run hyperparameters. Zero values resolve to the
// package defaults at Run time; the struct is passed by value and never
// mutated.
type Options struct {
	Epochs    int
	BatchSize int
	LearnRate float64
	Decay     float64
	FDStep    float64
	Seed      int64
}

// EpochStats is one row of training history.
type EpochStats struct {
	Epoch    int
	Loss     float64
	TrainAcc float64
	TestAcc  float64
}

// Result carries the best weight snapshot (by test accuracy) and the full
// per-epoch history.
type Result struct {
	Weights []*matrix.Dense
	History []EpochStats
}

// Trainer drives Adam over finite-difference gradients of the batch NLL.
type Trainer struct {
	c    *simplex.Complex
	set  *shift.Set
	sel  *simplex.CondIncidence
	log  *zap.Logger
	opts Options
}

// New builds a trainer. A nil logger resolves to zap.NewNop, so library
// callers pay no logging cost.
func New(c *simplex.Complex, set *shift.Set, sel *simplex.CondIncidence, log *zap.Logger, opts Options) (*Trainer, error) {
	if sel == nil {
		var err error
		if sel, err = simplex.NewCondIncidence(c, nil); err != nil {
			return nil, fmt.Errorf("train.New: %w", err)
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Epochs <= 0 {
		opts.Epochs = DefaultEpochs
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.LearnRate <= 0 {
		opts.LearnRate = DefaultLearningRate
	}
	if opts.FDStep <= 0 {
		opts.FDStep = DefaultFDStep
	}

	return &Trainer{c: c, set: set, sel: sel, log: log, opts: opts}, nil
}

// Run optimizes the given weights in place over the masked training subset
// and reports per-epoch loss plus train/test accuracy. The returned weights
// are the snapshot with the best test accuracy seen, not necessarily the
// final epoch's.
// Errors: ErrNoTrainExamples, plus loss/gradient/optimizer failures.
// Complexity: O(epochs · batch · parameters · Forward); the gradient probes
// dominate.
func (t *Trainer) Run(weights []*matrix.Dense, batch []eval.Example, trainMask, testMask []bool) (*Result, error) {
	trainIdx := activeIndices(trainMask, len(batch))
	if len(trainIdx) == 0 {
		return nil, fmt.Errorf("Run: %w", ErrNoTrainExamples)
	}

	opt, err := NewAdam(WithLearningRate(t.opts.LearnRate), WithWeightDecay(t.opts.Decay))
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	harness, err := eval.New(t.c, t.set, t.sel)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	rng := rand.New(rand.NewSource(t.opts.Seed))
	best := cloneWeights(weights)
	bestAcc := -1.0
	history := make([]EpochStats, 0, t.opts.Epochs)

	for epoch := 1; epoch <= t.opts.Epochs; epoch++ {
		miniMask := sampleMask(rng, trainIdx, t.opts.BatchSize, len(batch))
		lossFn := func(ws []*matrix.Dense) (float64, error) {
			return Loss(t.set, t.sel, ws, batch, miniMask)
		}

		grads, gerr := Gradient(lossFn, weights, t.opts.FDStep)
		if gerr != nil {
			return nil, fmt.Errorf("Run: epoch %d: %w", epoch, gerr)
		}
		if err = opt.Step(weights, grads); err != nil {
			return nil, fmt.Errorf("Run: epoch %d: %w", epoch, err)
		}

		loss, lerr := Loss(t.set, t.sel, weights, batch, trainMask)
		if lerr != nil {
			return nil, fmt.Errorf("Run: epoch %d: %w", epoch, lerr)
		}
		trainAcc, aerr := harness.Accuracy(weights, batch, trainMask)
		if aerr != nil {
			return nil, fmt.Errorf("Run: epoch %d: %w", epoch, aerr)
		}
		testAcc := 0.0
		if testMask != nil {
			if testAcc, aerr = harness.Accuracy(weights, batch, testMask); aerr != nil {
				return nil, fmt.Errorf("Run: epoch %d: %w", epoch, aerr)
			}
		}

		history = append(history, EpochStats{Epoch: epoch, Loss: loss, TrainAcc: trainAcc, TestAcc: testAcc})
		t.log.Info("epoch complete",
			zap.Int("epoch", epoch),
			zap.Float64("loss", loss),
			zap.Float64("train_acc", trainAcc),
			zap.Float64("test_acc", testAcc),
		)

		if testAcc >= bestAcc {
			bestAcc = testAcc
			best = cloneWeights(weights)
		}
	}

	return &Result{Weights: best, History: history}, nil
}

// activeIndices lists the set bits of a mask, or everything when mask is nil.
func activeIndices(mask []bool, n int) []int {
	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if mask == nil || (i < len(mask) && mask[i]) {
			idx = append(idx, i)
		}
	}

	return idx
}

// sampleMask draws a without-replacement mini-batch from the training
// indices. A batch size at or above the pool covers the whole pool.
func sampleMask(rng *rand.Rand, pool []int, size, n int) []bool {
	mask := make([]bool, n)
	if size >= len(pool) {
		for _, i := range pool {
			mask[i] = true
		}

		return mask
	}
	for _, pick := range rng.Perm(len(pool))[:size] {
		mask[pool[pick]] = true
	}

	return mask
}
