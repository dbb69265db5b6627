// SPDX-License-Identifier: MIT
package eval

import "errors"

var (
	// ErrMaskLength reports a mask whose length differs from the batch.
	ErrMaskLength = errors.New("eval: mask length does not match batch")

	// ErrNoExamples reports an empty active set; accuracy is undefined.
	ErrNoExamples = errors.New("eval: no active examples")

	// ErrBadTopK reports a non-positive k.
	ErrBadTopK = errors.New("eval: top-k rank must be positive")
)
