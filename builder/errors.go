// SPDX-License-Identifier: MIT
// Package: stgnn/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Implementations attach context with %w.
//   - Constructors never panic; validation panics are confined to option
//     constructors (WithX).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewVertices indicates that a size parameter (n, rows, cols) is smaller
// than the constructor's minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor ran without
// WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or an invalid result.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf wraps err with the constructor tag.
func builderErrorf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
