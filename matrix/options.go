// SPDX-License-Identifier: MIT

// Package matrix: functional options for the spectral routines.
//
// Option constructors panic on nonsensical values (programmer error); the
// routines consuming them never panic.

package matrix

import "math"

const (
	// DefaultEpsilon is the tolerance for symmetry checks and Jacobi convergence.
	DefaultEpsilon = 1e-10

	// DefaultMaxSweeps caps the number of Jacobi rotations.
	DefaultMaxSweeps = 10000
)

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite and > 0"
	panicMaxSweepsInvalid = "matrix: WithMaxSweeps: sweeps must be > 0"
)

// Option mutates Options.
type Option func(*Options)

// Options is the resolved configuration of a spectral routine.
type Options struct {
	eps       float64
	maxSweeps int
}

// WithEpsilon sets the symmetry/convergence tolerance.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

// WithMaxSweeps caps the number of Jacobi rotations.
func WithMaxSweeps(n int) Option {
	if n <= 0 {
		panic(panicMaxSweepsInvalid)
	}
	return func(o *Options) { o.maxSweeps = n }
}

// gatherOptions resolves defaults and applies opts in order.
func gatherOptions(opts ...Option) Options {
	o := Options{eps: DefaultEpsilon, maxSweeps: DefaultMaxSweeps}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
