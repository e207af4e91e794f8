// SPDX-License-Identifier: MIT

package nn

import (
	"fmt"
	"math"

	"github.com/katalvlaran/stgnn/tensor"
)

// Param is one learnable tensor of a layer.
type Param struct {
	Name   string
	Tensor *tensor.Tensor
	Rank   int
}

// NewParam allocates a zero tensor of the given shape and registers it under name.
func NewParam(name string, dims ...int) (Param, error) {
	t, err := tensor.New(dims...)
	if err != nil {
		return Param{}, fmt.Errorf("param %q: %w", name, err)
	}

	return Param{Name: name, Tensor: t, Rank: len(dims)}, nil
}

// CopyFrom overwrites p's values with src, which must have the same shape.
func (p Param) CopyFrom(src *tensor.Tensor) error {
	if !src.HasShape(p.Tensor.Shape()...) {
		return nnErrorf(opParamCopy, fmt.Errorf("%q: %v vs %v: %w", p.Name, src.Shape(), p.Tensor.Shape(), tensor.ErrShapeMismatch))
	}
	copy(p.Tensor.Data(), src.Data())

	return nil
}

// Prefixed returns params with prefix + "." prepended to every name.
func Prefixed(prefix string, params []Param) []Param {
	out := make([]Param, len(params))
	for i, p := range params {
		p.Name = prefix + "." + p.Name
		out[i] = p
	}

	return out
}

// Index maps names to params.
// Errors: ErrDuplicateParam.
func Index(params []Param) (map[string]Param, error) {
	m := make(map[string]Param, len(params))
	for _, p := range params {
		if _, dup := m[p.Name]; dup {
			return nil, nnErrorf(opIndex, fmt.Errorf("%q: %w", p.Name, ErrDuplicateParam))
		}
		m[p.Name] = p
	}

	return m, nil
}

// Count returns the total number of scalar values in params.
func Count(params []Param) int {
	n := 0
	for _, p := range params {
		n += p.Tensor.Size()
	}

	return n
}

// XavierBound returns √(6/(fan_in+fan_out)) for a tensor of shape dims, with
// fan_in = dims[1]·r and fan_out = dims[0]·r, r being the product of dims[2:].
func XavierBound(dims []int) float64 {
	receptive := 1
	for _, d := range dims[2:] {
		receptive *= d
	}
	fanIn := dims[1] * receptive
	fanOut := dims[0] * receptive

	return math.Sqrt(6 / float64(fanIn+fanOut))
}

// Init fills every param in list order: rank > 1 with Xavier-uniform draws
// in [-bound, bound), rank 1 with uniform draws over the bias range.
// The RNG is consumed in list order, so equal seeds give equal weights.
func Init(params []Param, opts ...Option) error {
	cfg := newInitConfig(opts...)
	for _, p := range params {
		data := p.Tensor.Data()
		switch {
		case p.Rank > 1:
			if p.Tensor.NDim() != p.Rank {
				return nnErrorf(opInit, fmt.Errorf("%q rank %d vs %d axes: %w", p.Name, p.Rank, p.Tensor.NDim(), ErrInvalidLayer))
			}
			bound := XavierBound(p.Tensor.Shape())
			for i := range data {
				data[i] = (cfg.rng.Float64()*2 - 1) * bound
			}
		case p.Rank == 1:
			for i := range data {
				data[i] = cfg.biasLo + (cfg.biasHi-cfg.biasLo)*cfg.rng.Float64()
			}
		default:
			return nnErrorf(opInit, fmt.Errorf("%q rank %d: %w", p.Name, p.Rank, ErrInvalidLayer))
		}
	}

	return nil
}
