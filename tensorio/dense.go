// SPDX-License-Identifier: MIT

// Package tensorio - conversion to and from gorgonia's *Dense.

package tensorio

import (
	"fmt"

	gtensor "gorgonia.org/tensor"

	"github.com/katalvlaran/stgnn/tensor"
)

// ToDense returns a float64 gorgonia *Dense holding a copy of t.
func ToDense(t *tensor.Tensor) *gtensor.Dense {
	buf := make([]float64, t.Size())
	copy(buf, t.Data())

	return gtensor.New(gtensor.WithShape(t.Shape()...), gtensor.WithBacking(buf))
}

// FromDense copies a gorgonia tensor into a new *tensor.Tensor.
// float32 data is widened; a scalar-shaped Dense becomes shape (1).
// Errors: ErrUnsupportedDtype, tensor.ErrBadShape, tensor.ErrDataLength.
func FromDense(d *gtensor.Dense) (*tensor.Tensor, error) {
	dims := []int(d.Shape())
	var data []float64
	switch raw := d.Data().(type) {
	case []float64:
		data = raw
	case []float32:
		data = make([]float64, len(raw))
		for i, v := range raw {
			data[i] = float64(v)
		}
	case float64:
		// gorgonia reports scalar-shaped tensors as a bare value
		data, dims = []float64{raw}, []int{1}
	case float32:
		data, dims = []float64{float64(raw)}, []int{1}
	default:
		return nil, tensorioErrorf(opFromDense, fmt.Errorf("%T: %w", raw, ErrUnsupportedDtype))
	}
	t, err := tensor.FromSlice(data, dims...)
	if err != nil {
		return nil, tensorioErrorf(opFromDense, err)
	}

	return t, nil
}
