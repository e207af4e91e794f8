// SPDX-License-Identifier: MIT

package tensorio

import (
	gtensor "gorgonia.org/tensor"

	"github.com/katalvlaran/stgnn/tensor"
)

// Random returns a tensor of the given shape filled with standard-normal
// draws from gorgonia's Random. The draws come from the process-wide
// math/rand source, so they are not reproducible across runs; use LoadNpy
// for fixed inputs.
// Errors: tensor.ErrBadShape.
func Random(dims ...int) (*tensor.Tensor, error) {
	t, err := tensor.New(dims...)
	if err != nil {
		return nil, tensorioErrorf(opRandom, err)
	}
	copy(t.Data(), gtensor.Random(gtensor.Float64, t.Size()).([]float64))

	return t, nil
}
