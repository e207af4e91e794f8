// SPDX-License-Identifier: MIT

package astgcn

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a configuration record that failed validation:
// a non-positive size, filter order or stride, or an unknown normalization.
var ErrInvalidConfig = errors.New("astgcn: invalid configuration")

const (
	opSpatial  = "SpatialAttention.Forward"
	opTemporal = "TemporalAttention.Forward"
	opCheb     = "ChebConvAttention.Forward"
	opBlock    = "Block.Forward"
	opModel    = "Model.Forward"
	opProp     = "Propagate"
	opNew      = "New"
)

func astgcnErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// invalid wraps ErrInvalidConfig with a field description.
func invalid(record, field string, v any) error {
	return fmt.Errorf("%s.%s=%v: %w", record, field, v, ErrInvalidConfig)
}
