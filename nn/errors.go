// SPDX-License-Identifier: MIT

package nn

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLayer indicates a non-positive size, kernel or stride at
	// construction time.
	ErrInvalidLayer = errors.New("nn: invalid layer configuration")

	// ErrDuplicateParam indicates two registry entries sharing a name.
	ErrDuplicateParam = errors.New("nn: duplicate parameter name")

	// ErrEmptyOutput indicates that a convolution would produce no timesteps.
	ErrEmptyOutput = errors.New("nn: convolution output is empty")
)

const (
	opNewConv   = "NewConv"
	opConv      = "Conv.Forward"
	opNewNorm   = "NewLayerNorm"
	opNorm      = "LayerNorm.Forward"
	opInit      = "Init"
	opIndex     = "Index"
	opParamCopy = "Param.CopyFrom"
)

func nnErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
