// SPDX-License-Identifier: MIT

package tensorio

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedDtype indicates gorgonia data that is neither float64 nor float32.
	ErrUnsupportedDtype = errors.New("tensorio: unsupported dtype")

	// ErrDecode indicates a stream that gorgonia could not read as .npy.
	ErrDecode = errors.New("tensorio: cannot decode npy")
)

const (
	opFromDense = "FromDense"
	opReadNpy   = "ReadNpy"
	opWriteNpy  = "WriteNpy"
	opLoadNpy   = "LoadNpy"
	opSaveNpy   = "SaveNpy"
	opRandom    = "Random"
)

func tensorioErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
