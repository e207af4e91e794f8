// SPDX-License-Identifier: MIT

// Package tensorio - NumPy .npy files.
//
// Contract:
//   - WriteNpy always writes little-endian float64 ('<f8'), C order.
//   - ReadNpy accepts '<f8' and '<f4'; other dtypes are ErrUnsupportedDtype.
//   - Fortran-ordered files and format versions other than 1.0 are ErrDecode.

package tensorio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	gtensor "gorgonia.org/tensor"

	"github.com/katalvlaran/stgnn/tensor"
)

// WriteNpy encodes t to w.
func WriteNpy(w io.Writer, t *tensor.Tensor) error {
	if err := ToDense(t).WriteNpy(w); err != nil {
		return tensorioErrorf(opWriteNpy, err)
	}

	return nil
}

// ReadNpy decodes one array from r.
// Errors: ErrDecode, ErrUnsupportedDtype.
func ReadNpy(r io.Reader) (*tensor.Tensor, error) {
	d := new(gtensor.Dense)
	if err := d.ReadNpy(r); err != nil {
		return nil, tensorioErrorf(opReadNpy, fmt.Errorf("%v: %w", err, ErrDecode))
	}
	t, err := FromDense(d)
	if err != nil {
		return nil, tensorioErrorf(opReadNpy, err)
	}

	return t, nil
}

// SaveNpy writes t to path.
func SaveNpy(path string, t *tensor.Tensor) error {
	f, err := os.Create(path)
	if err != nil {
		return tensorioErrorf(opSaveNpy, err)
	}
	bw := bufio.NewWriter(f)
	if err = WriteNpy(bw, t); err != nil {
		f.Close()
		return err
	}
	if err = bw.Flush(); err != nil {
		f.Close()
		return tensorioErrorf(opSaveNpy, err)
	}
	if err = f.Close(); err != nil {
		return tensorioErrorf(opSaveNpy, err)
	}

	return nil
}

// LoadNpy reads the array stored at path.
func LoadNpy(path string) (*tensor.Tensor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tensorioErrorf(opLoadNpy, err)
	}
	defer f.Close()

	return ReadNpy(bufio.NewReader(f))
}
