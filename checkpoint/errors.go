// SPDX-License-Identifier: MIT

package checkpoint

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed indicates bytes that do not decode as a checkpoint.
	ErrMalformed = errors.New("checkpoint: malformed data")

	// ErrVersion indicates an unsupported format version.
	ErrVersion = errors.New("checkpoint: unsupported version")

	// ErrMissingParam indicates a registry entry absent from the checkpoint.
	ErrMissingParam = errors.New("checkpoint: parameter missing")

	// ErrUnknownParam indicates a stored tensor with no registry entry.
	ErrUnknownParam = errors.New("checkpoint: unknown parameter")
)

const (
	opMarshal   = "Marshal"
	opUnmarshal = "Unmarshal"
	opLoad      = "Load"
	opSave      = "SaveFile"
	opLoadFile  = "LoadFile"
)

func checkpointErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
