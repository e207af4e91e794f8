// SPDX-License-Identifier: MIT

package checkpoint

import (
	"fmt"
	"io"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/katalvlaran/stgnn/nn"
	"github.com/katalvlaran/stgnn/tensor"
)

// Version is written into every checkpoint.
const Version = 1

// Field numbers.
const (
	fieldTensors protowire.Number = 1
	fieldVersion protowire.Number = 2

	fieldName  protowire.Number = 1
	fieldShape protowire.Number = 2
	fieldData  protowire.Number = 3
)

// Entry is one decoded tensor.
type Entry struct {
	Name   string
	Shape  []int
	Values []float64
}

// Marshal encodes params in list order.
func Marshal(params []nn.Param) ([]byte, error) {
	if _, err := nn.Index(params); err != nil {
		return nil, checkpointErrorf(opMarshal, err)
	}
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, Version)
	for _, p := range params {
		b = protowire.AppendTag(b, fieldTensors, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeTensor(p.Name, p.Tensor))
	}

	return b, nil
}

func encodeTensor(name string, t *tensor.Tensor) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldName, protowire.BytesType)
	b = protowire.AppendString(b, name)

	var shape []byte
	for _, d := range t.Shape() {
		shape = protowire.AppendVarint(shape, uint64(int64(d)))
	}
	b = protowire.AppendTag(b, fieldShape, protowire.BytesType)
	b = protowire.AppendBytes(b, shape)

	data := make([]byte, 0, 8*t.Size())
	for _, v := range t.Data() {
		data = protowire.AppendFixed64(data, math.Float64bits(v))
	}
	b = protowire.AppendTag(b, fieldData, protowire.BytesType)

	return protowire.AppendBytes(b, data)
}

// Unmarshal decodes a checkpoint. Unknown fields are skipped.
// Errors: ErrMalformed, ErrVersion.
func Unmarshal(b []byte) ([]Entry, error) {
	var entries []Entry
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, checkpointErrorf(opUnmarshal, fmt.Errorf("tag: %v: %w", protowire.ParseError(n), ErrMalformed))
		}
		b = b[n:]
		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, checkpointErrorf(opUnmarshal, fmt.Errorf("version: %v: %w", protowire.ParseError(n), ErrMalformed))
			}
			if v != Version {
				return nil, checkpointErrorf(opUnmarshal, fmt.Errorf("version %d: %w", v, ErrVersion))
			}
			b = b[n:]
		case num == fieldTensors && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, checkpointErrorf(opUnmarshal, fmt.Errorf("tensor: %v: %w", protowire.ParseError(n), ErrMalformed))
			}
			e, err := decodeTensor(msg)
			if err != nil {
				return nil, checkpointErrorf(opUnmarshal, fmt.Errorf("tensor %d: %w", len(entries), err))
			}
			entries = append(entries, e)
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, checkpointErrorf(opUnmarshal, fmt.Errorf("field %d: %v: %w", num, protowire.ParseError(n), ErrMalformed))
			}
			b = b[n:]
		}
	}

	return entries, nil
}

// decodeTensor accepts packed and unpacked encodings of shape and data.
func decodeTensor(b []byte) (Entry, error) {
	var e Entry
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Entry{}, fmt.Errorf("%v: %w", protowire.ParseError(n), ErrMalformed)
		}
		b = b[n:]
		switch {
		case num == fieldName && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return Entry{}, fmt.Errorf("name: %w", ErrMalformed)
			}
			e.Name = s
			b = b[n:]
		case num == fieldShape && typ == protowire.BytesType:
			buf, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return Entry{}, fmt.Errorf("shape: %w", ErrMalformed)
			}
			for len(buf) > 0 {
				v, m := protowire.ConsumeVarint(buf)
				if m < 0 {
					return Entry{}, fmt.Errorf("shape: %w", ErrMalformed)
				}
				e.Shape = append(e.Shape, int(int64(v)))
				buf = buf[m:]
			}
			b = b[n:]
		case num == fieldShape && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Entry{}, fmt.Errorf("shape: %w", ErrMalformed)
			}
			e.Shape = append(e.Shape, int(int64(v)))
			b = b[n:]
		case num == fieldData && typ == protowire.BytesType:
			buf, n := protowire.ConsumeBytes(b)
			if n < 0 || len(buf)%8 != 0 {
				return Entry{}, fmt.Errorf("data: %w", ErrMalformed)
			}
			for len(buf) > 0 {
				v, m := protowire.ConsumeFixed64(buf)
				if m < 0 {
					return Entry{}, fmt.Errorf("data: %w", ErrMalformed)
				}
				e.Values = append(e.Values, math.Float64frombits(v))
				buf = buf[m:]
			}
			b = b[n:]
		case num == fieldData && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return Entry{}, fmt.Errorf("data: %w", ErrMalformed)
			}
			e.Values = append(e.Values, math.Float64frombits(v))
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Entry{}, fmt.Errorf("field %d: %w", num, ErrMalformed)
			}
			b = b[n:]
		}
	}

	return e, nil
}

// Load copies entries into params.
//
// Contract:
//   - Every param must appear exactly once with its exact shape.
//   - Every entry must name a param.
//   - On error, params named by earlier entries may already be overwritten.
//
// Errors: ErrMissingParam, ErrUnknownParam, tensor.ErrShapeMismatch,
// nn.ErrDuplicateParam.
//
// Complexity: O(total values + len(params)).
func Load(params []nn.Param, entries []Entry) error {
	index, err := nn.Index(params)
	if err != nil {
		return checkpointErrorf(opLoad, err)
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		p, ok := index[e.Name]
		if !ok {
			return checkpointErrorf(opLoad, fmt.Errorf("%q: %w", e.Name, ErrUnknownParam))
		}
		if seen[e.Name] {
			return checkpointErrorf(opLoad, fmt.Errorf("%q: %w", e.Name, nn.ErrDuplicateParam))
		}
		seen[e.Name] = true
		src, err := tensor.FromSlice(e.Values, e.Shape...)
		if err != nil {
			return checkpointErrorf(opLoad, fmt.Errorf("%q: %v: %w", e.Name, err, tensor.ErrShapeMismatch))
		}
		if err = p.CopyFrom(src); err != nil {
			return checkpointErrorf(opLoad, err)
		}
	}
	for _, p := range params {
		if !seen[p.Name] {
			return checkpointErrorf(opLoad, fmt.Errorf("%q: %w", p.Name, ErrMissingParam))
		}
	}

	return nil
}

// Write encodes params to w.
func Write(w io.Writer, params []nn.Param) error {
	b, err := Marshal(params)
	if err != nil {
		return err
	}
	_, err = w.Write(b)

	return err
}

// Read decodes a checkpoint from r and loads it into params.
func Read(r io.Reader, params []nn.Param) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	entries, err := Unmarshal(b)
	if err != nil {
		return err
	}

	return Load(params, entries)
}

// SaveFile writes params to path.
func SaveFile(path string, params []nn.Param) error {
	b, err := Marshal(params)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, b, 0o644); err != nil {
		return checkpointErrorf(opSave, err)
	}

	return nil
}

// LoadFile reads path into params.
func LoadFile(path string, params []nn.Param) error {
	f, err := os.Open(path)
	if err != nil {
		return checkpointErrorf(opLoadFile, err)
	}
	defer f.Close()

	return Read(f, params)
}
