// SPDX-License-Identifier: MIT

package astgcn

import "github.com/katalvlaran/stgnn/graph"

// AttentionConfig sizes SpatialAttention and TemporalAttention.
type AttentionConfig struct {
	InChannels   int
	NumNodes     int
	NumTimesteps int
}

// Validate reports the first non-positive field.
func (c AttentionConfig) Validate() error {
	switch {
	case c.InChannels < 1:
		return invalid("AttentionConfig", "InChannels", c.InChannels)
	case c.NumNodes < 1:
		return invalid("AttentionConfig", "NumNodes", c.NumNodes)
	case c.NumTimesteps < 1:
		return invalid("AttentionConfig", "NumTimesteps", c.NumTimesteps)
	}

	return nil
}

// ChebConfig sizes ChebConvAttention. K is the number of Chebyshev terms
// (polynomial degree K-1).
type ChebConfig struct {
	InChannels    int
	OutChannels   int
	K             int
	Normalization graph.Normalization
	Bias          bool
}

// Validate checks sizes, K ≥ 1 and the normalization.
func (c ChebConfig) Validate() error {
	switch {
	case c.InChannels < 1:
		return invalid("ChebConfig", "InChannels", c.InChannels)
	case c.OutChannels < 1:
		return invalid("ChebConfig", "OutChannels", c.OutChannels)
	case c.K < 1:
		return invalid("ChebConfig", "K", c.K)
	case !c.Normalization.Valid():
		return invalid("ChebConfig", "Normalization", c.Normalization)
	}

	return nil
}

// BlockConfig sizes one Block.
type BlockConfig struct {
	InChannels    int
	K             int
	ChebFilters   int
	TimeFilters   int
	TimeStrides   int
	NumNodes      int
	NumTimesteps  int
	Normalization graph.Normalization
	// Bias enables the Chebyshev bias. Convolutions always carry one.
	Bias bool
	// Gated switches the time convolution to P ⊙ σ(Q).
	Gated bool
}

// Validate checks every size and the normalization.
func (c BlockConfig) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"InChannels", c.InChannels},
		{"K", c.K},
		{"ChebFilters", c.ChebFilters},
		{"TimeFilters", c.TimeFilters},
		{"TimeStrides", c.TimeStrides},
		{"NumNodes", c.NumNodes},
		{"NumTimesteps", c.NumTimesteps},
	} {
		if f.v < 1 {
			return invalid("BlockConfig", f.name, f.v)
		}
	}
	if !c.Normalization.Valid() {
		return invalid("BlockConfig", "Normalization", c.Normalization)
	}

	return nil
}

// OutTimesteps returns T' = ⌊(T−1)/stride⌋ + 1, the length produced by the
// kernel-3, padding-1 time convolution.
func (c BlockConfig) OutTimesteps() int {
	return (c.NumTimesteps-1)/c.TimeStrides + 1
}

// ModelConfig sizes a Model.
type ModelConfig struct {
	NumBlocks     int
	InputSize     int
	OutputSize    int
	K             int
	ChebFilters   int
	TimeFilters   int
	TimeStrides   int
	PredLen       int
	SeqLen        int
	NumNodes      int
	Normalization graph.Normalization
	Bias          bool
	Gated         bool
}

// Validate checks every size and the normalization.
func (c ModelConfig) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"NumBlocks", c.NumBlocks},
		{"InputSize", c.InputSize},
		{"OutputSize", c.OutputSize},
		{"K", c.K},
		{"ChebFilters", c.ChebFilters},
		{"TimeFilters", c.TimeFilters},
		{"TimeStrides", c.TimeStrides},
		{"PredLen", c.PredLen},
		{"SeqLen", c.SeqLen},
		{"NumNodes", c.NumNodes},
	} {
		if f.v < 1 {
			return invalid("ModelConfig", f.name, f.v)
		}
	}
	if !c.Normalization.Valid() {
		return invalid("ModelConfig", "Normalization", c.Normalization)
	}

	return nil
}

// BlockConfigs derives the per-block records: the first block reads
// InputSize channels over SeqLen steps with TimeStrides; the rest read
// TimeFilters channels over the first block's output length with stride 1.
func (c ModelConfig) BlockConfigs() []BlockConfig {
	first := BlockConfig{
		InChannels:    c.InputSize,
		K:             c.K,
		ChebFilters:   c.ChebFilters,
		TimeFilters:   c.TimeFilters,
		TimeStrides:   c.TimeStrides,
		NumNodes:      c.NumNodes,
		NumTimesteps:  c.SeqLen,
		Normalization: c.Normalization,
		Bias:          c.Bias,
		Gated:         c.Gated,
	}
	out := []BlockConfig{first}
	rest := first
	rest.InChannels = c.TimeFilters
	rest.TimeStrides = 1
	rest.NumTimesteps = first.OutTimesteps()
	for i := 1; i < c.NumBlocks; i++ {
		out = append(out, rest)
	}

	return out
}

// OutTimesteps returns the number of timesteps reaching the final projection.
func (c ModelConfig) OutTimesteps() int {
	return (c.SeqLen-1)/c.TimeStrides + 1
}
