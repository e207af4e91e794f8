// SPDX-License-Identifier: MIT

package astgcn_test

import (
	"testing"

	"github.com/katalvlaran/stgnn/astgcn"
	"github.com/katalvlaran/stgnn/builder"
	"github.com/katalvlaran/stgnn/graph"
	"github.com/katalvlaran/stgnn/tensor"
)

// benchmarkModel runs Model.Forward over a rows×cols grid of sensors.
func benchmarkModel(b *testing.B, rows, cols int, norm graph.Normalization) {
	g, err := builder.Build(builder.Grid(rows, cols))
	if err != nil {
		b.Fatalf("build: %v", err)
	}
	n := rows * cols
	m, err := astgcn.NewModel(astgcn.ModelConfig{
		NumBlocks: 2, InputSize: 1, OutputSize: 1, K: 3,
		ChebFilters: 16, TimeFilters: 16, TimeStrides: 1,
		PredLen: 3, SeqLen: 12, NumNodes: n,
		Normalization: norm, Bias: true,
	})
	if err != nil {
		b.Fatalf("model: %v", err)
	}
	x, err := tensor.Full(0.5, 8, n, 1, 12)
	if err != nil {
		b.Fatalf("input: %v", err)
	}
	topo := graph.Static(g)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = m.Forward(x, topo); err != nil {
			b.Fatalf("forward: %v", err)
		}
	}
}

// BenchmarkModel_Grid4x4Sym benchmarks a 16-sensor grid with the symmetric Laplacian.
func BenchmarkModel_Grid4x4Sym(b *testing.B) { benchmarkModel(b, 4, 4, graph.Sym) }

// BenchmarkModel_Grid4x4RW adds per-call λmax estimation.
func BenchmarkModel_Grid4x4RW(b *testing.B) { benchmarkModel(b, 4, 4, graph.RW) }

// BenchmarkModel_Grid8x8Sym benchmarks a 64-sensor grid.
func BenchmarkModel_Grid8x8Sym(b *testing.B) { benchmarkModel(b, 8, 8, graph.Sym) }
