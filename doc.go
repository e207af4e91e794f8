// Package stgnn is an in-memory toolkit for spatio-temporal graph forecasting:
// attention-based Chebyshev graph convolutions (ASTGCN) over sensor networks
// whose readings evolve in time.
//
// 🚀 What is stgnn?
//
//	A small, deterministic, CPU-only library that brings together:
//		• Tensors: row-major N-d float64 arrays with batched matmul & softmax
//		• Matrices: dense 2-D kernels, Jacobi eigen solver, spectral radius
//		• Graphs: edge lists, scaled Laplacians, λmax estimation, gonum & DOT interop
//		• Builders: ring, path, star, complete, grid & random sensor layouts
//		• Layers: spatial/temporal attention, ChebConvAttention, ASTGCN blocks
//		• Checkpoints: named parameters in protobuf wire format
//
// ✨ Why choose stgnn?
//
//   - Reproducible - every initializer is seeded, every loop order fixed
//   - Explicit - shapes are checked at every public entry point
//   - Plain errors - sentinel values per package, wrapped with context
//
// Packages:
//
//	tensor/     - N-d tensor, axis ops, activations
//	tensorio/   - gorgonia conversion, NumPy .npy files, random input
//	matrix/     - Dense matrix, validators, Mul/Transpose, Eigen, SpectralRadius
//	graph/      - Graph, Topology, Normalization, LambdaMax, ScaledLaplacian
//	builder/    - deterministic topology constructors with functional options
//	nn/         - parameter registry, Xavier init, strided Conv, LayerNorm
//	astgcn/     - attention layers, ChebConvAttention, Block, Model
//	checkpoint/ - Save/Load of parameter registries
//	cmd/astgcn  - CLI running a forward pass over a generated or DOT network
//
// Quick ASCII example:
//
//	    0───1
//	    │   │
//	    3───2      X: (batch, 4 sensors, F features, T steps)
//
//	a 4-sensor ring; the model maps X to (horizon, batch, 4, outputs).
//
//	go get github.com/katalvlaran/stgnn
package stgnn
