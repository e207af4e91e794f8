// SPDX-License-Identifier: MIT

// Package astgcn implements the forward pass of the Attention-based
// Spatial-Temporal Graph Convolutional Network.
//
// Layers, leaf first:
//
//   - SpatialAttention: (B, N, F, T) → (B, N, N) node-to-node scores,
//     softmax-normalized over axis 1.
//   - TemporalAttention: (B, N, F, T) → (B, T, T) step-to-step scores,
//     softmax-normalized over axis 1.
//   - ChebConvAttention: Chebyshev graph convolution of one timestep
//     (B, N, F) → (B, N, O), with the first propagation reweighted by the
//     spatial attention.
//   - Block: temporal attention, spatial attention, per-timestep Chebyshev
//     convolution, strided time convolution, residual path and LayerNorm,
//     mapping (B, N, F, T) → (B, N, TimeFilters, T').
//   - Model: a chain of blocks followed by a projection onto the prediction
//     horizon, producing (P, B, N, O).
//
// Configuration is an explicit record per layer (ChebConfig, AttentionConfig,
// BlockConfig, ModelConfig); constructors validate it and fail with
// ErrInvalidConfig. Every layer lists its learnable tensors in Params(), which
// the constructor passes once through nn.Init.
//
// Forward calls are pure functions of the input, the topology and the
// parameters. Attention matrices and Laplacians are rebuilt on every call;
// no state survives between calls, so one layer may serve concurrent
// callers as long as nobody rewrites its parameters meanwhile.
package astgcn
