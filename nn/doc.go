// SPDX-License-Identifier: MIT

// Package nn holds the building blocks shared by the spatio-temporal layers:
//
//   - Param, the explicit (name, tensor, rank) registry entry every layer
//     exposes through Params();
//   - Init, which walks such a list once and applies Xavier-uniform to
//     tensors of rank > 1 and a uniform draw to rank-1 tensors;
//   - Conv, a strided 1×k convolution along the time axis of a
//     (batch, node, channel, time) tensor;
//   - LayerNorm, an affine normalization over one axis.
//
// All forward passes are pure: they read parameters and allocate results,
// never caching activations.
package nn
