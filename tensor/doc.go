// SPDX-License-Identifier: MIT

// Package tensor provides a small, deterministic N-dimensional float64 tensor
// used by the spatio-temporal graph layers of stgnn.
//
// The package offers:
//
//   - Tensor: a row-major buffer with an explicit shape (strides are derived,
//     never stored), safe accessors (At/Set return errors instead of panicking).
//   - Axis operations: Reshape (no copy), Permute, Select (drop an axis at an
//     index) and Stack (add a new trailing axis).
//   - Element-wise kernels: Add, Sub, Hadamard, Scale, Apply and the
//     activations ReLU and Sigmoid.
//   - SoftmaxAxis: numerically stable softmax along any axis.
//   - MatMul: 2-D and batched 3-D products with broadcasting of a 2-D operand.
//
// Determinism:
//
//	Every kernel walks its operands in a fixed loop order, so identical inputs
//	always produce bit-identical outputs.
//
// Errors:
//
//	ErrBadShape       - a requested shape is empty or has a non-positive axis.
//	ErrShapeMismatch  - operands have incompatible shapes.
//	ErrAxisOutOfRange - an axis or index lies outside the tensor.
//	ErrDataLength     - backing slice length differs from the shape volume.
//
// The package has no third-party imports; conversion to gorgonia tensors and
// NumPy files lives in package tensorio.
package tensor
