// SPDX-License-Identifier: MIT

// Package tensorio moves stgnn tensors in and out of gorgonia.org/tensor and
// NumPy .npy files.
//
// The package offers:
//
//   - ToDense / FromDense: copies between *tensor.Tensor and gorgonia's *Dense.
//     float64 data is copied as is; float32 data is widened to float64.
//   - ReadNpy / WriteNpy and LoadNpy / SaveNpy: NumPy v1.0 files through
//     gorgonia's (*Dense).ReadNpy and (*Dense).WriteNpy, so readings prepared
//     with numpy.save feed a Model directly and forecasts can be inspected
//     with numpy.load.
//   - Random: a standard-normal tensor drawn by gorgonia's Random.
//
// Ownership:
//
//	Every function copies; no buffer is shared between the two libraries.
//
// Errors:
//
//	ErrUnsupportedDtype - gorgonia data that is neither float64 nor float32.
//	ErrDecode           - bytes that are not a readable .npy stream.
//	tensor.ErrBadShape  - a requested or decoded shape is empty or non-positive.
package tensorio
