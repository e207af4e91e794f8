// SPDX-License-Identifier: MIT

// Package matrix offers the dense linear algebra used to analyse graph
// Laplacians: a row-major Dense matrix, shape validators, Mul/Transpose,
// a Jacobi eigen solver for symmetric matrices, and SpectralRadius, which
// returns the largest-magnitude eigenvalue of any square matrix.
//
// Symmetric inputs (undirected Laplacians) take the deterministic Jacobi
// path; non-symmetric inputs (directed Laplacians) are handed to gonum's
// general eigen decomposition.
//
// Matrices here are meant for graphs small enough that O(V²) memory and
// O(V³) decompositions are acceptable; the sparse edge-list representation
// in package graph is what the layers use on the hot path.
package matrix
