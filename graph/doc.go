// SPDX-License-Identifier: MIT

// Package graph holds the sparse graph representation consumed by the
// spatio-temporal layers, and the Laplacian machinery built on it.
//
// A Graph is a node count plus an ordered list of directed (Src, Dst) pairs
// with optional weights. Undirected topologies are encoded by listing both
// directions. Self-loops in the input are tolerated and stripped wherever a
// Laplacian is derived.
//
// Main entry points:
//
//   - ScaledLaplacian: the self-loop-augmented edge list of 2L/λmax − I for a
//     chosen Normalization (None, Sym, RW) and LambdaMax (Scalar or PerGraph).
//   - EstimateLambdaMax: the dominant eigenvalue of D − A, used when a caller
//     has no λmax at hand.
//   - Topology: an explicit Static / Sequence variant for graphs that stay
//     fixed or change at every timestep.
//   - FromGonum / ToGonum: conversion to and from gonum weighted graphs.
//   - ReadDOT / WriteDOT: Graphviz DOT through gonum's dot encoding.
//
// Everything here is a pure function of its inputs; nothing is cached
// between calls.
package graph
