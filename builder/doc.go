// SPDX-License-Identifier: MIT

// Package builder provides deterministic topology constructors for sensor
// networks and test fixtures: rings (Cycle), paths, stars, complete graphs,
// 2-D grids and seeded random sparse graphs.
//
// Every constructor emits undirected adjacency as bidirectional (u,v),(v,u)
// pairs in a documented, stable order, so that Laplacians built from the
// result are symmetric and reproducible. Edge weights are unit (no weight
// slice) unless WithWeightFn installs a generator; both directions of a pair
// share one draw.
//
// Build runs a single constructor; BuildBatch joins several into one
// disjoint-union graph and returns the per-node graph id vector consumed by
// a per-graph λmax.
package builder
