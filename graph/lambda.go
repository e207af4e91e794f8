// SPDX-License-Identifier: MIT

package graph

// LambdaMax carries the largest Laplacian eigenvalue used for rescaling.
// The zero value means "absent"; Scalar and PerGraph build the two present
// forms.
type LambdaMax struct {
	values []float64
}

// Scalar returns a λmax shared by every edge.
func Scalar(v float64) LambdaMax { return LambdaMax{values: []float64{v}} }

// PerGraph returns one λmax per graph of a batched (disjoint union) graph.
// Each edge picks the entry of its source node's graph id.
// A single value behaves like Scalar.
func PerGraph(vs ...float64) LambdaMax {
	return LambdaMax{values: append([]float64(nil), vs...)}
}

// IsSet reports whether a value was supplied.
func (l LambdaMax) IsSet() bool { return len(l.values) > 0 }

// Len returns the number of stored values.
func (l LambdaMax) Len() int { return len(l.values) }

// Values returns a copy of the stored values.
func (l LambdaMax) Values() []float64 { return append([]float64(nil), l.values...) }
