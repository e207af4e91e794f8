// SPDX-License-Identifier: MIT

package graph

import "fmt"

// Topology is either one graph shared by every timestep (Static) or one graph
// per timestep (Sequence). The caller picks the form explicitly.
type Topology struct {
	graphs   []Graph
	sequence bool
}

// Static returns a topology that uses g at every timestep.
func Static(g Graph) Topology { return Topology{graphs: []Graph{g}} }

// Sequence returns a time-varying topology, gs[t] being the graph of step t.
func Sequence(gs ...Graph) Topology {
	return Topology{graphs: append([]Graph(nil), gs...), sequence: true}
}

// IsSequence reports whether t is time-varying.
func (t Topology) IsSequence() bool { return t.sequence }

// Len returns the number of distinct graphs held.
func (t Topology) Len() int { return len(t.graphs) }

// At returns the graph for timestep step. Static topologies ignore step.
// At must only be called on a topology that passed Validate.
func (t Topology) At(step int) Graph {
	if !t.sequence {
		return t.graphs[0]
	}

	return t.graphs[step]
}

// Validate checks every graph and that the topology fits features with
// numNodes nodes over steps timesteps.
// Errors: ErrInvalidGraph, ErrNodeCountMismatch, ErrSequenceLength.
func (t Topology) Validate(numNodes, steps int) error {
	if len(t.graphs) == 0 {
		return graphErrorf(opTopology, fmt.Errorf("empty topology: %w", ErrInvalidGraph))
	}
	if t.sequence && len(t.graphs) != steps {
		return graphErrorf(opTopology, fmt.Errorf("%d graphs for %d timesteps: %w", len(t.graphs), steps, ErrSequenceLength))
	}
	for i, g := range t.graphs {
		if err := g.Validate(); err != nil {
			return graphErrorf(opTopology, fmt.Errorf("graph %d: %w", i, err))
		}
		if g.NumNodes != numNodes {
			return graphErrorf(opTopology, fmt.Errorf("graph %d has %d nodes, features have %d: %w", i, g.NumNodes, numNodes, ErrNodeCountMismatch))
		}
	}

	return nil
}

// Strided returns the topology seen after a time convolution with the given
// stride: a Sequence keeps graphs[i*stride] for i < steps, a Static topology
// is returned unchanged. Indices past the end are dropped.
func (t Topology) Strided(stride, steps int) Topology {
	if !t.sequence || stride < 1 {
		return t
	}
	gs := make([]Graph, 0, steps)
	for i := 0; i < steps && i*stride < len(t.graphs); i++ {
		gs = append(gs, t.graphs[i*stride])
	}

	return Topology{graphs: gs, sequence: true}
}
