// SPDX-License-Identifier: MIT

package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGraph indicates a malformed Graph: no nodes, an endpoint out of
	// range, a weight slice not aligned with the edges, or a non-finite weight.
	ErrInvalidGraph = errors.New("graph: invalid graph")

	// ErrNodeCountMismatch indicates that a graph's node count differs from the
	// node axis of the features it is paired with.
	ErrNodeCountMismatch = errors.New("graph: node count mismatch")

	// ErrSequenceLength indicates a graph sequence whose length differs from
	// the number of timesteps.
	ErrSequenceLength = errors.New("graph: sequence length mismatch")

	// ErrInvalidNormalization indicates an unknown normalization keyword.
	ErrInvalidNormalization = errors.New("graph: invalid normalization")

	// ErrLambdaMaxRequired indicates that λmax was omitted under a
	// normalization that has no default for it.
	ErrLambdaMaxRequired = errors.New("graph: lambda_max is required for non-symmetric normalization")

	// ErrBatchAssignment indicates a missing or malformed per-node batch vector
	// for a per-graph λmax.
	ErrBatchAssignment = errors.New("graph: invalid batch assignment")
)

const (
	opValidate  = "Validate"
	opTopology  = "Topology.Validate"
	opScaled    = "ScaledLaplacian"
	opEstimate  = "EstimateLambdaMax"
	opParseNorm = "ParseNormalization"
	opToGonum   = "ToGonum"
	opFromGonum = "FromGonum"
	opSplit     = "Split"
	opReadDOT   = "ReadDOT"
	opWriteDOT  = "WriteDOT"
	opBatchLmax = "EstimateLambdaMaxBatch"
)

func graphErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
