// SPDX-License-Identifier: MIT

// Command astgcn builds or reads a sensor topology, runs one forward pass of
// an ASTGCN model and reports the forecast tensor.
//
// Readings come from a NumPy file of shape (B,N,F,T) given by -input, or are
// drawn from a standard normal when -input is empty. Random readings are not
// tied to -seed.
//
// Usage:
//
//	astgcn -topology grid -nodes 12 -rows 3 -timesteps 12 -horizon 3
//	astgcn -topology ring -nodes 8 -save model.ckpt -dot ring.dot
//	astgcn -graph ring.dot -load model.ckpt -input readings.npy -dump forecast.npy
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/katalvlaran/stgnn/astgcn"
	"github.com/katalvlaran/stgnn/builder"
	"github.com/katalvlaran/stgnn/checkpoint"
	"github.com/katalvlaran/stgnn/graph"
	"github.com/katalvlaran/stgnn/nn"
	"github.com/katalvlaran/stgnn/tensor"
	"github.com/katalvlaran/stgnn/tensorio"
)

func main() {
	var (
		topoName  = flag.String("topology", "ring", "Sensor topology: ring, path, star, complete, grid, random")
		nodes     = flag.Int("nodes", 8, "Number of sensors")
		rows      = flag.Int("rows", 2, "Grid rows (grid topology; nodes must be a multiple)")
		density   = flag.Float64("p", 0.3, "Edge probability (random topology)")
		weighted  = flag.Bool("weighted", false, "Draw edge weights uniformly from [0.5, 1.5)")
		batch     = flag.Int("batch", 4, "Batch size")
		features  = flag.Int("features", 1, "Input features per sensor")
		timesteps = flag.Int("timesteps", 12, "Input sequence length")
		horizon   = flag.Int("horizon", 3, "Forecast horizon")
		outputs   = flag.Int("outputs", 1, "Output features per sensor")
		blocks    = flag.Int("blocks", 2, "Number of ASTGCN blocks")
		order     = flag.Int("K", 3, "Chebyshev order")
		chebF     = flag.Int("cheb-filters", 16, "Chebyshev filters")
		timeF     = flag.Int("time-filters", 16, "Time convolution filters")
		strides   = flag.Int("strides", 1, "Time stride of the first block")
		normName  = flag.String("normalization", "sym", "Laplacian normalization: none, sym, rw")
		gated     = flag.Bool("gated", false, "Use the gated time convolution")
		noBias    = flag.Bool("no-bias", false, "Drop the Chebyshev bias")
		seed      = flag.Int64("seed", 1, "Seed for weights and generated topologies")
		savePath  = flag.String("save", "", "Write parameters to this checkpoint file")
		loadPath  = flag.String("load", "", "Read parameters from this checkpoint file before running")
		graphPath = flag.String("graph", "", "Read the topology from this DOT file instead of -topology")
		dotPath   = flag.String("dot", "", "Write the topology to this DOT file")
		inPath    = flag.String("input", "", "Read (B,N,F,T) readings from this .npy file")
		dumpPath  = flag.String("dump", "", "Write the forecast to this .npy file")
		showLap   = flag.Bool("laplacian", false, "Print the dense scaled Laplacian the blocks convolve with")
	)
	flag.Parse()

	norm, err := graph.ParseNormalization(*normName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	g, source, err := loadTopology(*graphPath, *topoName, *nodes, *rows, *density, *weighted, *seed)
	if err != nil {
		log.Fatalf("topology: %v", err)
	}
	log.Printf("topology=%s nodes=%d edges=%d", source, g.NumNodes, g.NumEdges())
	if *dotPath != "" {
		if err = writeDOT(*dotPath, g, source); err != nil {
			log.Fatalf("write dot: %v", err)
		}
		log.Printf("wrote %s", *dotPath)
	}
	labels, parts, err := graph.Components(g)
	if err != nil {
		log.Fatalf("components: %v", err)
	}
	lmax, err := graph.EstimateLambdaMaxBatch(g, labels, parts)
	if err != nil {
		log.Fatalf("lambda_max: %v", err)
	}
	log.Printf("components=%d lambda_max=%.4f", parts, lmax.Values())
	if *showLap {
		if err = printLaplacian(g, norm); err != nil {
			log.Fatalf("laplacian: %v", err)
		}
	}

	cfg := astgcn.ModelConfig{
		NumBlocks:     *blocks,
		InputSize:     *features,
		OutputSize:    *outputs,
		K:             *order,
		ChebFilters:   *chebF,
		TimeFilters:   *timeF,
		TimeStrides:   *strides,
		PredLen:       *horizon,
		SeqLen:        *timesteps,
		NumNodes:      g.NumNodes,
		Normalization: norm,
		Bias:          !*noBias,
		Gated:         *gated,
	}
	model, err := astgcn.NewModel(cfg, nn.WithSeed(*seed))
	if err != nil {
		log.Fatalf("new model: %v", err)
	}
	params := model.Params()
	log.Printf("model blocks=%d params=%d tensors=%d T'=%d", cfg.NumBlocks, nn.Count(params), len(params), cfg.OutTimesteps())

	if *loadPath != "" {
		if err = checkpoint.LoadFile(*loadPath, params); err != nil {
			log.Fatalf("load checkpoint: %v", err)
		}
		log.Printf("loaded %s", *loadPath)
	}

	x, err := readings(*inPath, *batch, g.NumNodes, *features, *timesteps)
	if err != nil {
		log.Fatalf("input: %v", err)
	}
	log.Printf("input shape=%v", x.Shape())
	y, err := model.Forward(x, graph.Static(g))
	if err != nil {
		log.Fatalf("forward: %v", err)
	}

	fmt.Printf("output shape=%v finite=%t mean=%.6f maxabs=%.6f\n", y.Shape(), y.AllFinite(), y.Mean(), y.MaxAbs())

	if *dumpPath != "" {
		if err = tensorio.SaveNpy(*dumpPath, y); err != nil {
			log.Fatalf("dump forecast: %v", err)
		}
		log.Printf("dumped %s", *dumpPath)
	}

	if *savePath != "" {
		if err = checkpoint.SaveFile(*savePath, params); err != nil {
			log.Fatalf("save checkpoint: %v", err)
		}
		log.Printf("saved %s", *savePath)
	}
}

func buildTopology(name string, n, rows int, p float64, weighted bool, seed int64) (graph.Graph, error) {
	var cons builder.Constructor
	switch name {
	case "ring", "cycle":
		cons = builder.Cycle(n)
	case "path":
		cons = builder.Path(n)
	case "star":
		cons = builder.Star(n)
	case "complete":
		cons = builder.Complete(n)
	case "grid":
		if rows < 1 || n%rows != 0 {
			return graph.Graph{}, fmt.Errorf("grid: %d nodes do not fill %d rows", n, rows)
		}
		cons = builder.Grid(rows, n/rows)
	case "random":
		cons = builder.RandomSparse(n, p)
	default:
		return graph.Graph{}, fmt.Errorf("unknown topology %q", name)
	}
	opts := []builder.BuilderOption{builder.WithSeed(seed)}
	if weighted {
		opts = append(opts, builder.WithWeightFn(builder.UniformWeight(0.5, 1.5)))
	}

	return builder.Build(cons, opts...)
}

// loadTopology reads path as DOT when set and otherwise builds the named
// generator. The returned label names the source in logs and DOT output.
func loadTopology(path, name string, n, rows int, p float64, weighted bool, seed int64) (graph.Graph, string, error) {
	if path == "" {
		g, err := buildTopology(name, n, rows, p, weighted, seed)
		return g, name, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return graph.Graph{}, "", err
	}
	g, _, err := graph.ReadDOT(data)
	if err != nil {
		return graph.Graph{}, "", fmt.Errorf("%s: %w", path, err)
	}

	return g, "dot", nil
}

func writeDOT(path string, g graph.Graph, name string) error {
	data, err := graph.WriteDOT(g, name)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// printLaplacian writes 2L/λmax − I as a dense matrix, using the λmax a
// Block would use for g.
func printLaplacian(g graph.Graph, norm graph.Normalization) error {
	var lambda graph.LambdaMax
	if norm != graph.Sym {
		lmax, err := graph.EstimateLambdaMax(g)
		if err != nil {
			return err
		}
		lambda = graph.Scalar(lmax)
	}
	lap, err := graph.ScaledLaplacian(g, norm, lambda, nil)
	if err != nil {
		return err
	}
	d, err := lap.ToDense()
	if err != nil {
		return err
	}
	fmt.Printf("scaled laplacian (%s, %d entries):\n%s\n", norm, lap.Len(), d)

	return nil
}

// readings loads (B,N,F,T) input from path, or draws a (b,n,f,t) standard
// normal tensor when path is empty. A file must match n, f and t; its batch
// size wins over b.
func readings(path string, b, n, f, t int) (*tensor.Tensor, error) {
	if path == "" {
		return tensorio.Random(b, n, f, t)
	}
	x, err := tensorio.LoadNpy(path)
	if err != nil {
		return nil, err
	}
	if x.NDim() != 4 || x.Dim(1) != n || x.Dim(2) != f || x.Dim(3) != t {
		return nil, fmt.Errorf("%s: shape %v, want (B,%d,%d,%d)", path, x.Shape(), n, f, t)
	}

	return x, nil
}
