package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/25smoking/aggsynth/internal/config"
	"github.com/25smoking/aggsynth/internal/core"
	"github.com/25smoking/aggsynth/internal/dataset"
	"github.com/25smoking/aggsynth/internal/graph"
	"github.com/25smoking/aggsynth/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Generation flags. Only flags set on the command line override the config.
var (
	count        int
	output       string
	force        bool
	seed         int64
	noAttributes int
	maxAttempts  int
	normalizer   string
	eps          float64
	graphPath    string
	graphFormat  string
	noManifest   bool
)

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVarP(&count, "count", "n", 0, "number of rows to generate")
	f.StringVarP(&output, "output", "o", "", "dataset CSV path")
	f.BoolVarP(&force, "force", "f", false, "replace an existing dataset")
	f.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	f.IntVarP(&noAttributes, "attributes", "a", 0, "attribute slots per entry")
	f.IntVar(&maxAttempts, "max-attempts", 0, "walk restarts per entry before failing (0 = unbounded)")
	f.StringVar(&normalizer, "normalizer", "", fmt.Sprintf("rate normalizer %v", core.NormalizerNames()))
	f.Float64Var(&eps, "eps", 0, "normalizer epsilon")
	f.StringVarP(&graphPath, "graph", "g", "", "graph file (.yaml or .db)")
	f.StringVar(&graphFormat, "graph-format", "", "graph format: yaml, sqlite or synthetic")
	f.BoolVar(&noManifest, "no-manifest", false, "do not write the JSON manifest")
}

func applyGenerateFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("count") {
		c.Dataset.Count = count
	}
	if f.Changed("output") {
		c.Dataset.Output = output
	}
	if f.Changed("force") {
		c.Dataset.Force = force
	}
	if f.Changed("seed") {
		c.Generator.Seed = seed
	}
	if f.Changed("attributes") {
		c.Generator.NoAttributes = noAttributes
	}
	if f.Changed("max-attempts") {
		c.Generator.MaxAttempts = maxAttempts
	}
	if f.Changed("normalizer") {
		c.Generator.Normalizer = normalizer
	}
	if f.Changed("eps") {
		c.Generator.Eps = eps
	}
	applyGraphFlags(cmd, &c.Graph)
	if f.Changed("no-manifest") {
		c.Dataset.Manifest = !noManifest
	}
}

func applyGraphFlags(cmd *cobra.Command, gc *config.GraphConfig) {
	f := cmd.Flags()
	if f.Changed("graph") {
		gc.Path = graphPath
		if gc.Format == config.FormatSynthetic {
			gc.Format = ""
		}
	}
	if f.Changed("graph-format") {
		gc.Format = graphFormat
	}
}

func runGenerate(cmd *cobra.Command) error {
	applyGenerateFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	console := report.NewConsole(os.Stdout, os.Getenv("NO_COLOR") == "")
	console.PrintBanner()

	g, source, err := loadGraph(ctx, cfg.Graph)
	if err != nil {
		return err
	}

	runSeed := cfg.Generator.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	gcfg, err := cfg.Generator.Core()
	if err != nil {
		return err
	}
	gen, err := core.NewGenerator(g, gcfg,
		core.WithSeed(runSeed),
		core.WithLogger(logger.Named("generator")),
	)
	if err != nil {
		return err
	}

	console.PrintSection("Generating data")
	console.PrintKV("graph", source)
	console.PrintKV("nodes", g.NodeCount())
	console.PrintKV("edges", g.EdgeCount())
	console.PrintKV("attributes", gcfg.NoAttributes)
	console.PrintKV("seed", runSeed)
	console.PrintKV("output", cfg.Dataset.Output)
	if gcfg.MaxAttempts == 0 {
		log.Debug("retry budget is unbounded; a sparse graph may never yield an entry")
	}

	writer := dataset.NewWriter(gen, gcfg.NoAttributes,
		dataset.WithLogger(logger.Named("dataset")),
		dataset.WithProgress(report.NewProgressBar(os.Stderr, "Generating data")),
	)
	res, err := writer.GenerateData(ctx, cfg.Dataset.Count, cfg.Dataset.Output, cfg.Dataset.Force)
	if err != nil {
		return err
	}
	console.PrintResult(res, gen.Counters())

	if !res.Skipped && cfg.Dataset.Manifest {
		m := dataset.NewManifest(res, gcfg.NoAttributes, gen.Counters())
		m.Graph = source
		m.Seed = runSeed
		m.Normalizer = cfg.Generator.Normalizer
		m.Eps = gcfg.Eps
		m.MaxAttempts = gcfg.MaxAttempts
		if err := dataset.SaveManifest(m); err != nil {
			return err
		}
		log.Infow("manifest written", zap.String("path", dataset.ManifestPath(res.Path)))
	}

	console.PrintSummary()
	return nil
}

// loadGraph builds or reads the graph described by gc and returns it with a
// human-readable description of its source.
func loadGraph(ctx context.Context, gc config.GraphConfig) (*graph.Graph, string, error) {
	if gc.Format == config.FormatSynthetic {
		o := gc.Synthetic
		g, err := graph.BuildSynthetic(o)
		if err != nil {
			return nil, "", err
		}
		return g, fmt.Sprintf("synthetic(attributes=%d, values=%d, density=%g, seed=%d)",
			o.Attributes, o.Values, o.Density, o.Seed), nil
	}

	g, err := graph.Load(ctx, gc.Format, gc.Path)
	if err != nil {
		return nil, "", err
	}
	log.Debugw("graph loaded",
		zap.String("path", gc.Path),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
	)
	return g, gc.Path, nil
}
