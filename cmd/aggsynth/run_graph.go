package main

import (
	"context"
	"fmt"
	"os"

	"github.com/25smoking/aggsynth/internal/config"
	"github.com/25smoking/aggsynth/internal/graph"
	"github.com/spf13/cobra"
)

// Each subcommand binds its own output variables: pflag writes a flag's
// default into the variable when the flag is defined.
var (
	synthOut      string
	synthFormat   string
	synthOpts     graph.SyntheticOptions
	dotOut        string
	convertOut    string
	convertFormat string
)

func newGraphCmd() *cobra.Command {
	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Build, convert and inspect attributed graphs",
	}

	synthCmd := &cobra.Command{
		Use:   "synth",
		Short: "Build a random attributed graph and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraphSynth(cmd)
		},
	}
	synthCmd.Flags().StringVar(&synthOut, "out", "graph.yaml", "output file (.yaml or .db)")
	synthCmd.Flags().StringVar(&synthFormat, "format", "", "output format: yaml or sqlite (default from extension)")
	synthCmd.Flags().IntVar(&synthOpts.Attributes, "attributes", 0, "attribute slots")
	synthCmd.Flags().IntVar(&synthOpts.Values, "values", 0, "values per attribute")
	synthCmd.Flags().Float64Var(&synthOpts.Density, "density", 0, "probability of each cross-attribute edge")
	synthCmd.Flags().Int64Var(&synthOpts.Seed, "seed", 0, "random seed")

	dotCmd := &cobra.Command{
		Use:   "dot",
		Short: "Export a graph in Graphviz DOT format",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraphDOT(cmd)
		},
	}
	addGraphSourceFlags(dotCmd)
	dotCmd.Flags().StringVar(&dotOut, "out", "graph.dot", "DOT output file")

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a graph between YAML and SQLite storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraphConvert(cmd)
		},
	}
	addGraphSourceFlags(convertCmd)
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output file (.yaml or .db)")
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "output format: yaml or sqlite (default from extension)")
	_ = convertCmd.MarkFlagRequired("out")

	graphCmd.AddCommand(synthCmd, dotCmd, convertCmd)
	return graphCmd
}

func addGraphSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph file (.yaml or .db)")
	cmd.Flags().StringVar(&graphFormat, "graph-format", "", "graph format: yaml, sqlite or synthetic")
}

func runGraphSynth(cmd *cobra.Command) error {
	opts := cfg.Graph.Synthetic
	f := cmd.Flags()
	if f.Changed("attributes") {
		opts.Attributes = synthOpts.Attributes
	}
	if f.Changed("values") {
		opts.Values = synthOpts.Values
	}
	if f.Changed("density") {
		opts.Density = synthOpts.Density
	}
	if f.Changed("seed") {
		opts.Seed = synthOpts.Seed
	}

	g, err := graph.BuildSynthetic(opts)
	if err != nil {
		return err
	}
	if err := g.Save(context.Background(), synthFormat, synthOut); err != nil {
		return err
	}

	log.Infof("graph written: %s (%d nodes, %d edges)", synthOut, g.NodeCount(), g.EdgeCount())
	return nil
}

func runGraphDOT(cmd *cobra.Command) error {
	gc := cfg.Graph
	applyGraphFlags(cmd, &gc)

	g, _, err := loadGraph(context.Background(), gc)
	if err != nil {
		return err
	}

	f, err := os.Create(dotOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := g.ExportDOT(f); err != nil {
		return fmt.Errorf("failed to write DOT file: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Infof("graph exported: %s", dotOut)
	log.Info("render it with Graphviz, e.g. `circo -Tsvg " + dotOut + " -o graph.svg`")
	return nil
}

func runGraphConvert(cmd *cobra.Command) error {
	gc := cfg.Graph
	applyGraphFlags(cmd, &gc)
	if gc.Format != config.FormatSynthetic && gc.Path == "" {
		return fmt.Errorf("--graph is required")
	}

	ctx := context.Background()
	g, source, err := loadGraph(ctx, gc)
	if err != nil {
		return err
	}
	if err := g.Save(ctx, convertFormat, convertOut); err != nil {
		return err
	}

	log.Infof("graph converted: %s -> %s", source, convertOut)
	return nil
}
