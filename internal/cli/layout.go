package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/pipeline"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

// layoutCommand creates the layout command for positioning topology nodes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "layout [topology.json]",
		Short: "Compute node positions for a topology document",
		Long: `Compute node positions for a topology document.

The layout command reads a topology document, infers subnet containment from
node addresses, arranges the nodes with the selected strategy, and writes the
positioned document back out.

Strategies: layered, force, grid, radial, addrtree (default).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", opts.Strategy, "layout strategy: layered, force, grid, radial, addrtree")
	cmd.Flags().StringVar(&opts.Direction, "direction", opts.Direction, "layered direction: vertical (default), horizontal")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", opts.Iterations, "force simulation iterations (0 = default)")
	cmd.Flags().IntVar(&opts.Columns, "columns", opts.Columns, "grid column count (0 = square)")
	cmd.Flags().BoolVar(&opts.SkipInfer, "skip-infer", false, "skip containment inference")

	return cmd
}

// runLayout loads the document, runs the pipeline, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := topo.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load topology %s: %w", input, err)
	}
	doc.EnsureIDs()

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Strategy))
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := topo.WriteDocumentFile(result.Document, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	if result.Stats.InferredCount > 0 {
		printDetail("%d containment edges inferred", result.Stats.InferredCount)
	}

	return nil
}
