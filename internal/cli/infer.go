package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

// inferCommand creates the infer command for containment inference.
func (c *CLI) inferCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "infer [topology.json]",
		Short: "Infer CIDR containment edges without moving nodes",
		Long: `Infer CIDR containment edges without moving nodes.

The infer command reads a topology document, derives parent/child edges from
IP addresses and CIDR blocks, reconciles them with the existing edges, and
writes the document back out with positions untouched. User-drawn edges are
always preserved; previously inferred edges are replaced by the fresh
inference.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfer(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.inferred.json)")

	return cmd
}

// runInfer loads the document, reconciles inferred edges, and writes output.
func (c *CLI) runInfer(ctx context.Context, input, output string) error {
	doc, err := topo.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load topology %s: %w", input, err)
	}
	doc.EnsureIDs()

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	before := len(doc.Edges)
	merged := runner.Infer(doc.Nodes, doc.Edges)
	prog.done(fmt.Sprintf("Reconciled %d edges", len(merged)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".inferred.json"
	}

	out := topo.NewDocument(doc.Nodes, merged)
	if err := topo.WriteDocumentFile(out, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Inference complete")
	printFile(outputPath)
	printDetail("%d edges in, %d edges out", before, len(merged))

	return nil
}
