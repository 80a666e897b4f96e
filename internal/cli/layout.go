package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sbhuiyan/kintree/pkg/cache"
	"github.com/sbhuiyan/kintree/pkg/pipeline"
	"github.com/sbhuiyan/kintree/pkg/tree"
)

// layoutCommand creates the layout command for computing tree placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute a generational layout from a member export",
		Long: `Compute world-space placements for every member of a family graph.

The output is a layout.json with node positions, generation bands, and
bounds for the selected device profile. Results are cached locally by
content hash for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.Device, "device", "d", "", "device profile: desktop (default), tablet, mobile")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject the document on any validation problem")

	return cmd
}

// runLayout parses the input, computes the layout, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	data, err := runner.Parse(ctx, opts)
	if err != nil {
		return err
	}

	treeHash := ""
	if raw, err := tree.Marshal(data); err == nil {
		treeHash = cache.Hash(raw)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Device))
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayout(ctx, data, treeHash, opts)
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
		base := strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input))
		outputPath = base + ".layout.json"
	}

	raw, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(raw); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(data.Nodes), len(data.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "kintree render "+opts.Input)

	return nil
}
