package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sbhuiyan/kintree/pkg/pipeline"
	"github.com/sbhuiyan/kintree/pkg/view"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single format) or base path (multiple)
	formats  string // comma-separated output formats
	device   string // device profile for layout tokens
	selected string // member ID to select before resolving visibility
	lineage  bool   // fade members outside the selected member's lineage
	collapse bool   // hide distant generations around the selection
	noLabels bool   // drop the generation-label overlay
	portal   bool   // fetch the document from the portal
	strict   bool   // reject the document on any validation finding
	refresh  bool   // bypass all caches
	noCache  bool   // disable caching entirely
}

// renderCommand creates the render command for generating tree artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a family tree to PNG, PDF, SVG, DOT, or JSON",
		Long: `Render a family tree through the full parse, layout, and render pipeline.

Visibility flags reproduce an interactive view state in the export:
--select picks a member, --lineage fades everyone off their ancestor and
descendant axis, and --collapse hides generations far from the selection.

Examples:
  kintree render family.json                          # family.png
  kintree render family.json -f png,pdf -o out/tree   # out/tree.png, out/tree.pdf
  kintree render --portal -f svg                      # portal export as SVG
  kintree render family.json --select m-4a1 --lineage # highlight a lineage`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), pdf, svg, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.device, "device", "d", "", "device profile: desktop (default), tablet, mobile")
	cmd.Flags().StringVar(&opts.selected, "select", "", "member ID to select before rendering")
	cmd.Flags().BoolVar(&opts.lineage, "lineage", false, "fade members outside the selected member's lineage")
	cmd.Flags().BoolVar(&opts.collapse, "collapse", false, "hide generations distant from the selection")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "drop the generation-label overlay")
	cmd.Flags().BoolVar(&opts.portal, "portal", false, "fetch from the logged-in portal")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject the document on any validation problem")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass caches")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	device := opts.device
	if device == "" {
		device = c.Config.View.Device
	}

	viewOpts := view.Options{
		ShowAllGenerations:   c.Config.View.ShowAllGenerations && !opts.collapse,
		FocusLineage:         opts.lineage || c.Config.View.FocusLineage,
		ShowGenerationLabels: c.Config.View.ShowGenerationLabels && !opts.noLabels,
	}

	popts := pipeline.Options{
		Input:      input,
		FromPortal: opts.portal,
		Strict:     opts.strict,
		Refresh:    opts.refresh,
		Device:     device,
		Formats:    c.parseFormats(opts.formats),
		SelectedID: opts.selected,
		View:       viewOpts,
		Logger:     c.Logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering family tree...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := renderBasePath(opts.output, input)
	for _, format := range popts.Formats {
		path := base + "." + format
		if opts.output != "" && len(popts.Formats) == 1 {
			path = opts.output
		}
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(result.Artifacts[format]); err != nil {
			out.Close()
			return err
		}
		out.Close()
		printFile(path)
	}

	printSuccess("Rendered %s", result.Data.Meta.FamilyName)
	printStats(result.Stats.Members, result.Stats.Edges, result.CacheInfo.LayoutHit)

	return nil
}

// renderBasePath derives the base output path from the output and input
// paths, stripping a known format extension when present.
func renderBasePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "tree"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
