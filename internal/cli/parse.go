package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbhuiyan/kintree/pkg/pipeline"
	"github.com/sbhuiyan/kintree/pkg/tree"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	strict  bool   // reject the document on any validation finding
	refresh bool   // bypass the portal response cache
	portal  bool   // fetch the document from the portal instead of a file
	output  string // output file path (stdout if empty)
}

// parseCommand creates the parse command for validating and normalizing
// member documents.
func (c *CLI) parseCommand() *cobra.Command {
	opts := parseOpts{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a member export into a normalized family graph",
		Long: `Parse a raw member export into the normalized family graph.

Validation problems are logged per member. By default invalid members are
kept; with --strict any finding rejects the whole document.

Examples:
  kintree parse family.json                # local export
  kintree parse family.json -o graph.json  # write to file
  kintree parse --portal                   # fetch from the logged-in portal`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runParse(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject the document on any validation problem")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the portal cache")
	cmd.Flags().BoolVar(&opts.portal, "portal", false, "fetch from the logged-in portal")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runParse validates and normalizes the document and writes the graph JSON.
func (c *CLI) runParse(ctx context.Context, input string, opts *parseOpts) error {
	popts := pipeline.Options{
		Input:      input,
		FromPortal: opts.portal,
		Strict:     opts.strict,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	prog := newProgress(c.Logger)
	data, err := runner.Parse(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d members with %d edges", len(data.Nodes), len(data.Edges)))

	return writeGraph(data, opts.output, c.Logger)
}

// writeGraph serializes the graph as JSON to the specified path, or
// stdout when the path is empty.
func writeGraph(data *tree.Data, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := tree.Write(data, out); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote graph to %s", path)
	}
	return nil
}
