package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// fetchCommand creates the fetch command for downloading the raw member
// export from the portal.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the raw member export from the portal",
		Long: `Download the raw member export from the logged-in portal.

The export is written untouched, before validation or normalization, so it
can be inspected or fed back to 'kintree parse'. Responses are cached;
--refresh forces a fresh download.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd.Context(), output, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, output string, refresh bool) error {
	store, err := c.newCache(ctx, false)
	if err != nil {
		return err
	}
	client, err := c.newPortalClient(store)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Fetching member export...")
	spinner.Start()

	doc, err := client.FetchDocument(ctx, refresh)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return err
	}
	spinner.Stop()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(raw); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Fetched %d members", len(doc.Members))
		printFile(output)
	}
	return nil
}
