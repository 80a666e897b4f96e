package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbhuiyan/kintree/pkg/archive"
	"github.com/sbhuiyan/kintree/pkg/tree"
)

// archiveCommand creates the archive command with subcommands.
func (c *CLI) archiveCommand() *cobra.Command {
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Store and retrieve tree snapshots in MongoDB",
		Long: `Store immutable family-tree snapshots in a MongoDB archive.

Snapshots are deduplicated by content hash; pushing the same tree twice
returns the existing snapshot. Pull accepts a snapshot ID or a label.`,
	}

	cmd.PersistentFlags().StringVar(&mongoURI, "mongo", c.Config.Serve.Mongo, "MongoDB connection string")

	cmd.AddCommand(c.archivePushCommand(&mongoURI))
	cmd.AddCommand(c.archivePullCommand(&mongoURI))
	cmd.AddCommand(c.archiveListCommand(&mongoURI))

	return cmd
}

// openArchive connects to the configured MongoDB archive.
func openArchive(ctx context.Context, uri string) (*archive.Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("no archive: pass --mongo or set serve.mongo in the config")
	}
	return archive.Connect(ctx, uri)
}

// archivePushCommand creates the "archive push" subcommand.
func (c *CLI) archivePushCommand(mongoURI *string) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "push [graph.json]",
		Short: "Archive a family graph snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := tree.ReadFile(args[0])
			if err != nil {
				return err
			}

			store, err := openArchive(ctx, *mongoURI)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			id, err := store.Push(ctx, &data, label)
			if err != nil {
				return err
			}

			printSuccess("Archived %s", data.Meta.FamilyName)
			printKeyValue("Snapshot", id)
			if label != "" {
				printKeyValue("Label", label)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "snapshot label")
	return cmd
}

// archivePullCommand creates the "archive pull" subcommand.
func (c *CLI) archivePullCommand(mongoURI *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull [id-or-label]",
		Short: "Retrieve an archived snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openArchive(ctx, *mongoURI)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			data, err := store.Pull(ctx, args[0])
			if err != nil {
				return err
			}

			return writeGraph(data, output, c.Logger)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// archiveListCommand creates the "archive list" subcommand.
func (c *CLI) archiveListCommand(mongoURI *string) *cobra.Command {
	var limit int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openArchive(ctx, *mongoURI)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			snaps, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				printInfo("Archive is empty")
				return nil
			}

			for _, s := range snaps {
				label := s.Label
				if label == "" {
					label = "-"
				}
				fmt.Printf("%s  %-20s %-24s %4d members  %s\n",
					s.ID.Hex(), label, s.FamilyName, s.Members,
					s.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&limit, "limit", 20, "maximum snapshots to list (0 for all)")
	return cmd
}
