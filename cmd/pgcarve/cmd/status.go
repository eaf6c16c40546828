package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pgcarve/pgcarve/pkg/partition"
	"github.com/urfave/cli/v3"
)

// statusCmd returns a CLI command that reports what partition maintenance
// would do for every configured table, without executing any DDL.
//
// For each table it prints the partitions that need creating, the partitions
// that have aged out of retention and would be dropped, and the planned
// partitions that already exist.
//
// Example usage:
//
//	pgcarve status
//	pgcarve --dir /path/to/project status
func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show pending partition maintenance actions",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := projectConfig()
			if err != nil {
				return err
			}

			mgr, plan, closer, err := connectManager(ctx, cfg)
			if err != nil {
				return err
			}
			defer closer()

			results, err := mgr.PlanActions(ctx, plan)
			if err != nil {
				return err
			}

			printResults(cmd.Writer, results, false)
			return nil
		},
	}
}

// printResults renders the per-table reconciliation outcome. Past tense is
// used after an apply, future tense for a preview.
func printResults(w io.Writer, results []partition.TableResult, applied bool) {
	createVerb, deleteVerb := "Would create", "Would drop"
	if applied {
		createVerb, deleteVerb = "Created", "Dropped"
	}

	for _, r := range results {
		fmt.Fprintf(w, "%s:\n", r.Table)

		if len(r.Created) == 0 && len(r.Deleted) == 0 {
			fmt.Fprintf(w, "- Up to date (%d partitions in place)\n", len(r.Skipped))
			continue
		}

		for _, name := range r.Created {
			fmt.Fprintf(w, "- %s partition %s\n", createVerb, name)
		}

		for _, name := range r.Deleted {
			fmt.Fprintf(w, "- %s partition %s\n", deleteVerb, name)
		}

		if len(r.Skipped) > 0 {
			fmt.Fprintf(w, "- %d partitions already in place\n", len(r.Skipped))
		}
	}
}
