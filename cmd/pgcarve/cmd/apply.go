package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// applyCmd returns a CLI command that reconciles every configured table
// against the live database: missing partitions are created and partitions
// older than the table's retention are dropped.
//
// Dropping a partition discards its rows, so unless --yes is passed the
// command previews the pending actions and asks for confirmation first.
//
// Example usage:
//
//	# Preview, confirm, then reconcile
//	pgcarve apply
//
//	# Reconcile without prompting (for cron and CI)
//	pgcarve apply --yes
//
//	# Preview only, same output as status
//	pgcarve apply --dry-run
func applyCmd() *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "Create missing partitions and drop expired ones",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "show pending actions without executing them",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "skip the confirmation prompt",
			},
		},
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

			pending, err := mgr.PlanActions(ctx, plan)
			if err != nil {
				return err
			}

			printResults(cmd.Writer, pending, false)

			if cmd.Bool("dry-run") {
				return nil
			}

			creates, deletes := 0, 0
			for _, r := range pending {
				creates += len(r.Created)
				deletes += len(r.Deleted)
			}

			if creates == 0 && deletes == 0 {
				return nil
			}

			if !cmd.Bool("yes") && !confirm(cmd, creates, deletes) {
				fmt.Fprintln(cmd.Writer, "Aborted.")
				return nil
			}

			results, err := mgr.Apply(ctx, plan)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Writer)
			printResults(cmd.Writer, results, true)
			return nil
		},
	}
}

// confirm prompts before executing, spelling out how many partitions will be
// dropped since that is the destructive part.
func confirm(cmd *cli.Command, creates, deletes int) bool {
	fmt.Fprintf(cmd.Writer, "\nAbout to create %d and drop %d partitions. Continue? [y/N] ", creates, deletes)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
