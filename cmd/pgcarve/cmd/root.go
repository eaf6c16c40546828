package cmd

import (
	"context"
	"os"

	"github.com/pgcarve/pgcarve/pkg/config"
	"github.com/pgcarve/pgcarve/pkg/consts"
	"github.com/pgcarve/pgcarve/pkg/editor"
	"github.com/pgcarve/pgcarve/pkg/partition"
	"github.com/pgcarve/pgcarve/pkg/postgres"
	"github.com/pgcarve/pgcarve/pkg/project"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

var currentProject *project.Project

// Run creates and executes the main pgcarve CLI application with the given
// version and command-line arguments. This function serves as the main entry
// point for all CLI operations and handles global configuration.
//
// The function creates a CLI application with:
//   - Global --dir flag for specifying project directory
//   - Project auto-detection based on pgcarve.yaml presence
//   - Command registration and routing
//   - Context propagation for cancellation support
//
// Global Flags:
//   - --dir, -d: Project directory (defaults to current directory)
//
// The application automatically detects pgcarve projects by looking for
// pgcarve.yaml in the specified directory. If found, it initializes the
// global currentProject variable for use by subcommands.
//
// Example usage:
//
//	# Run in current directory (auto-detect project)
//	err := Run(ctx, "v1.0.0", []string{"pgcarve", "init"})
//
//	# Run in specific directory
//	err := Run(ctx, "v1.0.0", []string{"pgcarve", "--dir", "/path/to/project", "status"})
//
// Returns an error if command execution fails or if project detection
// encounters issues.
func Run(ctx context.Context, version string, args []string) error {
	app := &cli.Command{
		Name:  "pgcarve",
		Usage: "A tool for maintaining partitioned PostgreSQL tables",
		Description: `pgcarve is a CLI tool that keeps time-partitioned PostgreSQL tables
healthy: it compares the partitions a table should have with the partitions
that exist, creates the missing ones ahead of time, and drops the ones that
have aged out of retention.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "the project directory",
				Value:       ".",
				DefaultText: "Current directory",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			projectDir := cmd.String("dir")

			// Change to project directory first
			if err := os.Chdir(projectDir); err != nil {
				return ctx, err
			}

			if !project.IsProject(".") {
				return ctx, nil
			}

			// Create project instance using current directory (since we've already changed to it)
			pwd, _ := os.Getwd()
			currentProject = project.New(pwd)
			return ctx, nil
		},
		Commands: []*cli.Command{
			applyCmd(),
			initCmd(),
			statusCmd(),
		},
	}

	return app.Run(ctx, args)
}

// projectConfig returns the detected project's configuration, failing with a
// helpful message when the command runs outside a pgcarve project.
func projectConfig() (*config.Config, error) {
	if currentProject == nil {
		return nil, errors.Errorf("%s not found - please run 'pgcarve init' first to initialize the project", consts.ConfigFile)
	}

	return currentProject.Config()
}

// connectManager builds the maintenance plan from the project config and
// connects a manager to the configured server. The returned close function
// releases the connection pool.
func connectManager(ctx context.Context, cfg *config.Config) (*partition.Manager, *partition.Plan, func(), error) {
	plan, err := partition.FromConfig(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := postgres.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, nil, err
	}

	ed := editor.New(editor.Config{
		Engine:   postgres.NewEngine(),
		Executor: client,
		Quoter:   client,
	})

	mgr := partition.NewManager(partition.Config{
		Editor:       ed,
		Introspector: client,
	})

	return mgr, plan, func() { _ = client.Close() }, nil
}
