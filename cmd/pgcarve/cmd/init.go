package cmd

import (
	"context"
	"os"

	"github.com/pgcarve/pgcarve/pkg/project"
	"github.com/urfave/cli/v3"
)

// initCmd returns a CLI command that initializes a new pgcarve project in
// the current directory. This command creates the configuration file
// skeleton used by the other commands.
//
// The initialization process is idempotent - running it multiple times will
// not overwrite existing files, making it safe to run in existing
// directories.
//
// Created structure:
//   - pgcarve.yaml: Configuration file with connection and table settings
//
// Example usage:
//
//	# Initialize a project in current directory
//	pgcarve init
//
//	# Initialize with a connection string baked into the config
//	pgcarve init --dsn postgres://localhost:5432/app?sslmode=disable
//
// The command will create the necessary files while preserving any existing
// content, making it safe to run in populated directories.
func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a project in the current directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dsn",
				Usage: "PostgreSQL connection string to store in the configuration",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := "."
			if path := cmd.String("dir"); path != "" {
				dir = path
			}

			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return err
			}

			options := project.InitOptions{
				DSN: cmd.String("dsn"),
			}

			return project.New(dir).Initialize(options)
		},
	}
}
