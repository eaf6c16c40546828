// Package cmd provides CLI commands for the pgcarve tool.
//
// This package implements the command-line interface for pgcarve, providing
// commands for project management and partition maintenance against
// PostgreSQL. It supports both standalone operations and project-based
// workflows driven by a pgcarve.yaml configuration file.
//
// # Available Commands
//
// The cmd package currently provides:
//   - init: Initialize a new pgcarve project structure
//   - status: Show what partition maintenance would do, without executing
//   - apply: Create missing partitions and drop expired ones
//
// # Command Structure
//
// Each command is implemented as a separate function that returns a
// *cli.Command, following the urfave/cli/v3 pattern. Commands are designed
// to be composable and testable, with proper error handling and help text.
//
// # Global Options
//
// All commands support global flags:
//   - --dir, -d: Specify project directory (defaults to current directory)
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	pgcarve init                                       # Initialize project
//	pgcarve status                                     # Preview maintenance actions
//	pgcarve apply                                      # Reconcile partitions
//	pgcarve apply --dry-run                            # Same preview as status
//
// The PostgreSQL connection string comes from pgcarve.yaml, or from the
// PGCARVE_DSN environment variable when the config leaves it empty.
package cmd
