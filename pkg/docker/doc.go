// Package docker provides Docker integration for running temporary PostgreSQL
// instances for partition maintenance testing and schema validation workflows.
//
// The package stands up a throwaway PostgreSQL container with a known database,
// user, and password, and hands back a lib/pq-compatible DSN. It exists so that
// integration tests (and ad-hoc experiments) can exercise real partitioned DDL
// against a server instead of a recording stub.
//
// # Usage Example
//
//	import (
//		"context"
//		"github.com/pgcarve/pgcarve/pkg/docker"
//		"github.com/pgcarve/pgcarve/pkg/postgres"
//	)
//
//	// Create and configure PostgreSQL container
//	container := docker.NewWithOptions(docker.DockerOptions{
//		Version:  "17",
//		Database: "pgcarve_test",
//	})
//
//	ctx := context.Background()
//	defer container.Stop(ctx)
//
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	// Get connection details
//	dsn, _ := container.GetDSN()
//
//	// Connect using the postgres client
//	client, _ := postgres.Open(ctx, dsn)
//	defer client.Close()
//
// Containers are created with dynamic host ports, so parallel test runs do
// not collide.
package docker
