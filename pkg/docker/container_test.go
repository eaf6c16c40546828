package docker_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/pgcarve/pgcarve/pkg/docker"
	"github.com/stretchr/testify/require"
)

// skipIfNoDocker skips the test if Docker is not available
func skipIfNoDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Docker tests in short mode")
	}

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	// Check if Docker daemon is running
	cmd := exec.Command("docker", "ps")
	if err := cmd.Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

func TestDockerContainer_StartStop(t *testing.T) {
	skipIfNoDocker(t)

	container := docker.NewWithOptions(docker.DockerOptions{
		Version:  "17",
		Database: "pgcarve_test",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	defer func() {
		_ = container.Stop(ctx)
	}()

	err := container.Start(ctx)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	require.True(t, container.IsRunning())

	// Verify DSN is available (testcontainers assigns dynamic ports)
	dsn, err := container.GetDSN()
	require.NoError(t, err)
	require.Contains(t, dsn, "pgcarve_test", "DSN should reference the configured database")
	require.Contains(t, dsn, "sslmode=disable")

	err = container.Stop(ctx)
	require.NoError(t, err, "Failed to stop PostgreSQL container")
	require.False(t, container.IsRunning())
}

func TestDockerContainer_StopNonExistent(t *testing.T) {
	container := docker.New()

	// Stop should not error if container doesn't exist
	err := container.Stop(context.Background())
	require.NoError(t, err)
}

func TestDockerContainer_DSNRequiresRunningContainer(t *testing.T) {
	container := docker.New()

	_, err := container.GetDSN()
	require.Error(t, err)
}
