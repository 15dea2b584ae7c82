package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const postgresImage = "postgres:16-alpine"

var (
	pgOnce      sync.Once
	pgDSN       string
	pgErr       error
	pgContainer tc.Container
)

// DatabaseURL returns the Postgres DSN integration tests should run against.
//
// TEST_DATABASE_URL wins when set. Otherwise, when DOCKER_AVAILABLE is "true"
// or "1", a disposable Postgres container is started on first use and shared
// by every test in the binary. An empty DSN with a nil error means no
// database is available and integration tests should skip.
func DatabaseURL() (string, error) {
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		return dsn, nil
	}
	if v := os.Getenv("DOCKER_AVAILABLE"); v != "true" && v != "1" {
		return "", nil
	}
	pgOnce.Do(func() {
		pgDSN, pgErr = startPostgres(context.Background())
	})
	return pgDSN, pgErr
}

// TerminatePostgres stops the container started by DatabaseURL, if any.
// Call it from TestMain after m.Run.
func TerminatePostgres() {
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
}

func startPostgres(ctx context.Context) (string, error) {
	req := tc.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "trips",
			"POSTGRES_PASSWORD": "trips",
			"POSTGRES_DB":       "trips",
		},
		// The entrypoint restarts the server once after initdb, so the
		// ready line is logged twice.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		return "", fmt.Errorf("testutil.startPostgres: start container: %w", err)
	}
	pgContainer = cont

	host, err := cont.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("testutil.startPostgres: host: %w", err)
	}
	port, err := cont.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("testutil.startPostgres: mapped port: %w", err)
	}
	return fmt.Sprintf("postgres://trips:trips@%s:%s/trips?sslmode=disable", host, port.Port()), nil
}
