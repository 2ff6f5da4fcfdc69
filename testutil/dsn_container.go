//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// ResolveDSN returns TEST_DATABASE_URL when it is set. Otherwise it starts a
// throwaway Postgres container, exports its URL as TEST_DATABASE_URL so the
// per-test helpers find it, and returns a cleanup that terminates it.
func ResolveDSN(ctx context.Context) (string, func(), error) {
	if dsn := os.Getenv(DSNEnv); dsn != "" {
		return dsn, func() {}, nil
	}

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("travelagency"),
		tcpostgres.WithUsername("travelagency"),
		tcpostgres.WithPassword("travelagency"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", nil, fmt.Errorf("testutil.ResolveDSN: start postgres: %w", err)
	}
	cleanup := func() { _ = testcontainers.TerminateContainer(container) }

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("testutil.ResolveDSN: connection string: %w", err)
	}

	if err := os.Setenv(DSNEnv, dsn); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("testutil.ResolveDSN: export dsn: %w", err)
	}
	return dsn, cleanup, nil
}
