//go:build !integration

package testutil

import (
	"context"
	"os"
)

// ResolveDSN returns the test database URL from TEST_DATABASE_URL.
// Without the integration build tag no container is started; an empty DSN
// means integration tests skip.
func ResolveDSN(context.Context) (string, func(), error) {
	return os.Getenv(DSNEnv), func() {}, nil
}
