//go:build integration

package app

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/storefront-service/internal/testutil"
)

// TestMain shares one MongoDB container across the app integration tests.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}
