package repo_test

import (
	"os"
	"testing"

	"github.com/DKS2424/Travel/testutil"
)

// TestMain migrates the integration database (when configured) before any
// test in the package runs.
func TestMain(m *testing.M) {
	testutil.MigrateForMain()
	os.Exit(m.Run())
}
