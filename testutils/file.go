package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

// WriteTempFile writes content to a file called name inside a fresh temporary directory and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.That(t, os.WriteFile(path, []byte(content), 0o600), test.ShouldBeNil)
	return path
}
