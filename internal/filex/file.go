package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDirFor creates the parent directory of path with owner-only
// permissions. Bare file names, sqlite memory DSNs and URI DSNs are left
// alone.
func EnsureDirFor(path string) error {
	if path == "" || strings.HasPrefix(path, ":memory:") || strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return nil
}
