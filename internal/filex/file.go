// Package filex contains filesystem helpers for locating the client's
// local state.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the directory created under the user config dir.
const AppDirName = "ozo"

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

// DataDir returns the per-user directory holding local client state,
// e.g. ~/.config/ozo on Linux. It does not create it.
func DataDir() (string, error) {
	base, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// EnsureParentDir creates the directory that will contain path with
// owner-only permissions. It is idempotent.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
