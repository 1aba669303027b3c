package runner

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnv names the environment variable pointing at the bundled rp5 root.
const RootEnv = "RP5_ROOT"

// ResolveRoot locates the bundled root holding lib/, samples/ and library/.
// RP5_ROOT wins; otherwise it is the parent of the directory holding the
// executable, with symlinks resolved so a linked bin/rp5 still works.
func ResolveRoot() (string, error) {
	if root := os.Getenv(RootEnv); root != "" {
		return filepath.Abs(root)
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}
