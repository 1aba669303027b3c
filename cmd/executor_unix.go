//go:build !windows

package cmd

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func replace(path string, argv []string, env []string) error {
	if err := unix.Exec(path, argv, env); err != nil {
		return fmt.Errorf("failed to exec %s: %w", path, err)
	}
	return nil
}
