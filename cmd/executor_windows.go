//go:build windows

package cmd

import (
	"fmt"
	"os"
	"os/exec"
)

// replace emulates execve: the child inherits stdio, and its failure comes back
// as *exec.ExitError so the caller can exit with the same status.
func replace(path string, argv []string, env []string) error {
	c := exec.Command(path, argv[1:]...)
	c.Env = env
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return err
		}
		return fmt.Errorf("failed to run %s: %w", path, err)
	}
	return nil
}
