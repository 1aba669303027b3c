package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor replaces the current process with argv. On success Exec does not
// return on platforms that support process replacement.
type Executor interface {
	Exec(argv []string) error
}

// ProcessExecutor is the platform Executor. The new process inherits the
// current environment.
type ProcessExecutor struct{}

// MakeExecutor returns the Executor for the current platform.
func MakeExecutor() Executor {
	return ProcessExecutor{}
}

// Exec resolves argv[0] in PATH and replaces the current process with it. It
// returns only on failure, or on Windows once the child has exited.
func (ProcessExecutor) Exec(argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("%s not found: %w", argv[0], err)
	}
	return replace(path, argv, os.Environ())
}

// ToString renders argv for logs.
func ToString(argv []string) string {
	return strings.Join(argv, " ")
}
