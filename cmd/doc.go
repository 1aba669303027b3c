// Package cmd provides an abstraction layer for handing the process over to an
// external command.
//
// It defines the Executor interface, which replaces the running program with
// another one, so callers can be tested with a recording fake instead of
// losing the test binary to execve.
package cmd
