package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ruby-processing/rp5/config"
	"github.com/ruby-processing/rp5/log"
	"github.com/ruby-processing/rp5/runner"
	"github.com/spf13/cobra"
)

var version = "1.0.9"

// newRootCmd builds the rp5 command. Flag parsing is left to the runner so
// --bare/--jruby may appear anywhere and sketch arguments pass through untouched.
func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "rp5 [run | watch | live | create [width height] | app | applet | unpack] path/to/sketch",
		Short:              "Ruby-Processing: run Processing sketches written in Ruby",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			root, err := runner.ResolveRoot()
			if err != nil {
				return err
			}
			log.DebugLog.Printf("rp5 %s, root %s", version, root)

			r := runner.New(root, version, config.LoadConfig())
			r.Out = cmd.OutOrStdout()
			r.Err = cmd.ErrOrStderr()
			return r.Run(args)
		},
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes rp5 with args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return exitCode(cmd.Execute(), stdout, stderr)
}

// exitCode reports err the way the user expects: an ExitError prints its
// message on stdout and keeps its status, anything else goes to stderr as 1.
func exitCode(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(stdout, exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintln(stderr, err)
	return 1
}
