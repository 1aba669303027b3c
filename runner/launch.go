package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ruby-processing/rp5/cmd"
	"github.com/ruby-processing/rp5/log"
)

const (
	jrubyMain = "org.jruby.Main"
	dockName  = "-Xdock:name=Ruby-Processing"
)

// JavaArgsFile is the sidecar read from the sketch's data directory.
const JavaArgsFile = "java_args.txt"

func (r *Runner) runnerScript(script string) string {
	return filepath.Join(r.Root, "lib", "ruby-processing", "runners", script)
}

func (r *Runner) jrubyComplete() string {
	return filepath.Join(r.Root, "lib", "core", "jruby-complete.jar")
}

func (r *Runner) dockIcon() []string {
	if r.GOOS != "darwin" {
		return nil
	}
	icon := filepath.Join(r.Root, "lib", "templates", "application", "Contents", "Resources", "sketch.icns")
	return []string{dockName, "-Xdock:icon=" + icon}
}

// discoverExtraArgs returns the sidecar arguments when the sidecar exists,
// otherwise the configured java_args.
func (r *Runner) discoverExtraArgs(sketchPath string) ([]string, error) {
	argFile := filepath.Join(filepath.Dir(sketchPath), "data", JavaArgsFile)
	data, err := os.ReadFile(argFile)
	switch {
	case err == nil:
		log.DebugLog.Printf("using java args from %s", argFile)
		return strings.Fields(string(data)), nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read %s: %w", argFile, err)
	}
	if r.Config != nil && r.Config.JavaArgs != "" {
		return strings.Fields(r.Config.JavaArgs), nil
	}
	return nil, nil
}

// DiscoverJavaArgs collects the JVM arguments for a sketch: the macOS dock
// arguments first, then either the sidecar data/java_args.txt or the configured
// java_args. With jruby set every argument gets the -J prefix jruby expects.
func (r *Runner) DiscoverJavaArgs(sketchPath string, jruby bool) ([]string, error) {
	args := r.dockIcon()
	extra, err := r.discoverExtraArgs(sketchPath)
	if err != nil {
		return nil, err
	}
	args = append(args, extra...)
	if jruby {
		for i, arg := range args {
			args[i] = "-J" + arg
		}
	}
	return args, nil
}

// Command builds the argument vector that starts script for sketchPath.
func (r *Runner) Command(script, sketchPath string, args []string, jruby bool) ([]string, error) {
	javaArgs, err := r.DiscoverJavaArgs(sketchPath, jruby)
	if err != nil {
		return nil, err
	}
	var argv []string
	if jruby {
		argv = append([]string{"jruby"}, javaArgs...)
	} else {
		argv = append([]string{"java"}, javaArgs...)
		argv = append(argv, "-cp", r.jrubyComplete(), jrubyMain)
	}
	argv = append(argv, r.runnerScript(script), sketchPath)
	return append(argv, args...), nil
}

func (r *Runner) ensureExists(sketchPath string) error {
	if _, err := os.Stat(sketchPath); err != nil {
		log.ErrorLog.Printf("sketch %s: %v", sketchPath, err)
		return &ExitError{Code: 1, Message: "Couldn't find: " + sketchPath}
	}
	return nil
}

// spinUp trades this process for a Java or JRuby one running script with the
// sketch. It only returns when the hand-over fails, or once the child exits on
// platforms without process replacement.
func (r *Runner) spinUp(script, sketchPath string, args []string) error {
	if err := r.ensureExists(sketchPath); err != nil {
		return err
	}
	argv, err := r.Command(script, sketchPath, args, r.opts.JRuby)
	if err != nil {
		return err
	}

	log.InfoLog.Printf("launching %s", cmd.ToString(argv))
	err = r.Executor.Exec(argv)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode()}
	}
	if err != nil {
		return fmt.Errorf("failed to launch sketch: %w", err)
	}
	return nil
}
