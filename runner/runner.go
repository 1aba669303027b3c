package runner

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/ruby-processing/rp5/cmd"
	"github.com/ruby-processing/rp5/config"
	"github.com/ruby-processing/rp5/export"
	"github.com/ruby-processing/rp5/log"
	"github.com/ruby-processing/rp5/sketch"
	"golang.org/x/term"
)

// SketchCreator scaffolds a new sketch and returns the written file.
type SketchCreator interface {
	Create(path string, args []string, bare bool) (string, error)
}

// Runner dispatches rp5 actions. New wires the real process and filesystem
// hooks; tests swap them out.
type Runner struct {
	Root    string
	Version string
	Config  *config.Config

	Out io.Writer
	Err io.Writer

	Executor cmd.Executor
	Creator  SketchCreator
	// AppExporter and AppletExporter override the default exporters.
	AppExporter    export.Exporter
	AppletExporter export.Exporter

	// GOOS decides whether the macOS dock arguments are added.
	GOOS       string
	Getwd      func() (string, error)
	IsTerminal func() bool

	opts Options
}

// New returns a Runner wired to the real process, filesystem and terminal.
func New(root, version string, cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Runner{
		Root:     root,
		Version:  version,
		Config:   cfg,
		Out:      os.Stdout,
		Err:      os.Stderr,
		Executor: cmd.MakeExecutor(),
		Creator:  sketch.Creator{},
		GOOS:     runtime.GOOS,
		Getwd:    os.Getwd,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Run parses args and executes the resulting action.
func (r *Runner) Run(args []string) error {
	cwd, err := r.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	return r.Execute(ParseOptions(args, cwd))
}

// Execute is the dispatch table. Anything unrecognized shows the help.
func (r *Runner) Execute(opts Options) error {
	r.opts = opts
	log.DebugLog.Printf("action=%q path=%q args=%v bare=%t jruby=%t",
		opts.Action, opts.Path, opts.Args, opts.Bare, opts.JRuby)

	switch {
	case opts.Action == "run":
		return r.RunSketch(opts.Path, opts.Args)
	case opts.Action == "watch":
		return r.Watch(opts.Path, opts.Args)
	case opts.Action == "live":
		return r.Live(opts.Path, opts.Args)
	case opts.Action == "create":
		return r.Create(opts.Path, opts.Args, opts.Bare)
	case opts.Action == "app":
		return r.App(opts.Path)
	case opts.Action == "applet":
		return r.Applet(opts.Path)
	case opts.Action == "unpack":
		return r.Unpack(opts.Path)
	case strings.Contains(opts.Action, "-v"):
		return r.ShowVersion()
	case strings.Contains(opts.Action, "-h"):
		return r.ShowHelp()
	default:
		return r.ShowHelp()
	}
}

// RunSketch runs a sketch once.
func (r *Runner) RunSketch(sketchPath string, args []string) error {
	return r.spinUp("run.rb", sketchPath, args)
}

// Watch runs a sketch and relaunches it whenever its file changes.
func (r *Runner) Watch(sketchPath string, args []string) error {
	return r.spinUp("watch.rb", sketchPath, args)
}

// Live runs a sketch with an interactive IRB shell attached.
func (r *Runner) Live(sketchPath string, args []string) error {
	if r.IsTerminal != nil && !r.IsTerminal() {
		log.WarningLog.Printf("live mode started without a terminal on stdin")
		fmt.Fprintln(r.Err, "Warning: live mode expects an interactive terminal")
	}
	return r.spinUp("live.rb", sketchPath, args)
}

// Create writes a fresh sketch with the boilerplate filled out.
func (r *Runner) Create(sketchPath string, args []string, bare bool) error {
	file, err := r.Creator.Create(sketchPath, args, bare)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "Created %s\n", file)
	return nil
}

// App exports a cross-platform application of the sketch.
func (r *Runner) App(sketchPath string) error {
	if err := r.ensureExists(sketchPath); err != nil {
		return err
	}
	exporter := r.AppExporter
	if exporter == nil {
		javaArgs, err := r.discoverExtraArgs(sketchPath)
		if err != nil {
			return err
		}
		exporter = export.ApplicationExporter{Root: r.Root, JavaArgs: javaArgs}
	}
	return r.export(exporter, sketchPath)
}

// Applet exports an applet and HTML page for the sketch.
func (r *Runner) Applet(sketchPath string) error {
	if err := r.ensureExists(sketchPath); err != nil {
		return err
	}
	exporter := r.AppletExporter
	if exporter == nil {
		exporter = export.AppletExporter{Root: r.Root}
	}
	return r.export(exporter, sketchPath)
}

func (r *Runner) export(exporter export.Exporter, sketchPath string) error {
	dir, err := exporter.Export(sketchPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "Exported %s\n", dir)
	return nil
}

// ShowVersion prints the current version.
func (r *Runner) ShowVersion() error {
	fmt.Fprintf(r.Out, "Ruby-Processing version %s\n", r.Version)
	return nil
}

// ShowHelp prints the usage message.
func (r *Runner) ShowHelp() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		configPath = "~/" + config.ConfigFileName
	}
	_, err = io.WriteString(r.Out, renderHelp(r.Out, r.Version, configPath))
	return err
}
