package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const rubyRed = lipgloss.Color("#CC342D")

const helpIntro = `
  Ruby-Processing is a little shim between Processing and JRuby that helps
  you create sketches of code art.
`

const helpUsage = `    rp5 [run | watch | live | create [width height] | app | applet | unpack] path/to/sketch

    run:        run sketch once
    watch:      watch for changes on the file and relaunch it on the fly
    live:       launch sketch and give an interactive IRB shell
    create:     create new sketch. Use --bare to generate simpler sketches without a class
    app:        create an application version of the sketch
    applet:     create an applet version of the sketch
    unpack:     unpack samples or library
`

const helpOptions = `    --jruby:    passed, use the installed version of jruby, instead of
                our vendored jarred one (useful for gems).
`

const helpConfigKeys = `    Possible options are:

      java_args:        pass additional arguments to Java VM upon launching.
                        Useful for increasing available memory (for example:
                        -Xms256m -Xmx256m) or force 32 bits mode (-d32).
                        A data/java_args.txt next to the sketch takes precedence.
      sketchbook_path:  specify Processing sketchbook path to load additional
                        libraries
`

const helpExamples = `    rp5 unpack samples
    rp5 run samples/jwishy.rb
    rp5 create some_new_sketch --bare 640 480
    rp5 watch some_new_sketch.rb
    rp5 applet some_new_sketch.rb
`

const helpMore = `    http://wiki.github.com/jashkenas/ruby-processing
`

// newRenderer styles for w, dropping colour when NO_COLOR is set or w is not a terminal.
func newRenderer(w io.Writer) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w)
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor || !isTerminalWriter(w) {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return renderer
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func renderHelp(w io.Writer, version, configPath string) string {
	renderer := newRenderer(w)
	heading := renderer.NewStyle().Bold(true).Foreground(rubyRed)
	section := func(title string) string {
		return "  " + heading.Render(title) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(section(fmt.Sprintf("Version: %s", version)))
	b.WriteString(helpIntro)
	b.WriteString("\n" + section("Usage:") + helpUsage)
	b.WriteString("\n" + section("Common options:") + helpOptions)
	b.WriteString("\n" + section("Configuration file:"))
	fmt.Fprintf(&b, "    A YAML configuration file is located at %s\n\n", configPath)
	b.WriteString(helpConfigKeys)
	b.WriteString("\n" + section("Examples:") + helpExamples)
	b.WriteString("\n" + section("Everything Else:") + helpMore)
	return b.String()
}
