package runner

import (
	"path/filepath"
)

const (
	bareFlag  = "--bare"
	jrubyFlag = "--jruby"
)

// Options is the parsed command line of a single invocation.
type Options struct {
	Action string
	Path   string
	Args   []string
	// Bare asks create for a sketch without a class.
	Bare bool
	// JRuby selects the installed jruby instead of the bundled jar.
	JRuby bool
}

// ParseOptions strips --bare and --jruby wherever they appear, then reads the
// action, the sketch path and the pass-through arguments positionally. When no
// path is given it defaults to the base name of cwd with an .rb extension.
func ParseOptions(args []string, cwd string) Options {
	var opts Options
	positional := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case bareFlag:
			opts.Bare = true
		case jrubyFlag:
			opts.JRuby = true
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) > 0 {
		opts.Action = positional[0]
	}
	if len(positional) > 1 {
		opts.Path = positional[1]
	} else {
		opts.Path = filepath.Base(cwd) + ".rb"
	}
	opts.Args = []string{}
	if len(positional) > 2 {
		opts.Args = append(opts.Args, positional[2:]...)
	}
	return opts
}
