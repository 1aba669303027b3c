package runner

import (
	"fmt"
	"path/filepath"

	"github.com/ruby-processing/rp5/fsutil"
	"github.com/ruby-processing/rp5/log"
)

const unpackUsage = "Usage: rp5 unpack [samples | library]"

// Unpackable lists the bundled directories unpack accepts.
var Unpackable = []string{"samples", "library"}

// Unpack copies the bundled samples or library directory into the working
// directory. An existing ./samples or ./library is merged into: bundled files
// overwrite their copies, other files stay. Any other name prints the usage and
// copies nothing.
func (r *Runner) Unpack(dir string) error {
	if !isUnpackable(dir) {
		fmt.Fprintln(r.Out, unpackUsage)
		return nil
	}
	cwd, err := r.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	src := filepath.Join(r.Root, dir)
	dst := filepath.Join(cwd, dir)
	if err := fsutil.CopyDir(src, dst); err != nil {
		return fmt.Errorf("failed to unpack %s: %w", dir, err)
	}
	log.InfoLog.Printf("unpacked %s to %s", src, dst)
	return nil
}

func isUnpackable(dir string) bool {
	for _, name := range Unpackable {
		if dir == name {
			return true
		}
	}
	return false
}
