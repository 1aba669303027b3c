// Package export packages a sketch as a standalone application or applet.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ruby-processing/rp5/fsutil"
	"github.com/ruby-processing/rp5/sketch"
)

// Exporter packages a sketch file.
type Exporter interface {
	// Export writes the package next to the sketch and returns its directory.
	Export(sketchPath string) (string, error)
}

const (
	jrubyJar   = "jruby-complete.jar"
	jrubyMain  = "org.jruby.Main"
	runnerPath = "lib/ruby-processing/runners/run.rb"
)

var (
	sizeCall    = regexp.MustCompile(`\bsize\s*\(?\s*(\d+)\s*,\s*(\d+)`)
	widthParam  = regexp.MustCompile(`:width\s*=>\s*(\d+)`)
	heightParam = regexp.MustCompile(`:height\s*=>\s*(\d+)`)
)

// sketchInfo is what the exporters need to know about a sketch file.
type sketchInfo struct {
	Path   string
	Dir    string
	File   string
	Name   string
	Title  string
	Width  int
	Height int
}

func inspect(sketchPath string) (*sketchInfo, error) {
	source, err := os.ReadFile(sketchPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("couldn't find: %s", sketchPath)
		}
		return nil, fmt.Errorf("failed to read sketch: %w", err)
	}

	file := filepath.Base(sketchPath)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	info := &sketchInfo{
		Path:   sketchPath,
		Dir:    filepath.Dir(sketchPath),
		File:   file,
		Name:   name,
		Title:  sketch.Title(name),
		Width:  sketch.DefaultWidth,
		Height: sketch.DefaultHeight,
	}

	if m := sizeCall.FindSubmatch(source); m != nil {
		info.Width, _ = strconv.Atoi(string(m[1]))
		info.Height, _ = strconv.Atoi(string(m[2]))
	} else {
		if m := widthParam.FindSubmatch(source); m != nil {
			info.Width, _ = strconv.Atoi(string(m[1]))
		}
		if m := heightParam.FindSubmatch(source); m != nil {
			info.Height, _ = strconv.Atoi(string(m[1]))
		}
	}
	return info, nil
}

// copySketch copies the sketch file and its data directory, if any, into dst.
func copySketch(info *sketchInfo, dst string) error {
	if err := fsutil.CopyFile(info.Path, filepath.Join(dst, info.File)); err != nil {
		return err
	}
	data := filepath.Join(info.Dir, "data")
	if fsutil.Exists(data) {
		if err := fsutil.CopyDir(data, filepath.Join(dst, "data")); err != nil {
			return fmt.Errorf("failed to copy data directory: %w", err)
		}
	}
	return nil
}

// shellQuote quotes s for a POSIX shell when it holds anything beyond plain flag characters.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r == '-' || r == '_' || r == '.' || r == '/' || r == ':' || r == '=' || r == ',' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
