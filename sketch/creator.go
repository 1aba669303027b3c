// Package sketch scaffolds new Ruby-Processing sketches.
package sketch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"unicode"
)

const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// ErrSketchExists is returned when Create would overwrite a file.
var ErrSketchExists = errors.New("that sketch already exists")

var bareTemplate = template.Must(template.New("bare").Parse(`def setup
  size {{.Width}}, {{.Height}}
end

def draw

end
`))

var classTemplate = template.Must(template.New("class").Parse(`require 'ruby-processing'

class {{.ClassName}} < Processing::App

  def setup

  end

  def draw

  end

end

{{.ClassName}}.new :title => "{{.Title}}", :width => {{.Width}}, :height => {{.Height}}
`))

type templateData struct {
	ClassName string
	Title     string
	Width     int
	Height    int
}

// Creator writes sketch boilerplate to disk.
type Creator struct{}

// Create writes a new sketch at path. args may hold the width and height.
// When bare is set the sketch is top-level setup/draw methods instead of a
// Processing::App subclass. It returns the path of the written file.
func (Creator) Create(path string, args []string, bare bool) (string, error) {
	width, height, err := dimensions(args)
	if err != nil {
		return "", err
	}

	file := strings.TrimSuffix(path, filepath.Ext(path)) + ".rb"
	if _, err := os.Stat(file); err == nil {
		return "", fmt.Errorf("%w: %s", ErrSketchExists, file)
	}

	base := filepath.Base(strings.TrimSuffix(file, ".rb"))
	data := templateData{
		ClassName: ClassName(base),
		Title:     Title(base),
		Width:     width,
		Height:    height,
	}
	tmpl := classTemplate
	if bare {
		tmpl = bareTemplate
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render sketch: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return "", fmt.Errorf("failed to create sketch directory: %w", err)
	}
	if err := os.WriteFile(file, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write sketch: %w", err)
	}
	return file, nil
}

func dimensions(args []string) (int, int, error) {
	width, height := DefaultWidth, DefaultHeight
	var err error
	if len(args) > 0 {
		if width, err = parseDimension("width", args[0]); err != nil {
			return 0, 0, err
		}
	}
	if len(args) > 1 {
		if height, err = parseDimension("height", args[1]); err != nil {
			return 0, 0, err
		}
	}
	return width, height, nil
}

func parseDimension(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, value)
	}
	return n, nil
}

func words(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
}

func capitalize(word string) string {
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ClassName camel-cases a file base name: "my_sketch" becomes "MySketch".
func ClassName(name string) string {
	var b strings.Builder
	for _, w := range words(name) {
		b.WriteString(capitalize(w))
	}
	if b.Len() == 0 {
		return "Sketch"
	}
	return b.String()
}

// Title turns a file base name into a window title: "my_sketch" becomes "My Sketch".
func Title(name string) string {
	ws := words(name)
	for i, w := range ws {
		ws[i] = capitalize(w)
	}
	return strings.Join(ws, " ")
}
