package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/ruby-processing/rp5/fsutil"
	"github.com/ruby-processing/rp5/log"
)

var launcherTemplate = template.Must(template.New("launcher").Parse(`#!/bin/sh
APPDIR=$(cd "$(dirname "$0")" && pwd)
cd "$APPDIR"
exec java {{.JavaArgs}}-cp lib/core/{{.Jar}} {{.Main}} {{.Runner}} sketch/{{.File}} "$@"
`))

// ApplicationExporter builds application.<name>/ next to the sketch: the
// bundled lib tree, the sketch with its data, and a shell launcher.
type ApplicationExporter struct {
	// Root is the bundled rp5 root holding lib/.
	Root string
	// JavaArgs are baked into the launcher script.
	JavaArgs []string
}

func (e ApplicationExporter) Export(sketchPath string) (string, error) {
	info, err := inspect(sketchPath)
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(info.Dir, "application."+info.Name)
	if err := os.RemoveAll(appDir); err != nil {
		return "", fmt.Errorf("failed to clear %s: %w", appDir, err)
	}
	if err := fsutil.CopyDir(filepath.Join(e.Root, "lib"), filepath.Join(appDir, "lib")); err != nil {
		return "", fmt.Errorf("failed to copy runtime: %w", err)
	}
	if err := copySketch(info, filepath.Join(appDir, "sketch")); err != nil {
		return "", err
	}

	var javaArgs strings.Builder
	for _, arg := range e.JavaArgs {
		javaArgs.WriteString(shellQuote(arg))
		javaArgs.WriteByte(' ')
	}
	var buf bytes.Buffer
	err = launcherTemplate.Execute(&buf, map[string]string{
		"JavaArgs": javaArgs.String(),
		"Jar":      jrubyJar,
		"Main":     jrubyMain,
		"Runner":   runnerPath,
		"File":     shellQuote(info.File),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render launcher: %w", err)
	}
	launcher := filepath.Join(appDir, info.Name)
	if err := os.WriteFile(launcher, buf.Bytes(), 0755); err != nil {
		return "", fmt.Errorf("failed to write launcher: %w", err)
	}

	log.InfoLog.Printf("exported application %s", appDir)
	return appDir, nil
}
