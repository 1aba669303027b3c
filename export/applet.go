package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/ruby-processing/rp5/fsutil"
	"github.com/ruby-processing/rp5/log"
)

var pageTemplate = template.Must(template.New("applet").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>{{.Title}}</title>
  </head>
  <body>
    <h1>{{.Title}}</h1>
    <applet code="org.jruby.JRubyApplet" archive="{{.Jar}}" width="{{.Width}}" height="{{.Height}}">
      <param name="sketch" value="{{.File}}">
    </applet>
  </body>
</html>
`))

// AppletExporter builds applet/ next to the sketch: the sketch with its data,
// the JRuby jar, and an index.html page embedding it.
type AppletExporter struct {
	Root string
}

func (e AppletExporter) Export(sketchPath string) (string, error) {
	info, err := inspect(sketchPath)
	if err != nil {
		return "", err
	}

	appletDir := filepath.Join(info.Dir, "applet")
	if err := os.RemoveAll(appletDir); err != nil {
		return "", fmt.Errorf("failed to clear %s: %w", appletDir, err)
	}
	if err := copySketch(info, appletDir); err != nil {
		return "", err
	}
	jar := filepath.Join(e.Root, "lib", "core", jrubyJar)
	if err := fsutil.CopyFile(jar, filepath.Join(appletDir, jrubyJar)); err != nil {
		return "", fmt.Errorf("failed to copy runtime: %w", err)
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, map[string]interface{}{
		"Title":  info.Title,
		"File":   info.File,
		"Width":  info.Width,
		"Height": info.Height,
		"Jar":    jrubyJar,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	if err := os.WriteFile(filepath.Join(appletDir, "index.html"), buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write page: %w", err)
	}

	log.InfoLog.Printf("exported applet %s", appletDir)
	return appletDir, nil
}
