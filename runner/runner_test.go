package runner

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ruby-processing/rp5/config"
	"github.com/ruby-processing/rp5/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before all tests to set up the test environment
func TestMain(m *testing.M) {
	log.Initialize()
	exitCode := m.Run()
	log.Close()
	os.Exit(exitCode)
}

type recordingExecutor struct {
	calls [][]string
	err   error
}

func (e *recordingExecutor) Exec(argv []string) error {
	e.calls = append(e.calls, argv)
	return e.err
}

type recordingExporter struct {
	exported []string
}

func (e *recordingExporter) Export(sketchPath string) (string, error) {
	e.exported = append(e.exported, sketchPath)
	return filepath.Join(filepath.Dir(sketchPath), "out"), nil
}

type testEnv struct {
	runner   *Runner
	executor *recordingExecutor
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	root     string
	cwd      string
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(config.ConfigPathEnv, filepath.Join(t.TempDir(), config.ConfigFileName))

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "core", "jruby-complete.jar"), "jar")
	for _, script := range []string{"run.rb", "watch.rb", "live.rb"} {
		writeFile(t, filepath.Join(root, "lib", "ruby-processing", "runners", script), "")
	}
	writeFile(t, filepath.Join(root, "samples", "jwishy.rb"), "wishy")
	writeFile(t, filepath.Join(root, "samples", "data", "java_args.txt"), "-Xmx128m")
	writeFile(t, filepath.Join(root, "library", "opengl", "opengl.rb"), "gl")

	cwd := t.TempDir()
	executor := &recordingExecutor{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	r := New(root, "1.0.9", &config.Config{})
	r.Out = out
	r.Err = errOut
	r.Executor = executor
	r.GOOS = "linux"
	r.Getwd = func() (string, error) { return cwd, nil }
	r.IsTerminal = func() bool { return true }

	return &testEnv{runner: r, executor: executor, out: out, errOut: errOut, root: root, cwd: cwd}
}

func (e *testEnv) sketch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.cwd, name)
	writeFile(t, path, "def draw; end\n")
	return path
}

func TestExecuteShowsHelp(t *testing.T) {
	for _, args := range [][]string{nil, {"bogus"}, {"-h"}, {"--help"}, {"help"}} {
		env := newTestEnv(t)

		require.NoError(t, env.runner.Run(args), "args %v", args)

		assert.Contains(t, env.out.String(), "Ruby-Processing is a little shim", "args %v", args)
		assert.Contains(t, env.out.String(), "rp5 unpack samples")
		assert.Empty(t, env.executor.calls, "help must not launch")
	}
}

func TestExecuteShowsVersion(t *testing.T) {
	for _, args := range [][]string{{"-v"}, {"--version"}} {
		env := newTestEnv(t)

		require.NoError(t, env.runner.Run(args))

		assert.Equal(t, "Ruby-Processing version 1.0.9\n", env.out.String())
		assert.Empty(t, env.executor.calls, "version must not launch")
	}
}

func TestHelpMentionsConfigPath(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv(config.ConfigPathEnv, "/etc/rp5/custom.yml")

	require.NoError(t, env.runner.ShowHelp())

	assert.Contains(t, env.out.String(), "A YAML configuration file is located at /etc/rp5/custom.yml")
	assert.Contains(t, env.out.String(), "Version: 1.0.9")
}

func TestLaunchActions(t *testing.T) {
	for action, script := range map[string]string{"run": "run.rb", "watch": "watch.rb", "live": "live.rb"} {
		t.Run(action, func(t *testing.T) {
			env := newTestEnv(t)
			sketchPath := env.sketch(t, "wishy.rb")

			require.NoError(t, env.runner.Run([]string{action, sketchPath, "extra", "args"}))

			require.Len(t, env.executor.calls, 1)
			assert.Equal(t, []string{
				"java",
				"-cp", filepath.Join(env.root, "lib", "core", "jruby-complete.jar"),
				"org.jruby.Main",
				filepath.Join(env.root, "lib", "ruby-processing", "runners", script),
				sketchPath, "extra", "args",
			}, env.executor.calls[0])
		})
	}
}

func TestLaunchMissingSketch(t *testing.T) {
	for _, action := range []string{"run", "watch", "live"} {
		env := newTestEnv(t)
		missing := filepath.Join(env.cwd, "missing.rb")

		err := env.runner.Run([]string{action, missing})

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr), "action %s", action)
		assert.Equal(t, 1, exitErr.Code)
		assert.Equal(t, "Couldn't find: "+missing, exitErr.Message)
		assert.Empty(t, env.executor.calls)
	}
}

func TestLaunchDefaultsToDirectorySketch(t *testing.T) {
	env := newTestEnv(t)
	r := env.runner
	r.Getwd = func() (string, error) { return filepath.Join(env.cwd, "wishy"), nil }

	err := r.Run([]string{"run"})

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "Couldn't find: wishy.rb", exitErr.Message)
}

func TestLaunchWithJRuby(t *testing.T) {
	env := newTestEnv(t)
	env.runner.Config.JavaArgs = "-Xms256m -Xmx256m"
	sketchPath := env.sketch(t, "wishy.rb")

	require.NoError(t, env.runner.Run([]string{"--jruby", "run", sketchPath}))

	require.Len(t, env.executor.calls, 1)
	assert.Equal(t, []string{
		"jruby", "-J-Xms256m", "-J-Xmx256m",
		filepath.Join(env.root, "lib", "ruby-processing", "runners", "run.rb"),
		sketchPath,
	}, env.executor.calls[0])
}

func TestDiscoverJavaArgs(t *testing.T) {
	t.Run("config value when no sidecar", func(t *testing.T) {
		env := newTestEnv(t)
		env.runner.Config.JavaArgs = "  -Xmx1g\t-d32 "
		sketchPath := env.sketch(t, "wishy.rb")

		args, err := env.runner.DiscoverJavaArgs(sketchPath, false)

		require.NoError(t, err)
		assert.Equal(t, []string{"-Xmx1g", "-d32"}, args)
	})

	t.Run("sidecar beats config", func(t *testing.T) {
		env := newTestEnv(t)
		env.runner.Config.JavaArgs = "-Xmx1g"
		sketchPath := env.sketch(t, "wishy.rb")
		writeFile(t, filepath.Join(env.cwd, "data", JavaArgsFile), "-Xms64m\n-Xmx64m\n")

		args, err := env.runner.DiscoverJavaArgs(sketchPath, false)

		require.NoError(t, err)
		assert.Equal(t, []string{"-Xms64m", "-Xmx64m"}, args)
	})

	t.Run("nothing configured", func(t *testing.T) {
		env := newTestEnv(t)
		sketchPath := env.sketch(t, "wishy.rb")

		args, err := env.runner.DiscoverJavaArgs(sketchPath, true)

		require.NoError(t, err)
		assert.Empty(t, args)
	})

	t.Run("dock icon on darwin comes first", func(t *testing.T) {
		env := newTestEnv(t)
		env.runner.GOOS = "darwin"
		env.runner.Config.JavaArgs = "-Xmx1g"
		sketchPath := env.sketch(t, "wishy.rb")

		args, err := env.runner.DiscoverJavaArgs(sketchPath, true)

		require.NoError(t, err)
		icon := filepath.Join(env.root, "lib", "templates", "application", "Contents", "Resources", "sketch.icns")
		assert.Equal(t, []string{
			"-J-Xdock:name=Ruby-Processing",
			"-J-Xdock:icon=" + icon,
			"-J-Xmx1g",
		}, args)
	})
}

func TestLaunchPropagatesChildExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	env := newTestEnv(t)
	env.executor.err = exec.Command("sh", "-c", "exit 3").Run()
	sketchPath := env.sketch(t, "wishy.rb")

	err := env.runner.Run([]string{"run", sketchPath})

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
}

func TestLaunchFailure(t *testing.T) {
	env := newTestEnv(t)
	env.executor.err = errors.New("java not found")
	sketchPath := env.sketch(t, "wishy.rb")

	err := env.runner.Run([]string{"run", sketchPath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to launch sketch: java not found")
}

func TestLiveWarnsWithoutTerminal(t *testing.T) {
	env := newTestEnv(t)
	env.runner.IsTerminal = func() bool { return false }
	sketchPath := env.sketch(t, "wishy.rb")

	require.NoError(t, env.runner.Run([]string{"live", sketchPath}))

	assert.Contains(t, env.errOut.String(), "live mode expects an interactive terminal")
	assert.Len(t, env.executor.calls, 1)
}

func TestUnpack(t *testing.T) {
	t.Run("samples", func(t *testing.T) {
		env := newTestEnv(t)

		require.NoError(t, env.runner.Run([]string{"unpack", "samples"}))

		data, err := os.ReadFile(filepath.Join(env.cwd, "samples", "jwishy.rb"))
		require.NoError(t, err)
		assert.Equal(t, "wishy", string(data))
		assert.FileExists(t, filepath.Join(env.cwd, "samples", "data", "java_args.txt"))
		assert.NoDirExists(t, filepath.Join(env.cwd, "library"))
	})

	t.Run("library", func(t *testing.T) {
		env := newTestEnv(t)

		require.NoError(t, env.runner.Run([]string{"unpack", "library"}))

		assert.FileExists(t, filepath.Join(env.cwd, "library", "opengl", "opengl.rb"))
	})

	t.Run("merges into an existing directory", func(t *testing.T) {
		env := newTestEnv(t)
		writeFile(t, filepath.Join(env.cwd, "samples", "mine.rb"), "mine")
		writeFile(t, filepath.Join(env.cwd, "samples", "jwishy.rb"), "edited")

		require.NoError(t, env.runner.Run([]string{"unpack", "samples"}))

		data, err := os.ReadFile(filepath.Join(env.cwd, "samples", "mine.rb"))
		require.NoError(t, err)
		assert.Equal(t, "mine", string(data))
		data, err = os.ReadFile(filepath.Join(env.cwd, "samples", "jwishy.rb"))
		require.NoError(t, err)
		assert.Equal(t, "wishy", string(data), "bundled files win")
		assert.NoDirExists(t, filepath.Join(env.cwd, "samples", "samples"))
	})

	t.Run("anything else prints usage", func(t *testing.T) {
		for _, target := range []string{"lib", "samples/", "../samples", "Samples"} {
			env := newTestEnv(t)

			require.NoError(t, env.runner.Run([]string{"unpack", target}))

			assert.Equal(t, unpackUsage+"\n", env.out.String())
			entries, err := os.ReadDir(env.cwd)
			require.NoError(t, err)
			assert.Empty(t, entries, "target %q must not copy", target)
		}
	})
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.cwd, "some_new_sketch")

	require.NoError(t, env.runner.Run([]string{"create", path, "--bare", "640", "480"}))

	data, err := os.ReadFile(path + ".rb")
	require.NoError(t, err)
	assert.Contains(t, string(data), "size 640, 480")
	assert.Equal(t, "Created "+path+".rb\n", env.out.String())
	assert.Empty(t, env.executor.calls)
}

func TestExportActions(t *testing.T) {
	env := newTestEnv(t)
	app := &recordingExporter{}
	applet := &recordingExporter{}
	env.runner.AppExporter = app
	env.runner.AppletExporter = applet

	wishy := env.sketch(t, "wishy.rb")
	other := env.sketch(t, "other.rb")

	require.NoError(t, env.runner.Run([]string{"app", wishy}))
	require.NoError(t, env.runner.Run([]string{"applet", other}))

	assert.Equal(t, []string{wishy}, app.exported)
	assert.Equal(t, []string{other}, applet.exported)
	assert.Contains(t, env.out.String(), "Exported "+filepath.Join(env.cwd, "out")+"\n")
	assert.Empty(t, env.executor.calls)
}

func TestExportMissingSketch(t *testing.T) {
	for _, action := range []string{"app", "applet"} {
		env := newTestEnv(t)
		exporter := &recordingExporter{}
		env.runner.AppExporter = exporter
		env.runner.AppletExporter = exporter
		missing := filepath.Join(env.cwd, "nope.rb")

		err := env.runner.Run([]string{action, missing})

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr), "action %s", action)
		assert.Equal(t, 1, exitErr.Code)
		assert.Equal(t, "Couldn't find: "+missing, exitErr.Message)
		assert.Empty(t, exporter.exported)
	}
}

func TestDefaultAppExporterUsesSidecarArgs(t *testing.T) {
	env := newTestEnv(t)
	sketchPath := env.sketch(t, "wishy.rb")
	writeFile(t, filepath.Join(env.cwd, "data", JavaArgsFile), "-Xmx512m")

	require.NoError(t, env.runner.Run([]string{"app", sketchPath}))

	launcher, err := os.ReadFile(filepath.Join(env.cwd, "application.wishy", "wishy"))
	require.NoError(t, err)
	assert.Contains(t, string(launcher), "exec java -Xmx512m -cp")
}

func TestExitError(t *testing.T) {
	assert.Equal(t, "boom", (&ExitError{Code: 2, Message: "boom"}).Error())
	assert.Equal(t, "exit status 4", (&ExitError{Code: 4}).Error())
}
