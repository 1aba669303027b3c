package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logger is a leveled sink with the Printf shape the rest of the code base expects.
type Logger struct {
	entry *logrus.Entry
	level logrus.Level
}

// Printf logs the formatted message at the logger's level.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.entry.Logf(l.level, format, args...)
}

var (
	WarningLog *Logger
	InfoLog    *Logger
	ErrorLog   *Logger
	DebugLog   *Logger
)

var debugEnabled = os.Getenv("DEBUG") == "true" || os.Getenv("DEBUG") == "1"

var logFileName = filepath.Join(os.TempDir(), "rp5.log")

var globalLogFile *os.File

func init() {
	// Usable before Initialize, e.g. from package tests.
	setup(io.Discard)
}

// Initialize should be called once at the beginning of the program to set up logging.
// defer Close() after calling this function. Logs go to rp5.log in the os temp
// directory, or to stderr when that file cannot be opened.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		setup(os.Stderr)
		fmt.Fprintf(os.Stderr, "Warning: using stderr for logging: %v\n", err)
		return
	}
	setup(f)
	globalLogFile = f
}

func setup(w io.Writer) {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	if debugEnabled {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	entry := logrus.NewEntry(logger).WithField("pid", os.Getpid())

	InfoLog = &Logger{entry: entry, level: logrus.InfoLevel}
	WarningLog = &Logger{entry: entry, level: logrus.WarnLevel}
	ErrorLog = &Logger{entry: entry, level: logrus.ErrorLevel}
	DebugLog = &Logger{entry: entry, level: logrus.DebugLevel}
}

func Close() {
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	if debugEnabled {
		fmt.Fprintln(os.Stderr, "wrote logs to "+logFileName)
	}
}

// IsDebugEnabled returns true if debug logging is enabled.
func IsDebugEnabled() bool {
	return debugEnabled
}
