// Package runner implements the rp5 actions: it parses the command line,
// dispatches to run/watch/live/create/app/applet/unpack, and hands the process
// over to Java or JRuby for the sketch-running actions.
package runner
