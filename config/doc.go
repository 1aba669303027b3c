// Package config handles the global rp5 configuration.
//
// Configuration is stored as YAML in ~/.rp5rc (or the file named by RP5_CONFIG)
// and holds extra JVM arguments and the Processing sketchbook path. Every key can
// be overridden from the environment with an RP5_ prefix.
package config
