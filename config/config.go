package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ruby-processing/rp5/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const ConfigFileName = ".rp5rc"

// ConfigPathEnv names the environment variable that overrides the config file location.
const ConfigPathEnv = "RP5_CONFIG"

const envPrefix = "RP5"

// GetConfigDir returns the directory holding the configuration file.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return homeDir, nil
}

// GetConfigPath returns the configuration file path, honoring RP5_CONFIG.
func GetConfigPath() (string, error) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Config represents the application configuration
type Config struct {
	// JavaArgs are passed to the Java VM upon launching, e.g. "-Xms256m -Xmx256m".
	JavaArgs string `mapstructure:"java_args" yaml:"java_args"`
	// SketchbookPath is the Processing sketchbook used to load additional libraries.
	SketchbookPath string `mapstructure:"sketchbook_path" yaml:"sketchbook_path"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		JavaArgs:       "",
		SketchbookPath: "",
	}
}

// LoadConfig loads the configuration from disk. If it cannot be done, we return the default configuration.
func LoadConfig() *Config {
	configPath, err := GetConfigPath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config path: %v", err)
		return DefaultConfig()
	}

	config, err := LoadConfigFrom(configPath)
	if err != nil {
		log.WarningLog.Printf("failed to load config file %s: %v", configPath, err)
	}
	return config
}

// newViper returns a viper holding only the defaults and the RP5_* environment.
func newViper() *viper.Viper {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("java_args", defaults.JavaArgs)
	v.SetDefault("sketchbook_path", defaults.SketchbookPath)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// LoadConfigFrom reads the YAML configuration at configPath and applies RP5_*
// environment overrides. A missing file is created with defaults. The returned
// config is always usable: on a read, parse or decode error it carries the
// defaults plus any environment overrides, alongside the error.
func LoadConfigFrom(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fallback(fmt.Errorf("failed to parse config file: %w", err))
		}
		if saveErr := saveConfig(configPath, DefaultConfig()); saveErr != nil {
			log.WarningLog.Printf("failed to save default config: %v", saveErr)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return fallback(fmt.Errorf("failed to decode config: %w", err))
	}
	log.DebugLog.Printf("loaded config from %s: java_args=%q", configPath, config.JavaArgs)
	return &config, nil
}

// fallback drops the file contents and decodes defaults plus environment only.
func fallback(cause error) (*Config, error) {
	var config Config
	if err := newViper().Unmarshal(&config); err != nil {
		return DefaultConfig(), errors.Join(cause, err)
	}
	return &config, cause
}

// saveConfig saves the configuration to disk
func saveConfig(configPath string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return atomicWriteFile(configPath, data, 0644)
}

// SaveConfig writes config to the resolved configuration path.
func SaveConfig(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return saveConfig(configPath, config)
}
