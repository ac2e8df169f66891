package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"icogen/pkg/config/configfile"

	"github.com/pkg/errors"
)

const (
	// EnvOverrideConfigDir is the name of the environment variable that can be
	// used to override the location of the client configuration files.
	EnvOverrideConfigDir = "ICOGEN_CONFIG"

	// ConfigFileName is the name of the client configuration file inside the
	// config-directory.
	ConfigFileName = "icogen.json"
)

var (
	initConfigDir = new(sync.Once)
	configDir     string
)

func resetConfigDir() {
	configDir = ""
	initConfigDir = new(sync.Once)
}

func setConfigDir() {
	if configDir != "" {
		return
	}
	configDir = os.Getenv(EnvOverrideConfigDir)
	if configDir != "" {
		return
	}
	// The icon is a per-project build asset, so its settings live with the
	// project rather than in the home directory.
	configDir = "."
}

// Dir returns the directory the configuration file is stored in.
func Dir() string {
	initConfigDir.Do(setConfigDir)
	return configDir
}

// SetDir sets the directory the configuration file is stored in.
func SetDir(dir string) {
	configDir = filepath.Clean(dir)
}

// Load reads the configuration file ([ConfigFileName]) from the given directory.
// If no directory is given, the default config directory is used. A missing
// file is not an error; an empty configuration is returned.
func Load(dir string) (*configfile.ConfigFile, error) {
	if dir == "" {
		dir = Dir()
	}
	filename := filepath.Join(dir, ConfigFileName)
	configFile := configfile.New(filename)

	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return configFile, nil
		}
		return configFile, errors.Wrapf(err, "loading config file: %s", filename)
	}
	defer file.Close()

	if err := configFile.LoadFromReader(file); err != nil {
		return configFile, errors.Wrapf(err, "parsing config file (%s)", filename)
	}
	return configFile, nil
}

// LoadDefaultConfigFile attempts to load the default config file and returns
// an empty configuration if it fails, printing the error to stderr.
func LoadDefaultConfigFile(stderr io.Writer) *configfile.ConfigFile {
	configFile, err := Load(Dir())
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "WARNING: Error", err)
	}
	return configFile
}
