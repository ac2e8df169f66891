package configfile

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ConfigFile is the icogen.json file info. Every field is optional; command
// line flags take precedence over it.
type ConfigFile struct {
	Filename    string `json:"-"` // Note: for internal use only
	Source      string `json:"source,omitempty"`
	Output      string `json:"output,omitempty"`
	Sizes       []int  `json:"sizes,omitempty"`
	Filter      string `json:"filter,omitempty"`
	Pad         bool   `json:"pad,omitempty"`
	LargestOnly bool   `json:"largestOnly,omitempty"`
	TempDir     string `json:"tempDir,omitempty"`
	Syso        string `json:"syso,omitempty"`
	Arch        string `json:"arch,omitempty"`
}

// New initializes an empty configuration file for the given filename 'fn'
func New(fn string) *ConfigFile {
	return &ConfigFile{
		Filename: fn,
	}
}

// LoadFromReader reads the configuration data given and populates the
// receiver object
func (configFile *ConfigFile) LoadFromReader(configData io.Reader) error {
	dec := json.NewDecoder(configData)
	dec.DisallowUnknownFields()
	if err := dec.Decode(configFile); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	logrus.WithField("file", configFile.Filename).Debug("loaded config file")
	return nil
}

// GetFilename returns the file name that this config file is based on.
func (configFile *ConfigFile) GetFilename() string {
	return configFile.Filename
}
