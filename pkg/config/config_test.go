package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	configFile, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), configFile.Filename)
	assert.Empty(t, configFile.Output)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"output": "icon.ico"}`), 0o644))

	configFile, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "icon.ico", configFile.Output)
}

func TestLoadDefaultConfigFileWarnsOnInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"output": `), 0o644))

	t.Cleanup(resetConfigDir)
	SetDir(dir)

	var stderr bytes.Buffer
	configFile := LoadDefaultConfigFile(&stderr)
	assert.NotNil(t, configFile)
	assert.Contains(t, stderr.String(), "WARNING: Error")
}

func TestDirFromEnvironment(t *testing.T) {
	t.Cleanup(resetConfigDir)
	resetConfigDir()
	t.Setenv(EnvOverrideConfigDir, "/etc/icogen")

	assert.Equal(t, "/etc/icogen", Dir())
}
