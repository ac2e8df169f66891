package main

import (
	"bytes"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"icogen/cli/command"
	"icogen/pkg/config/configfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithBuffer(t *testing.T, args ...string) (int, string) {
	t.Helper()

	var buf bytes.Buffer
	code := run(args, command.WithCombinedStreams(&buf), command.WithConfigFile(configfile.New("")))
	return code, buf.String()
}

func TestRunSourceNotFound(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "app_icon.ico")

	code, out := runWithBuffer(t, "--output", output, filepath.Join(dir, "src", "missing.jpg"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Source image not found")

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestRunSuccess(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "leftimage.jpg")
	output := filepath.Join(dir, "app_icon.ico")

	f, err := os.Create(source)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, image.NewGray(image.Rect(0, 0, 300, 300)), nil))
	require.NoError(t, f.Close())

	code, out := runWithBuffer(t, "--output", output, "--temp-dir", t.TempDir(), source)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Icon written to "+output)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestRunBadFlag(t *testing.T) {
	code, out := runWithBuffer(t, "--no-such-flag")
	assert.Equal(t, 125, code)
	assert.Contains(t, out, "Run 'icogen --help' for more information")
}
