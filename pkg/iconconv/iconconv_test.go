package iconconv

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	ico "github.com/sergeymakinen/go-ico"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary files left in %s", dir)
}

func testOptions(t *testing.T) Options {
	t.Helper()

	dir := t.TempDir()
	return Options{
		Source:  filepath.Join(dir, "src", "leftimage.jpg"),
		Output:  filepath.Join(dir, "app_icon.ico"),
		TempDir: t.TempDir(),
	}
}

func TestConvert(t *testing.T) {
	opts := testOptions(t)
	writeJPEG(t, opts.Source, 512, 512)

	res, err := Convert(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, opts.Output, res.Output)
	assert.Equal(t, []int{16, 32, 48, 64, 128, 256}, res.Sizes)
	assert.NoError(t, res.Digest.Validate())

	info, err := os.Stat(opts.Output)
	require.NoError(t, err)
	assert.Equal(t, res.Bytes, info.Size())
	assert.NotZero(t, info.Size())

	dims, err := Inspect(opts.Output)
	require.NoError(t, err)
	require.Len(t, dims, 6)
	assert.Contains(t, dims, image.Pt(256, 256))
	assert.Contains(t, dims, image.Pt(16, 16))

	assertDirEmpty(t, opts.TempDir)
}

func TestConvertLargestOnly(t *testing.T) {
	opts := testOptions(t)
	opts.LargestOnly = true
	writeJPEG(t, opts.Source, 512, 512)

	res, err := Convert(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []int{256}, res.Sizes)

	dims, err := Inspect(opts.Output)
	require.NoError(t, err)
	assert.Equal(t, []image.Point{image.Pt(256, 256)}, dims)
}

func TestConvertUpsamplesSmallSource(t *testing.T) {
	for _, filter := range Filters() {
		t.Run(filter, func(t *testing.T) {
			opts := testOptions(t)
			opts.Filter = filter
			writeJPEG(t, opts.Source, 20, 12)

			res, err := Convert(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, 256, res.Sizes[len(res.Sizes)-1])

			dims, err := Inspect(opts.Output)
			require.NoError(t, err)
			assert.Contains(t, dims, image.Pt(256, 256))
		})
	}
}

func TestConvertSourceNotFound(t *testing.T) {
	opts := testOptions(t)
	opts.Source = filepath.Join(filepath.Dir(opts.Output), "src", "missing.jpg")

	_, err := Convert(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, opts.Source, convErr.Path)

	_, err = os.Stat(opts.Output)
	assert.True(t, os.IsNotExist(err))
	assertDirEmpty(t, opts.TempDir)
}

func TestConvertDecodeError(t *testing.T) {
	opts := testOptions(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(opts.Source), 0o755))
	require.NoError(t, os.WriteFile(opts.Source, []byte("definitely not a jpeg"), 0o644))

	_, err := Convert(context.Background(), opts)
	assert.ErrorIs(t, err, ErrDecode)
	assert.NotErrorIs(t, err, ErrSourceNotFound)

	_, err = os.Stat(opts.Output)
	assert.True(t, os.IsNotExist(err))
	assertDirEmpty(t, opts.TempDir)
}

func TestConvertEncodeErrorKeepsExistingOutput(t *testing.T) {
	opts := testOptions(t)
	writeJPEG(t, opts.Source, 64, 64)

	previous := []byte("previous icon")
	require.NoError(t, os.WriteFile(opts.Output, previous, 0o644))

	// The temporary output file is created next to the destination, so a
	// missing parent directory fails the write after the bitmap stage.
	good := opts.Output
	opts.Output = filepath.Join(filepath.Dir(good), "missing", "app_icon.ico")

	_, err := Convert(context.Background(), opts)
	assert.ErrorIs(t, err, ErrEncode)

	data, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, previous, data)
	assertDirEmpty(t, opts.TempDir)
}

func TestConvertOverwritesOutput(t *testing.T) {
	opts := testOptions(t)
	writeJPEG(t, opts.Source, 128, 128)
	require.NoError(t, os.WriteFile(opts.Output, []byte("stale"), 0o644))

	_, err := Convert(context.Background(), opts)
	require.NoError(t, err)

	dims, err := Inspect(opts.Output)
	require.NoError(t, err)
	assert.Len(t, dims, len(DefaultSizes()))

	entries, err := os.ReadDir(filepath.Dir(opts.Output))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"app_icon.ico", "src"}, names)
}

func TestConvertInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{name: "size too large", mutate: func(o *Options) { o.Sizes = []int{16, 512} }},
		{name: "zero size", mutate: func(o *Options) { o.Sizes = []int{0} }},
		{name: "unknown filter", mutate: func(o *Options) { o.Filter = "box" }},
		{name: "unknown arch", mutate: func(o *Options) {
			o.Syso = "rsrc.syso"
			o.Arch = "mips"
		}},
		{name: "upper-case arch", mutate: func(o *Options) {
			o.Syso = "rsrc.syso"
			o.Arch = "AMD64"
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := testOptions(t)
			writeJPEG(t, opts.Source, 32, 32)
			tc.mutate(&opts)

			_, err := Convert(context.Background(), opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

func TestConvertCancelled(t *testing.T) {
	opts := testOptions(t)
	writeJPEG(t, opts.Source, 64, 64)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Convert(ctx, opts)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = os.Stat(opts.Output)
	assert.True(t, os.IsNotExist(err))
	assertDirEmpty(t, opts.TempDir)
}

func TestConvertSyso(t *testing.T) {
	opts := testOptions(t)
	opts.Syso = filepath.Join(filepath.Dir(opts.Output), "rsrc_windows_amd64.syso")
	writeJPEG(t, opts.Source, 256, 256)

	res, err := Convert(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, opts.Syso, res.Syso)

	info, err := os.Stat(opts.Syso)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestConvertSysoErrorKeepsExistingOutput(t *testing.T) {
	opts := testOptions(t)
	writeJPEG(t, opts.Source, 64, 64)

	previous := []byte("previous icon")
	require.NoError(t, os.WriteFile(opts.Output, previous, 0o644))
	opts.Syso = filepath.Join(filepath.Dir(opts.Output), "missing", "rsrc_windows_amd64.syso")

	_, err := Convert(context.Background(), opts)
	assert.ErrorIs(t, err, ErrEncode)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, opts.Syso, convErr.Path)

	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Equal(t, previous, data)

	entries, err := os.ReadDir(filepath.Dir(opts.Output))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"app_icon.ico", "src"}, names)
	assertDirEmpty(t, opts.TempDir)
}

func TestConvertPadKeepsTransparency(t *testing.T) {
	opts := testOptions(t)
	opts.Pad = true
	writeJPEG(t, opts.Source, 400, 100)

	res, err := Convert(context.Background(), opts)
	require.NoError(t, err)

	f, err := os.Open(opts.Output)
	require.NoError(t, err)
	defer f.Close()
	images, err := ico.DecodeAll(f)
	require.NoError(t, err)
	require.Len(t, images, len(res.Sizes))

	for i, img := range images {
		size := res.Sizes[i]
		require.Equal(t, image.Pt(size, size), img.Bounds().Size())

		o := img.Bounds().Min
		_, _, _, a := img.At(o.X+size/2, o.Y).RGBA()
		assert.Zero(t, a, "padding of the %dpx image is not transparent", size)
		_, _, _, a = img.At(o.X+size/2, o.Y+size/2).RGBA()
		assert.Equal(t, uint32(0xffff), a, "centre of the %dpx image is not opaque", size)
	}
}
