// Package iconconv converts a raster image into a Windows icon (.ico) holding
// square resamples of the source at the usual icon sizes.
//
// The conversion is a single synchronous pass:
//
//	decode -> resample per size -> persist the largest to a temporary bitmap
//	       -> encode the icon -> write the output file -> clean up
//
// Every file the pass creates besides the output is removed before Convert
// returns, whether it succeeded or not.
package iconconv

import (
	"context"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/opencontainers/go-digest"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultSource is the image converted when Options.Source is empty.
	DefaultSource = "src/leftimage.jpg"
	// DefaultOutput is the icon written when Options.Output is empty.
	DefaultOutput = "app_icon.ico"
)

// Options configures a conversion. The zero value converts DefaultSource
// into DefaultOutput at DefaultSizes with DefaultFilter.
type Options struct {
	Source string
	Output string
	Sizes  []int
	Filter string

	// Pad keeps the aspect ratio of non-square sources, centring them on a
	// transparent canvas. Without it the source is stretched.
	Pad bool
	// LargestOnly embeds only the largest size in the icon.
	LargestOnly bool
	// TempDir holds the temporary bitmap; empty means os.TempDir.
	TempDir string

	// Syso, when set, is the path of a Windows resource object to write
	// alongside the icon, built for Arch.
	Syso string
	Arch string
}

func (o Options) withDefaults() Options {
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if len(o.Sizes) == 0 {
		o.Sizes = DefaultSizes()
	}
	if o.Filter == "" {
		o.Filter = DefaultFilter
	}
	if o.Arch == "" {
		o.Arch = DefaultArch
	}
	return o
}

// Result describes a written icon.
type Result struct {
	Output string
	// Sizes are the edge lengths embedded in the icon, ascending.
	Sizes  []int
	Bytes  int64
	Digest digest.Digest
	Syso   string
}

// Convert runs the conversion described by opts. All failures are returned
// as *ConversionError, except cancellation of ctx which is returned as is.
func Convert(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := logrus.WithField("source", opts.Source)

	sizes, err := normalizeSizes(opts.Sizes)
	if err != nil {
		return nil, newError(ErrInvalidOptions, opts.Source, err)
	}
	scale, ok := filters[opts.Filter]
	if !ok {
		return nil, newError(ErrInvalidOptions, opts.Source, unknownFilterError(opts.Filter))
	}
	if opts.Syso != "" {
		if _, err := parseArch(opts.Arch); err != nil {
			return nil, newError(ErrInvalidOptions, opts.Syso, err)
		}
	}

	var tb *tempBitmap
	defer func() { tb.remove() }()

	if _, err := os.Stat(opts.Source); err != nil {
		if os.IsNotExist(err) {
			return nil, newError(ErrSourceNotFound, opts.Source, nil)
		}
		return nil, newError(ErrDecode, opts.Source, err)
	}

	src, err := decode(opts.Source)
	if err != nil {
		return nil, newError(ErrDecode, opts.Source, err)
	}
	log.WithField("bounds", src.Bounds().Size()).Debug("decoded source image")

	variants := make([]*Variant, 0, len(sizes))
	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		variants = append(variants, resample(src, size, scale, opts.Pad))
		log.WithFields(logrus.Fields{"size": size, "filter": opts.Filter}).Debug("resampled")
	}

	largest := variants[len(variants)-1]
	tb, err = writeTempBitmap(opts.TempDir, largest)
	if err != nil {
		return nil, newError(ErrEncode, opts.Output, err)
	}
	img, err := tb.load()
	if err != nil {
		return nil, newError(ErrEncode, opts.Output, err)
	}
	variants[len(variants)-1] = &Variant{Size: largest.Size, Image: img}

	embedded := variants
	if opts.LargestOnly {
		embedded = variants[len(variants)-1:]
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := encodeIcon(embedded)
	if err != nil {
		return nil, newError(ErrEncode, opts.Output, err)
	}
	icon, err := stageFile(opts.Output, data)
	if err != nil {
		return nil, newError(ErrEncode, opts.Output, err)
	}
	defer icon.discard()

	// The resource object is committed before the icon, so any failure
	// leaves the previous icon in place.
	if opts.Syso != "" {
		obj, err := buildSyso(opts.Arch, embedded)
		if err != nil {
			return nil, newError(ErrEncode, opts.Syso, err)
		}
		if err := writeFileAtomic(opts.Syso, obj); err != nil {
			return nil, newError(ErrEncode, opts.Syso, err)
		}
		log.WithFields(logrus.Fields{"syso": opts.Syso, "arch": opts.Arch}).Debug("wrote resource object")
	}
	if err := icon.commit(); err != nil {
		return nil, newError(ErrEncode, opts.Output, err)
	}

	res := &Result{
		Output: opts.Output,
		Sizes:  make([]int, 0, len(embedded)),
		Bytes:  int64(len(data)),
		Digest: digest.FromBytes(data),
		Syso:   opts.Syso,
	}
	for _, v := range embedded {
		res.Sizes = append(res.Sizes, v.Size)
	}
	log.WithFields(logrus.Fields{"output": res.Output, "sizes": res.Sizes, "digest": res.Digest}).Debug("wrote icon")

	return res, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return imaging.Decode(f, imaging.AutoOrientation(true))
}
