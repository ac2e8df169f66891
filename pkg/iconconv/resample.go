package iconconv

import (
	"image"
	"image/draw"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// MaxSize is the largest edge length an ICO directory entry can describe.
const MaxSize = 256

// DefaultFilter is used when Options.Filter is empty.
const DefaultFilter = "catmullrom"

var defaultSizes = []int{16, 32, 48, 64, 128, 256}

// DefaultSizes returns a copy of the default resolution set.
func DefaultSizes() []int {
	return append([]int(nil), defaultSizes...)
}

// scaleFunc scales src into a fresh w x h image.
type scaleFunc func(src image.Image, w, h int) image.Image

var filters = map[string]scaleFunc{
	"catmullrom": interpolatorScale(xdraw.CatmullRom),
	"bilinear":   interpolatorScale(xdraw.ApproxBiLinear),
	"nearest":    interpolatorScale(xdraw.NearestNeighbor),
	"lanczos": func(src image.Image, w, h int) image.Image {
		return imaging.Resize(src, w, h, imaging.Lanczos)
	},
	"mitchell": func(src image.Image, w, h int) image.Image {
		return resize.Resize(uint(w), uint(h), src, resize.MitchellNetravali)
	},
}

func interpolatorScale(s xdraw.Scaler) scaleFunc {
	return func(src image.Image, w, h int) image.Image {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		s.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		return dst
	}
}

// Filters returns the names of the supported resampling filters, sorted.
func Filters() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unknownFilterError(name string) error {
	return errors.Errorf("unknown filter %q (expected one of %s)", name, strings.Join(Filters(), ", "))
}

// Variant is a square resample of the source image.
type Variant struct {
	Size  int
	Image *image.NRGBA
}

// normalizeSizes sorts and de-duplicates sizes, rejecting anything an ICO
// entry cannot hold.
func normalizeSizes(sizes []int) ([]int, error) {
	if len(sizes) == 0 {
		return nil, errors.New("resolution set is empty")
	}
	out := append([]int(nil), sizes...)
	sort.Ints(out)
	n := 0
	for i, s := range out {
		if s < 1 || s > MaxSize {
			return nil, errors.Errorf("size %d is outside 1..%d", s, MaxSize)
		}
		if i > 0 && s == out[n-1] {
			continue
		}
		out[n] = s
		n++
	}
	return out[:n], nil
}

// resample produces one square variant of src for the given edge length. When
// pad is set the aspect ratio is kept and the image is centred on a
// transparent canvas.
func resample(src image.Image, size int, scale scaleFunc, pad bool) *Variant {
	b := src.Bounds()
	w, h := size, size
	if pad && b.Dx() != b.Dy() {
		if b.Dx() > b.Dy() {
			h = max(1, b.Dy()*size/b.Dx())
		} else {
			w = max(1, b.Dx()*size/b.Dy())
		}
	}

	scaled := scale(src, w, h)

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	off := image.Pt((size-w)/2, (size-h)/2)
	draw.Draw(dst, image.Rectangle{Min: off, Max: off.Add(image.Pt(w, h))}, scaled, scaled.Bounds().Min, draw.Src)

	return &Variant{Size: size, Image: dst}
}
