package iconconv

import (
	"image"
	"image/draw"
	"os"

	"github.com/moby/sys/sequential"
	"github.com/pkg/errors"
	"github.com/sergeymakinen/go-bmp"
	"github.com/sirupsen/logrus"
)

// tempBitmap is a variant persisted to a BMP file in the temp directory. The
// file lives until remove is called. Images with transparency are stored as
// 32-bit BGRA so the alpha channel survives the round trip.
type tempBitmap struct {
	path string
}

func writeTempBitmap(dir string, v *Variant) (*tempBitmap, error) {
	f, err := sequential.CreateTemp(dir, "icogen-bitmap-")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temporary bitmap")
	}
	tb := &tempBitmap{path: f.Name()}

	if err := bmp.Encode(f, v.Image); err != nil {
		f.Close()
		tb.remove()
		return nil, errors.Wrap(err, "failed to write temporary bitmap")
	}
	if err := f.Close(); err != nil {
		tb.remove()
		return nil, errors.Wrap(err, "failed to close temporary bitmap")
	}

	logrus.WithFields(logrus.Fields{"path": tb.path, "size": v.Size}).Debug("wrote temporary bitmap")
	return tb, nil
}

// load decodes the bitmap back into an NRGBA image.
func (tb *tempBitmap) load() (*image.NRGBA, error) {
	f, err := sequential.Open(tb.path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open temporary bitmap")
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read temporary bitmap")
	}
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba, nil
	}
	dst := image.NewNRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst, nil
}

func (tb *tempBitmap) remove() {
	if tb == nil || tb.path == "" {
		return
	}
	if err := os.Remove(tb.path); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", tb.path).Warn("failed to remove temporary bitmap")
		return
	}
	logrus.WithField("path", tb.path).Debug("removed temporary bitmap")
	tb.path = ""
}
