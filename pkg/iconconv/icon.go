package iconconv

import (
	"bytes"
	"image"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	ico "github.com/sergeymakinen/go-ico"
)

// encodeIcon builds an ICO container holding one entry per variant.
func encodeIcon(variants []*Variant) ([]byte, error) {
	if len(variants) == 0 {
		return nil, errors.New("no images to encode")
	}
	images := make([]image.Image, 0, len(variants))
	for _, v := range variants {
		images = append(images, v.Image)
	}

	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, images); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stagedFile is data written next to its destination and waiting to be
// renamed into place. Nothing at the destination changes until commit.
type stagedFile struct {
	temp string
	path string
}

func stageFile(path string, data []byte) (_ *stagedFile, retErr error) {
	temp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	defer func() {
		temp.Close()
		if retErr != nil {
			if err := os.Remove(temp.Name()); err != nil && !os.IsNotExist(err) {
				retErr = errors.Wrapf(retErr, "error deleting %s", temp.Name())
			}
		}
	}()

	if _, err := temp.Write(data); err != nil {
		return nil, err
	}
	if err := temp.Chmod(0o644); err != nil {
		return nil, err
	}
	if err := temp.Close(); err != nil {
		return nil, errors.Wrap(err, "error closing temp file")
	}
	return &stagedFile{temp: temp.Name(), path: path}, nil
}

// commit renames the staged data over the destination.
func (sf *stagedFile) commit() error {
	if err := os.Rename(sf.temp, sf.path); err != nil {
		return err
	}
	sf.temp = ""
	return nil
}

// discard removes the staged data unless it was committed.
func (sf *stagedFile) discard() {
	if sf == nil || sf.temp == "" {
		return
	}
	os.Remove(sf.temp)
	sf.temp = ""
}

// writeFileAtomic writes data next to path and renames it into place, so a
// failed write never leaves a truncated file at path.
func writeFileAtomic(path string, data []byte) error {
	sf, err := stageFile(path, data)
	if err != nil {
		return err
	}
	defer sf.discard()
	return sf.commit()
}

// Inspect returns the dimensions of every image embedded in the ICO file at
// path, in file order.
func Inspect(path string) ([]image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	images, err := ico.DecodeAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not a valid icon", path)
	}
	dims := make([]image.Point, 0, len(images))
	for _, img := range images {
		dims = append(dims, img.Bounds().Size())
	}
	return dims, nil
}
