package iconconv

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kinds of conversion failures. Use errors.Is to match a *ConversionError
// against one of them.
var (
	ErrSourceNotFound = errors.New("source image not found")
	ErrDecode         = errors.New("cannot decode source image")
	ErrEncode         = errors.New("cannot encode icon")
	ErrInvalidOptions = errors.New("invalid conversion options")
)

// ConversionError is returned by Convert for every failure.
type ConversionError struct {
	Kind error
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of e.
func (e *ConversionError) Is(target error) bool {
	return target == e.Kind
}

func newError(kind error, path string, err error) *ConversionError {
	return &ConversionError{Kind: kind, Path: path, Err: err}
}
