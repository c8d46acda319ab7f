package window

import (
	"errors"
	"fmt"
)

// ShapeError reports invalid rank, window, stride, dilation or padding
// parameters, or a shape inference that produced a non-positive or
// ambiguous output size.
//
// Shape errors are always produced eagerly, before any backend kernel
// is invoked or any tape state is mutated.
type ShapeError struct {
	msg string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return e.msg
}

// Errorf builds a ShapeError with fmt-style formatting.
func Errorf(format string, args ...any) error {
	return &ShapeError{msg: fmt.Sprintf(format, args...)}
}

// IsShapeError reports whether err is (or wraps) a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}
