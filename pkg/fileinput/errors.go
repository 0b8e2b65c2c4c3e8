package fileinput

import "github.com/pkg/errors"

var (
	ErrNotFound        = errors.New("file not found")
	ErrUnsupportedType = errors.New("unsupported file input type")
)
