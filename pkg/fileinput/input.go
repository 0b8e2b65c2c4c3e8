package fileinput

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Input is a file input accepted by the client.
// The concrete variants are Bytes, Path, Stream and Handle.
type Input interface {
	isInput()
}

// Bytes is raw document content.
type Bytes []byte

func (Bytes) isInput() {}

// Path is a file path resolved against the normalizer filesystem.
type Path string

func (Path) isInput() {}

// Stream is an in-memory readable. Name is optional and only its base name is kept.
type Stream struct {
	Reader io.Reader
	Name   string
}

func (Stream) isInput() {}

// NamedFile is an open file. Both *os.File and afero.File implement it.
type NamedFile interface {
	io.Reader
	Name() string
}

// Handle is an open file handle backed by a path.
// Handles are owned by the caller and never closed by this package.
type Handle struct {
	File NamedFile
}

func (Handle) isInput() {}

type bytesNamed interface {
	io.Reader
	Name() []byte
}

// FromAny converts a loosely typed value into an Input.
// It accepts []byte, string paths, fmt.Stringer path-like values, open files and readers.
func FromAny(value any) (Input, error) {
	switch val := value.(type) {
	case Input:
		return val, nil
	case []byte:
		return Bytes(val), nil
	case string:
		return Path(val), nil
	case NamedFile:
		return Handle{File: val}, nil
	case bytesNamed:
		return Stream{Reader: val, Name: strings.ToValidUTF8(string(val.Name()), "�")}, nil
	case io.Reader:
		return Stream{Reader: val}, nil
	case fmt.Stringer:
		return Path(val.String()), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "%T", value)
	}
}

// FromAll converts every value with FromAny.
func FromAll(values ...any) ([]Input, error) {
	res := make([]Input, 0, len(values))

	for _, value := range values {
		in, err := FromAny(value)
		if err != nil {
			return nil, err
		}

		res = append(res, in)
	}

	return res, nil
}
