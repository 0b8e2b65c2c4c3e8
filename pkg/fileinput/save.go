package fileinput

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultChunkSize is the chunk size used by StreamFile.
const DefaultChunkSize = 8 * 1024

// Save writes data to path, creating missing parent directories and overwriting any existing file.
// Filesystem errors are returned as is.
func Save(fs afero.Fs, data []byte, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return afero.WriteFile(fs, path, data, 0o644)
}

// StreamFile reads the file at path in chunks of chunkSize bytes and calls fn with each of them.
// The chunk slice is reused between calls. Reading stops when ctx is done.
func StreamFile(ctx context.Context, fs afero.Fs, path string, chunkSize int, fn func(chunk []byte) error) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	file, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(ErrNotFound, path)
		}

		return err
	}
	defer file.Close()

	buf := make([]byte, chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := io.ReadFull(file, buf)
		if n > 0 {
			if fnErr := fn(buf[:n]); fnErr != nil {
				return fnErr
			}
		}

		switch err {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			return nil
		default:
			return err
		}
	}
}
