package fileinput

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/askiada/go-dws/internal/logging"
)

const (
	// DefaultFileName is used when an input carries no usable name.
	DefaultFileName = "document"
	// DefaultStreamThreshold is the largest file size read fully into memory.
	DefaultStreamThreshold int64 = 10 * 1024 * 1024
)

// Normalizer resolves inputs into Content.
type Normalizer struct {
	fs        afero.Fs
	logger    *log.Logger
	threshold int64
}

// Option configures a Normalizer.
type Option func(n *Normalizer)

// WithFs sets the filesystem used to resolve paths.
func WithFs(fs afero.Fs) Option {
	return func(n *Normalizer) {
		n.fs = fs
	}
}

// WithStreamThreshold sets the size above which files are streamed instead of read into memory.
func WithStreamThreshold(threshold int64) Option {
	return func(n *Normalizer) {
		n.threshold = threshold
	}
}

// WithLogger sets the normalizer logger.
func WithLogger(logger *log.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// NewNormalizer creates a normalizer reading from the OS filesystem.
func NewNormalizer(opts ...Option) *Normalizer {
	norm := &Normalizer{
		fs:        afero.NewOsFs(),
		logger:    logging.Discard(),
		threshold: DefaultStreamThreshold,
	}

	for _, opt := range opts {
		opt(norm)
	}

	return norm
}

// Normalize resolves a single input.
// The returned content must be closed once uploaded.
func (n *Normalizer) Normalize(ctx context.Context, in Input) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch val := in.(type) {
	case Bytes:
		return memoryContent(DefaultFileName, val), nil
	case Path:
		return n.normalizePath(ctx, string(val))
	case Stream:
		return n.normalizeStream(val)
	case Handle:
		return n.normalizeHandle(val)
	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "%T", in)
	}
}

// NormalizeAll resolves every input in order.
// On failure, the content already opened is closed before returning.
func (n *Normalizer) NormalizeAll(ctx context.Context, inputs []Input) ([]*Content, error) {
	res := make([]*Content, 0, len(inputs))

	for i, in := range inputs {
		content, err := n.Normalize(ctx, in)
		if err != nil {
			if closeErr := CloseAll(res); closeErr != nil {
				n.logger.Warn("unable to close normalized input", "err", closeErr)
			}

			return nil, errors.Wrapf(err, "input %d", i)
		}

		res = append(res, content)
	}

	return res, nil
}

func (n *Normalizer) normalizePath(ctx context.Context, path string) (*Content, error) {
	info, err := n.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotFound, path)
		}

		return nil, err
	}

	name := baseName(path)

	if info.Size() > n.threshold {
		n.logger.Debug("streaming file", "path", path, "size", humanize.Bytes(uint64(info.Size())))

		stream := n.streamPath(ctx, path)

		return streamContent(name, stream, stream, info.Size()), nil
	}

	data, err := afero.ReadFile(n.fs, path)
	if err != nil {
		return nil, err
	}

	n.logger.Debug("loaded file", "path", path, "size", humanize.Bytes(uint64(len(data))))

	return memoryContent(name, data), nil
}

// streamPath feeds the file at path to the returned reader in DefaultChunkSize chunks.
// Closing the reader stops the copy and closes the file.
func (n *Normalizer) streamPath(ctx context.Context, path string) io.ReadCloser {
	pr, pw := io.Pipe()

	go func() {
		pw.CloseWithError(StreamFile(ctx, n.fs, path, DefaultChunkSize, func(chunk []byte) error {
			_, err := pw.Write(chunk)

			return err
		}))
	}()

	return pr
}

func (n *Normalizer) normalizeStream(in Stream) (*Content, error) {
	if in.Reader == nil {
		return nil, errors.Wrap(ErrUnsupportedType, "nil stream")
	}

	if err := rewind(in.Reader); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(in.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read stream")
	}

	return memoryContent(baseName(in.Name), data), nil
}

func (n *Normalizer) normalizeHandle(in Handle) (*Content, error) {
	if in.File == nil {
		return nil, errors.Wrap(ErrUnsupportedType, "nil file handle")
	}

	name := baseName(in.File.Name())

	if size, ok := probeSize(in.File); ok && size > n.threshold {
		if err := rewind(in.File); err != nil {
			return nil, err
		}

		n.logger.Debug("streaming handle", "name", name, "size", humanize.Bytes(uint64(size)))

		return streamContent(name, in.File, nil, size), nil
	}

	if err := rewind(in.File); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(in.File)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", name)
	}

	return memoryContent(name, data), nil
}

// Size reports the size of an input without consuming it.
// The second result is false when the size cannot be determined,
// for a missing path or a handle that cannot seek.
func (n *Normalizer) Size(in Input) (int64, bool) {
	switch val := in.(type) {
	case Bytes:
		return int64(len(val)), true
	case Path:
		info, err := n.fs.Stat(string(val))
		if err != nil {
			return 0, false
		}

		return info.Size(), true
	case Stream:
		return probeSize(val.Reader)
	case Handle:
		if val.File == nil {
			return 0, false
		}

		return probeSize(val.File)
	default:
		return 0, false
	}
}

// probeSize returns the total size of a seekable reader and restores its position.
func probeSize(r io.Reader) (int64, bool) {
	seeker, ok := r.(io.Seeker)
	if !ok {
		return 0, false
	}

	current, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}

	end, err := seeker.Seek(0, io.SeekEnd)
	if err != nil {
		_, _ = seeker.Seek(current, io.SeekStart)

		return 0, false
	}

	if _, err := seeker.Seek(current, io.SeekStart); err != nil {
		return 0, false
	}

	return end, true
}

// rewind moves a seekable reader back to its start so the full content is read.
func rewind(r io.Reader) error {
	seeker, ok := r.(io.Seeker)
	if !ok {
		return nil
	}

	_, err := seeker.Seek(0, io.SeekStart)

	return errors.Wrap(err, "unable to rewind input")
}

func baseName(name string) string {
	if name == "" {
		return DefaultFileName
	}

	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return DefaultFileName
	}

	return base
}
