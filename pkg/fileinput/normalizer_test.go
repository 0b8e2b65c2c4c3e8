package fileinput_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dws/pkg/fileinput"
)

const threshold = 16

func TestNormalize(t *testing.T) {
	t.Parallel()

	exact := strings.Repeat("a", threshold)
	large := strings.Repeat("b", threshold+1)

	consumed := bytes.NewReader([]byte("already read"))
	_, err := io.ReadAll(consumed)
	require.NoError(t, err)

	tcs := map[string]struct {
		input        fileinput.Input
		wantName     string
		wantContent  string
		wantInMemory bool
	}{
		"bytes": {
			input:        fileinput.Bytes("%PDF-1.4"),
			wantName:     "document",
			wantContent:  "%PDF-1.4",
			wantInMemory: true,
		},
		"small path": {
			input:        fileinput.Path("/docs/small.pdf"),
			wantName:     "small.pdf",
			wantContent:  "small",
			wantInMemory: true,
		},
		"path at threshold": {
			input:        fileinput.Path("/docs/exact.pdf"),
			wantName:     "exact.pdf",
			wantContent:  exact,
			wantInMemory: true,
		},
		"path above threshold": {
			input:        fileinput.Path("/docs/large.pdf"),
			wantName:     "large.pdf",
			wantContent:  large,
			wantInMemory: false,
		},
		"unnamed stream": {
			input:        fileinput.Stream{Reader: strings.NewReader("stream")},
			wantName:     "document",
			wantContent:  "stream",
			wantInMemory: true,
		},
		"named stream": {
			input:        fileinput.Stream{Reader: strings.NewReader("stream"), Name: "/path/to/file.pdf"},
			wantName:     "file.pdf",
			wantContent:  "stream",
			wantInMemory: true,
		},
		"stream read to the end": {
			input:        fileinput.Stream{Reader: consumed},
			wantName:     "document",
			wantContent:  "already read",
			wantInMemory: true,
		},
		"unseekable handle": {
			input:        fileinput.Handle{File: unseekableFile{Reader: strings.NewReader(large), name: "/tmp/pipe.pdf"}},
			wantName:     "pipe.pdf",
			wantContent:  large,
			wantInMemory: true,
		},
		"unnamed handle": {
			input:        fileinput.Handle{File: unseekableFile{Reader: strings.NewReader("x")}},
			wantName:     "document",
			wantContent:  "x",
			wantInMemory: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fs := newFs(t, map[string]string{
				"/docs/small.pdf": "small",
				"/docs/exact.pdf": exact,
				"/docs/large.pdf": large,
			})
			norm := fileinput.NewNormalizer(fileinput.WithFs(fs), fileinput.WithStreamThreshold(threshold))

			got, err := norm.Normalize(t.Context(), tc.input)
			require.NoError(t, err)

			defer got.Close()

			assert.Equal(t, tc.wantName, got.Name)
			assert.Equal(t, tc.wantInMemory, got.InMemory())
			assert.Equal(t, int64(len(tc.wantContent)), got.Size())
			assert.Equal(t, tc.wantContent, readAll(t, got.Reader()))
		})
	}
}

func TestNormalizeNotFound(t *testing.T) {
	t.Parallel()

	norm := fileinput.NewNormalizer(fileinput.WithFs(newFs(t, nil)))

	_, err := norm.Normalize(t.Context(), fileinput.Path("/non/existent/file.txt"))
	require.ErrorIs(t, err, fileinput.ErrNotFound)
	assert.EqualError(t, err, "/non/existent/file.txt: file not found")
}

func TestNormalizeClosesOpenedFile(t *testing.T) {
	t.Parallel()

	fs := newFs(t, map[string]string{"/large.pdf": strings.Repeat("c", threshold*2)})
	norm := fileinput.NewNormalizer(fileinput.WithFs(fs), fileinput.WithStreamThreshold(threshold))

	got, err := norm.Normalize(t.Context(), fileinput.Path("/large.pdf"))
	require.NoError(t, err)
	require.False(t, got.InMemory())

	reader := got.Reader()
	require.NoError(t, got.Close())

	_, err = reader.Read(make([]byte, 1))
	assert.Error(t, err)
	assert.NoError(t, got.Close())
}

func TestNormalizeStreamedPathStopsOnCancel(t *testing.T) {
	t.Parallel()

	fs := newFs(t, map[string]string{"/large.pdf": strings.Repeat("e", 3*fileinput.DefaultChunkSize)})
	norm := fileinput.NewNormalizer(fileinput.WithFs(fs), fileinput.WithStreamThreshold(threshold))

	ctx, cancel := context.WithCancel(t.Context())

	got, err := norm.Normalize(ctx, fileinput.Path("/large.pdf"))
	require.NoError(t, err)

	defer got.Close()

	cancel()

	_, err = io.ReadAll(got.Reader())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeKeepsCallerHandleOpen(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content      string
		wantInMemory bool
	}{
		"small handle": {content: "small", wantInMemory: true},
		"large handle": {content: strings.Repeat("d", threshold*2), wantInMemory: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fs := newFs(t, map[string]string{"/in.pdf": tc.content})
			file, err := fs.Open("/in.pdf")
			require.NoError(t, err)

			defer file.Close()

			norm := fileinput.NewNormalizer(fileinput.WithFs(fs), fileinput.WithStreamThreshold(threshold))

			got, err := norm.Normalize(t.Context(), fileinput.Handle{File: file})
			require.NoError(t, err)
			assert.Equal(t, "in.pdf", got.Name)
			assert.Equal(t, tc.wantInMemory, got.InMemory())
			assert.Equal(t, tc.content, readAll(t, got.Reader()))
			require.NoError(t, got.Close())

			_, err = file.Seek(0, io.SeekStart)
			require.NoError(t, err)
			assert.Equal(t, tc.content, readAll(t, file))
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	t.Parallel()

	fs := newFs(t, map[string]string{"/a.pdf": "a"})
	norm := fileinput.NewNormalizer(fileinput.WithFs(fs))

	got, err := norm.NormalizeAll(t.Context(), []fileinput.Input{fileinput.Path("/a.pdf"), fileinput.Bytes("b")})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.pdf", got[0].Name)
	assert.Equal(t, "document", got[1].Name)
	assert.NoError(t, fileinput.CloseAll(got))

	_, err = norm.NormalizeAll(t.Context(), []fileinput.Input{fileinput.Path("/a.pdf"), fileinput.Path("/missing.pdf")})
	assert.ErrorIs(t, err, fileinput.ErrNotFound)
}

func TestNormalizeCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := fileinput.NewNormalizer().Normalize(ctx, fileinput.Bytes("a"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSize(t *testing.T) {
	t.Parallel()

	seekable := bytes.NewReader([]byte("0123456789"))
	_, err := seekable.Seek(4, io.SeekStart)
	require.NoError(t, err)

	tcs := map[string]struct {
		input  fileinput.Input
		want   int64
		wantOK bool
	}{
		"bytes":             {input: fileinput.Bytes("abc"), want: 3, wantOK: true},
		"path":              {input: fileinput.Path("/a.pdf"), want: 5, wantOK: true},
		"missing path":      {input: fileinput.Path("/missing.pdf"), wantOK: false},
		"seekable stream":   {input: fileinput.Stream{Reader: seekable}, want: 10, wantOK: true},
		"unseekable stream": {input: fileinput.Stream{Reader: io.MultiReader(strings.NewReader("a"))}, wantOK: false},
		"unseekable handle": {input: fileinput.Handle{File: unseekableFile{Reader: strings.NewReader("a")}}, wantOK: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			norm := fileinput.NewNormalizer(fileinput.WithFs(newFs(t, map[string]string{"/a.pdf": "hello"})))

			got, ok := norm.Size(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	pos, err := seekable.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)
}
