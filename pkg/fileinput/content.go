package fileinput

import (
	"bytes"
	"io"
)

// ContentType is the content type of every uploaded file.
const ContentType = "application/octet-stream"

// Content is a normalized input, ready to be uploaded.
type Content struct {
	// Name is the filename reported to the service.
	Name string

	data     []byte
	inMemory bool
	stream   io.Reader
	closer   io.Closer
	size     int64
}

func memoryContent(name string, data []byte) *Content {
	return &Content{Name: name, data: data, inMemory: true, size: int64(len(data))}
}

func streamContent(name string, stream io.Reader, closer io.Closer, size int64) *Content {
	return &Content{Name: name, stream: stream, closer: closer, size: size}
}

// InMemory reports whether the whole content was loaded into memory.
func (c *Content) InMemory() bool {
	return c.inMemory
}

// Bytes returns the in-memory content, or nil for streamed content.
func (c *Content) Bytes() []byte {
	return c.data
}

// Reader returns a reader over the content.
// In-memory content can be read several times, a streamed content only once.
func (c *Content) Reader() io.Reader {
	if c.inMemory {
		return bytes.NewReader(c.data)
	}

	return c.stream
}

// Size returns the content length.
func (c *Content) Size() int64 {
	return c.size
}

// Close releases the file handle opened during normalization, if any.
func (c *Content) Close() error {
	if c.closer == nil {
		return nil
	}

	err := c.closer.Close()
	c.closer = nil

	return err
}

// CloseAll closes every content and returns the first error.
func CloseAll(contents []*Content) error {
	var first error

	for _, content := range contents {
		if content == nil {
			continue
		}

		if err := content.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
