package model

import "io"

// UploadSlot is one named file field of a multipart request.
// Size is the content length in bytes.
type UploadSlot struct {
	FieldName   string
	Filename    string
	Content     io.Reader
	ContentType string
	Size        int64
}

// Request is the payload handed to a transport.
// When Files is empty, JSON is sent as the request body.
// Otherwise JSON is encoded into the "instructions" form field next to the files.
type Request struct {
	JSON   any
	Files  []UploadSlot
	Fields map[string]string
}
