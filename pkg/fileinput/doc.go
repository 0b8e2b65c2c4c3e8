// Package fileinput turns the file inputs accepted by the client into uploadable content.
//
// An input is raw bytes, a path on a filesystem, an in-memory stream or an open file handle.
// Small inputs are read fully into memory, while files above the stream threshold are uploaded
// from an open handle. The package also binds normalized content to multipart field names,
// and saves or streams documents to and from disk.
package fileinput
