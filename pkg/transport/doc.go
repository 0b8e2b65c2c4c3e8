// Package transport sends requests to the document processing service over HTTP.
//
// Requests carrying files are sent as streamed multipart forms with the instruction document in
// the "instructions" field. Requests without files are sent as JSON. Failures are reported with
// the typed errors of this package.
package transport
