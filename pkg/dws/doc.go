// Package dws is the entry point of the document processing client.
//
// A Client exposes one-call operations, each sending a single build request,
// and Build for multi-step pipelines sent in one round trip:
//
//	client := dws.New(transport.Config{APIKey: key})
//	defer client.Close()
//
//	pdf, err := client.Build(fileinput.Path("scan.png")).
//		AddStep(pipeline.ToolConvertToPDF, nil).
//		AddStep(pipeline.ToolOCR, pipeline.OCROptions{Language: "german"}).
//		Execute(ctx)
//
// Input validation errors are returned before any file is read or request is sent.
// Errors of the transport package are returned unchanged.
package dws
