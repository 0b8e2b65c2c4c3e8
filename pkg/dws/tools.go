package dws

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-dws/pkg/fileinput"
	"github.com/askiada/go-dws/pkg/pipeline"
)

func (c *Client) processFile(ctx context.Context, tool pipeline.Tool, input fileinput.Input, toolOpts pipeline.ToolOptions, opts []CallOption) ([]byte, error) {
	pipe := c.newPipeline(string(tool), []fileinput.Input{input}).AddStep(tool, toolOpts)

	return run(ctx, pipe, opts)
}

// ConvertToPDF converts an Office document or an image to PDF.
func (c *Client) ConvertToPDF(ctx context.Context, input fileinput.Input, opts ...CallOption) ([]byte, error) {
	return c.processFile(ctx, pipeline.ToolConvertToPDF, input, nil, opts)
}

// FlattenAnnotations flattens annotations and form fields.
func (c *Client) FlattenAnnotations(ctx context.Context, input fileinput.Input, opts ...CallOption) ([]byte, error) {
	return c.processFile(ctx, pipeline.ToolFlattenAnnotations, input, nil, opts)
}

// ApplyRedactions applies the redaction annotations of the document.
func (c *Client) ApplyRedactions(ctx context.Context, input fileinput.Input, opts ...CallOption) ([]byte, error) {
	return c.processFile(ctx, pipeline.ToolApplyRedactions, input, nil, opts)
}

// RotatePages rotates pages clockwise by degrees. A nil pageIndexes rotates every page.
func (c *Client) RotatePages(ctx context.Context, input fileinput.Input, degrees int, pageIndexes []int, opts ...CallOption) ([]byte, error) {
	return c.processFile(ctx, pipeline.ToolRotatePages, input, pipeline.RotateOptions{Degrees: degrees, PageIndexes: pageIndexes}, opts)
}

// OCR makes the document searchable. An empty language means english.
func (c *Client) OCR(ctx context.Context, input fileinput.Input, language string, opts ...CallOption) ([]byte, error) {
	return c.processFile(ctx, pipeline.ToolOCR, input, pipeline.OCROptions{Language: language}, opts)
}

// Watermark stamps a text or an image on every page. Exactly one of Text and ImageURL must be set.
func (c *Client) Watermark(ctx context.Context, input fileinput.Input, watermark pipeline.WatermarkOptions, opts ...CallOption) ([]byte, error) {
	if (watermark.Text == "") == (watermark.ImageURL == "") {
		return nil, errors.WithStack(ErrWatermarkSource)
	}

	return c.processFile(ctx, pipeline.ToolWatermark, input, watermark, opts)
}
