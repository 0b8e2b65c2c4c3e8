package dws

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-dws/pkg/fileinput"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

const (
	DefaultPageSize    = "A4"
	DefaultOrientation = "portrait"
	// AppendIndex inserts new pages after the last page.
	AppendIndex = -1
)

// Merge concatenates the documents in order.
func (c *Client) Merge(ctx context.Context, inputs []fileinput.Input, opts ...CallOption) ([]byte, error) {
	if len(inputs) < 2 {
		return nil, errors.WithStack(ErrInsufficientInputs)
	}

	return run(ctx, c.newPipeline("merge", inputs), opts)
}

// Split extracts each page range into its own document, one request per range.
// Without ranges, the first page is extracted. When outputPaths is not nil, it must hold one path
// per range, the documents are written there and no buffer is returned.
func (c *Client) Split(ctx context.Context, input fileinput.Input, ranges []model.PageRange, outputPaths []string) ([][]byte, error) {
	if len(ranges) == 0 {
		ranges = []model.PageRange{model.Range(0, 1)}
	}

	if outputPaths != nil && len(outputPaths) != len(ranges) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d output paths for %d ranges", len(outputPaths), len(ranges))
	}

	source, err := c.reusable(ctx, input)
	if err != nil {
		return nil, err
	}

	results := make([][]byte, len(ranges))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(c.splitConcurrency)

	for i, rng := range ranges {
		grp.Go(func() error {
			pipe := c.newPipeline(fmt.Sprintf("split-%d", i), []fileinput.Input{source()}).
				SetParts(model.FilePages(fileinput.SingleFieldName, rng))

			if outputPaths != nil {
				return pipe.ExecuteTo(grpCtx, outputPaths[i])
			}

			data, err := pipe.Execute(grpCtx)
			results[i] = data

			return err
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	if outputPaths != nil {
		return nil, nil
	}

	return results, nil
}

// reusable returns a factory of inputs that can each be read once, all with the same content.
// Streams and handles are read into memory a single time.
func (c *Client) reusable(ctx context.Context, input fileinput.Input) (func() fileinput.Input, error) {
	switch input.(type) {
	case fileinput.Path, fileinput.Bytes:
		return func() fileinput.Input { return input }, nil
	}

	content, err := fileinput.NewNormalizer(
		fileinput.WithFs(c.fs),
		fileinput.WithLogger(c.logger),
	).Normalize(ctx, input)
	if err != nil {
		return nil, err
	}
	defer content.Close()

	data, err := io.ReadAll(content.Reader())
	if err != nil {
		return nil, errors.Wrap(err, "unable to read input")
	}

	return func() fileinput.Input {
		return fileinput.Stream{Reader: bytes.NewReader(data), Name: content.Name}
	}, nil
}

// DuplicatePages builds a document from the given pages, in order, repeating pages listed several times.
// Negative indexes count from the end, -1 being the last page.
func (c *Client) DuplicatePages(ctx context.Context, input fileinput.Input, pageIndexes []int, opts ...CallOption) ([]byte, error) {
	if len(pageIndexes) == 0 {
		return nil, errors.WithStack(ErrEmptyIndexes)
	}

	parts := make([]model.Part, 0, len(pageIndexes))

	for _, idx := range pageIndexes {
		rng := model.Range(idx, idx+1)
		if idx == -1 {
			rng = model.From(idx)
		}

		parts = append(parts, model.FilePages(fileinput.SingleFieldName, rng))
	}

	return run(ctx, c.newPipeline("duplicate-pages", []fileinput.Input{input}).SetParts(parts...), opts)
}

// DeletePages removes the given pages. Duplicate indexes are ignored.
func (c *Client) DeletePages(ctx context.Context, input fileinput.Input, pageIndexes []int, opts ...CallOption) ([]byte, error) {
	if len(pageIndexes) == 0 {
		return nil, errors.WithStack(ErrEmptyIndexes)
	}

	if slices.ContainsFunc(pageIndexes, func(idx int) bool { return idx < 0 }) {
		return nil, errors.WithStack(ErrNegativeIndexUnsupported)
	}

	pipe := c.newPipeline("delete-pages", []fileinput.Input{input}).SetParts(keptParts(pageIndexes)...)

	return run(ctx, pipe, opts)
}

// keptParts returns the parts covering every page but the deleted ones.
func keptParts(deleted []int) []model.Part {
	sorted := slices.Clone(deleted)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]model.Part, 0, len(sorted)+1)
	start := 0

	for _, idx := range sorted {
		if idx > start {
			parts = append(parts, model.FilePages(fileinput.SingleFieldName, model.Range(start, idx)))
		}

		start = idx + 1
	}

	return append(parts, model.FilePages(fileinput.SingleFieldName, model.From(start)))
}

// AddPage inserts pageCount blank pages before the page at insertIndex, or after the last page
// when insertIndex is AppendIndex. Empty layout fields default to A4 portrait.
func (c *Client) AddPage(ctx context.Context, input fileinput.Input, insertIndex, pageCount int, layout model.PageLayout, opts ...CallOption) ([]byte, error) {
	if pageCount < 1 {
		return nil, errors.WithStack(ErrInvalidCount)
	}

	if insertIndex < AppendIndex {
		return nil, errors.WithStack(ErrInvalidPosition)
	}

	if layout.Size == "" {
		layout.Size = DefaultPageSize
	}

	if layout.Orientation == "" {
		layout.Orientation = DefaultOrientation
	}

	newPages := model.NewPagePart(pageCount, layout)
	file := fileinput.SingleFieldName

	var parts []model.Part

	switch insertIndex {
	case AppendIndex:
		parts = []model.Part{model.FilePart(file), newPages}
	case 0:
		parts = []model.Part{newPages, model.FilePart(file)}
	default:
		parts = []model.Part{
			model.FilePages(file, model.Range(0, insertIndex)),
			newPages,
			model.FilePages(file, model.From(insertIndex)),
		}
	}

	return run(ctx, c.newPipeline("add-page", []fileinput.Input{input}).SetParts(parts...), opts)
}
