package dws_test

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dws/pkg/dws"
	"github.com/askiada/go-dws/pkg/fileinput"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	poster := &fakePoster{}
	client, _ := newClient(t, poster)

	got, err := client.Merge(t.Context(), []fileinput.Input{
		fileinput.Path("/docs/in.pdf"),
		fileinput.Bytes("second"),
		fileinput.Stream{Reader: strings.NewReader("third")},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-result", string(got))

	req := poster.onlyRequest(t)
	assert.JSONEq(t, `{"parts":[{"file":"file0"},{"file":"file1"},{"file":"file2"}],"actions":[]}`, req.json)
	assert.Equal(t, map[string]string{"file0": "input", "file1": "second", "file2": "third"}, req.files)
}

func TestMergeInsufficientInputs(t *testing.T) {
	t.Parallel()

	for name, inputs := range map[string][]fileinput.Input{
		"none": nil,
		"one":  {fileinput.Path("/docs/in.pdf")},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			poster := &fakePoster{}
			client, _ := newClient(t, poster)

			_, err := client.Merge(t.Context(), inputs)
			require.ErrorIs(t, err, dws.ErrInsufficientInputs)
			assert.Empty(t, poster.requests)
		})
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    fileinput.Input
		ranges   []model.PageRange
		wantJSON []string
	}{
		"default range": {
			input:    fileinput.Path("/docs/in.pdf"),
			wantJSON: []string{`{"parts":[{"file":"file","pages":{"start":0,"end":1}}],"actions":[]}`},
		},
		"several ranges": {
			input:  fileinput.Path("/docs/in.pdf"),
			ranges: []model.PageRange{model.Range(0, 2), model.Range(2, 5), model.From(5)},
			wantJSON: []string{
				`{"parts":[{"file":"file","pages":{"start":0,"end":2}}],"actions":[]}`,
				`{"parts":[{"file":"file","pages":{"start":2,"end":5}}],"actions":[]}`,
				`{"parts":[{"file":"file","pages":{"start":5}}],"actions":[]}`,
			},
		},
		"stream read once": {
			input:  fileinput.Stream{Reader: strings.NewReader("input"), Name: "in.pdf"},
			ranges: []model.PageRange{model.Range(0, 1), model.Range(1, 2)},
			wantJSON: []string{
				`{"parts":[{"file":"file","pages":{"start":0,"end":1}}],"actions":[]}`,
				`{"parts":[{"file":"file","pages":{"start":1,"end":2}}],"actions":[]}`,
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			poster := &fakePoster{respond: func(doc string) ([]byte, error) { return []byte(doc), nil }}
			client, _ := newClient(t, poster)

			got, err := client.Split(t.Context(), tc.input, tc.ranges, nil)
			require.NoError(t, err)
			require.Len(t, got, len(tc.wantJSON))

			for i, want := range tc.wantJSON {
				assert.JSONEq(t, want, string(got[i]))
			}

			for _, req := range poster.requests {
				assert.Equal(t, map[string]string{"file": "input"}, req.files)
			}
		})
	}
}

func TestSplitToFiles(t *testing.T) {
	t.Parallel()

	poster := &fakePoster{respond: func(doc string) ([]byte, error) {
		if strings.Contains(doc, `"start":0`) {
			return []byte("first"), nil
		}

		return []byte("second"), nil
	}}
	client, fs := newClient(t, poster)

	got, err := client.Split(t.Context(), fileinput.Path("/docs/in.pdf"),
		[]model.PageRange{model.Range(0, 1), model.From(1)},
		[]string{"/out/a.pdf", "/out/b.pdf"},
	)
	require.NoError(t, err)
	assert.Empty(t, got)

	for path, want := range map[string]string{"/out/a.pdf": "first", "/out/b.pdf": "second"} {
		data, err := afero.ReadFile(fs, path)
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestSplitLengthMismatch(t *testing.T) {
	t.Parallel()

	poster := &fakePoster{}
	client, _ := newClient(t, poster)

	_, err := client.Split(t.Context(), fileinput.Path("/docs/in.pdf"),
		[]model.PageRange{model.Range(0, 1), model.From(1)},
		[]string{"/out/a.pdf"},
	)
	require.ErrorIs(t, err, dws.ErrLengthMismatch)
	assert.Empty(t, poster.requests)
}

func TestSplitError(t *testing.T) {
	t.Parallel()

	poster := &fakePoster{respond: func(doc string) ([]byte, error) {
		if strings.Contains(doc, `"start":1`) {
			return nil, assert.AnError
		}

		return []byte("ok"), nil
	}}
	client, _ := newClient(t, poster)

	_, err := client.Split(t.Context(), fileinput.Path("/docs/in.pdf"),
		[]model.PageRange{model.Range(0, 1), model.Range(1, 2), model.Range(2, 3)},
		nil,
	)
	assert.Same(t, assert.AnError, err)
}

func TestDeletePages(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		indexes   []int
		wantParts string
	}{
		"first page": {
			indexes:   []int{0},
			wantParts: `[{"file":"file","pages":{"start":1}}]`,
		},
		"unsorted with duplicates": {
			indexes:   []int{3, 1, 1},
			wantParts: `[{"file":"file","pages":{"start":0,"end":1}},{"file":"file","pages":{"start":2,"end":3}},{"file":"file","pages":{"start":4}}]`,
		},
		"consecutive pages": {
			indexes:   []int{2, 3, 4},
			wantParts: `[{"file":"file","pages":{"start":0,"end":2}},{"file":"file","pages":{"start":5}}]`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			poster := &fakePoster{}
			client, _ := newClient(t, poster)

			_, err := client.DeletePages(t.Context(), fileinput.Path("/docs/in.pdf"), tc.indexes)
			require.NoError(t, err)
			assert.JSONEq(t, `{"parts":`+tc.wantParts+`,"actions":[]}`, poster.onlyRequest(t).json)
		})
	}
}

func TestDuplicatePages(t *testing.T) {
	t.Parallel()

	poster := &fakePoster{}
	client, _ := newClient(t, poster)

	_, err := client.DuplicatePages(t.Context(), fileinput.Path("/docs/in.pdf"), []int{0, 0, 2, -1, -2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"parts":[
		{"file":"file","pages":{"start":0,"end":1}},
		{"file":"file","pages":{"start":0,"end":1}},
		{"file":"file","pages":{"start":2,"end":3}},
		{"file":"file","pages":{"start":-1}},
		{"file":"file","pages":{"start":-2,"end":-1}}
	],"actions":[]}`, poster.onlyRequest(t).json)
}

func TestAddPage(t *testing.T) {
	t.Parallel()

	newPages := `{"page":"new","pageCount":2,"layout":{"size":"A4","orientation":"portrait"}}`

	tcs := map[string]struct {
		insertIndex int
		layout      model.PageLayout
		wantParts   string
	}{
		"append": {
			insertIndex: dws.AppendIndex,
			wantParts:   `[{"file":"file"},` + newPages + `]`,
		},
		"prepend": {
			insertIndex: 0,
			wantParts:   `[` + newPages + `,{"file":"file"}]`,
		},
		"middle": {
			insertIndex: 3,
			wantParts:   `[{"file":"file","pages":{"start":0,"end":3}},` + newPages + `,{"file":"file","pages":{"start":3}}]`,
		},
		"custom layout": {
			insertIndex: dws.AppendIndex,
			layout:      model.PageLayout{Size: "Letter", Orientation: "landscape"},
			wantParts:   `[{"file":"file"},{"page":"new","pageCount":2,"layout":{"size":"Letter","orientation":"landscape"}}]`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			poster := &fakePoster{}
			client, _ := newClient(t, poster)

			_, err := client.AddPage(t.Context(), fileinput.Path("/docs/in.pdf"), tc.insertIndex, 2, tc.layout)
			require.NoError(t, err)
			assert.JSONEq(t, `{"parts":`+tc.wantParts+`,"actions":[]}`, poster.onlyRequest(t).json)
		})
	}
}

func TestPageOperationErrors(t *testing.T) {
	t.Parallel()

	input := fileinput.Path("/docs/in.pdf")

	tcs := map[string]struct {
		call    func(ctx context.Context, c *dws.Client) error
		wantErr error
	}{
		"delete without indexes": {
			call: func(ctx context.Context, c *dws.Client) error {
				_, err := c.DeletePages(ctx, input, nil)
				return err
			},
			wantErr: dws.ErrEmptyIndexes,
		},
		"delete negative index": {
			call: func(ctx context.Context, c *dws.Client) error {
				_, err := c.DeletePages(ctx, input, []int{1, -1})
				return err
			},
			wantErr: dws.ErrNegativeIndexUnsupported,
		},
		"duplicate without indexes": {
			call: func(ctx context.Context, c *dws.Client) error {
				_, err := c.DuplicatePages(ctx, input, []int{})
				return err
			},
			wantErr: dws.ErrEmptyIndexes,
		},
		"add zero pages": {
			call: func(ctx context.Context, c *dws.Client) error {
				_, err := c.AddPage(ctx, input, 0, 0, model.PageLayout{})
				return err
			},
			wantErr: dws.ErrInvalidCount,
		},
		"add at invalid position": {
			call: func(ctx context.Context, c *dws.Client) error {
				_, err := c.AddPage(ctx, input, -2, 1, model.PageLayout{})
				return err
			},
			wantErr: dws.ErrInvalidPosition,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			poster := &fakePoster{}
			client, _ := newClient(t, poster)

			require.ErrorIs(t, tc.call(t.Context(), client), tc.wantErr)
			assert.Empty(t, poster.requests)
		})
	}
}
