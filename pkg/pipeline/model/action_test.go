package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dws/pkg/pipeline/model"
)

func TestActionMarshalJSON(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		action model.Action
		want   string
	}{
		"convert": {
			action: model.ConvertToPDFAction{},
			want:   `{"type":"convert-to-pdf"}`,
		},
		"flatten": {
			action: model.FlattenAction{},
			want:   `{"type":"flatten"}`,
		},
		"redactions": {
			action: model.ApplyRedactionsAction{},
			want:   `{"type":"applyRedactions"}`,
		},
		"rotate all pages": {
			action: model.RotateAction{RotateBy: 90},
			want:   `{"type":"rotate","rotateBy":90}`,
		},
		"rotate some pages": {
			action: model.RotateAction{RotateBy: 180, PageIndexes: []int{0, 2}},
			want:   `{"type":"rotate","rotateBy":180,"pageIndexes":[0,2]}`,
		},
		"ocr": {
			action: model.OCRAction{Language: "deu"},
			want:   `{"type":"ocr","language":"deu"}`,
		},
		"text watermark": {
			action: model.WatermarkAction{Text: "DRAFT", Width: 200, Height: 100, Opacity: 0.5, Position: "center"},
			want:   `{"type":"watermark","text":"DRAFT","width":200,"height":100,"opacity":0.5,"position":"center"}`,
		},
		"image watermark": {
			action: model.WatermarkAction{ImageURL: "https://example.com/logo.png", Width: 10, Height: 20, Opacity: 1, Position: "top-left"},
			want:   `{"type":"watermark","image_url":"https://example.com/logo.png","width":10,"height":20,"opacity":1,"position":"top-left"}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(tc.action)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(got))
		})
	}
}

func TestInstructionsMarshalJSON(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		doc  model.Instructions
		want string
	}{
		"no output": {
			doc: model.Instructions{
				Parts:   []model.Part{model.FilePart("file")},
				Actions: []model.Action{},
			},
			want: `{"parts":[{"file":"file"}],"actions":[]}`,
		},
		"page range and output": {
			doc: model.Instructions{
				Parts:   []model.Part{model.FilePages("file", model.Range(0, 3)), model.FilePages("file", model.From(5))},
				Actions: []model.Action{model.FlattenAction{}},
				Output:  model.OutputOptions{"type": "pdf"},
			},
			want: `{"parts":[{"file":"file","pages":{"start":0,"end":3}},{"file":"file","pages":{"start":5}}],"actions":[{"type":"flatten"}],"output":{"type":"pdf"}}`,
		},
		"new page": {
			doc: model.Instructions{
				Parts:   []model.Part{model.NewPagePart(2, model.PageLayout{Size: "A4", Orientation: "portrait"})},
				Actions: []model.Action{},
			},
			want: `{"parts":[{"page":"new","pageCount":2,"layout":{"size":"A4","orientation":"portrait"}}],"actions":[]}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(tc.doc)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(got))
		})
	}
}
