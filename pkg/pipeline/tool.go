package pipeline

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/pkg/errors"

	"github.com/askiada/go-dws/pkg/pipeline/model"
)

// Tool is a user-facing tool name.
type Tool string

const (
	ToolConvertToPDF       Tool = "convert-to-pdf"
	ToolFlattenAnnotations Tool = "flatten-annotations"
	ToolRotatePages        Tool = "rotate-pages"
	ToolOCR                Tool = "ocr-pdf"
	ToolWatermark          Tool = "watermark-pdf"
	ToolApplyRedactions    Tool = "apply-redactions"
)

const (
	DefaultOCRLanguage       = "english"
	DefaultWatermarkWidth    = 200
	DefaultWatermarkHeight   = 100
	DefaultWatermarkOpacity  = 1.0
	DefaultWatermarkPosition = "center"
)

// ocrLanguages maps user-facing languages to service language codes.
// Languages missing from the map are sent unchanged.
var ocrLanguages = map[string]string{
	"german": "deu",
}

// Tools returns every supported tool.
func Tools() []Tool {
	return []Tool{
		ToolConvertToPDF,
		ToolFlattenAnnotations,
		ToolRotatePages,
		ToolOCR,
		ToolWatermark,
		ToolApplyRedactions,
	}
}

// ToolOptions are the options of a tool step.
// Tools without options take nil.
type ToolOptions interface {
	toolOptions()
}

// RotateOptions configures ToolRotatePages.
type RotateOptions struct {
	Degrees     int   `json:"degrees"`
	PageIndexes []int `json:"page_indexes,omitempty"`
}

func (RotateOptions) toolOptions() {}

// OCROptions configures ToolOCR.
type OCROptions struct {
	Language string `json:"language,omitempty"`
}

func (OCROptions) toolOptions() {}

// WatermarkOptions configures ToolWatermark.
// Zero values are replaced with the defaults, a nil Opacity means fully opaque.
type WatermarkOptions struct {
	Text     string   `json:"text,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
	Position string   `json:"position,omitempty"`
}

func (WatermarkOptions) toolOptions() {}

// MapAction translates a tool name and its options into a wire action.
func MapAction(tool Tool, opts ToolOptions) (model.Action, error) {
	switch tool {
	case ToolConvertToPDF:
		return model.ConvertToPDFAction{}, expectNoOptions(tool, opts)
	case ToolFlattenAnnotations:
		return model.FlattenAction{}, expectNoOptions(tool, opts)
	case ToolApplyRedactions:
		return model.ApplyRedactionsAction{}, expectNoOptions(tool, opts)
	case ToolRotatePages:
		rotate, err := optionsAs[RotateOptions](tool, opts)
		if err != nil {
			return nil, err
		}

		return model.RotateAction{RotateBy: rotate.Degrees, PageIndexes: slices.Clone(rotate.PageIndexes)}, nil
	case ToolOCR:
		ocr, err := optionsAs[OCROptions](tool, opts)
		if err != nil {
			return nil, err
		}

		return model.OCRAction{Language: ocrLanguage(ocr.Language)}, nil
	case ToolWatermark:
		watermark, err := optionsAs[WatermarkOptions](tool, opts)
		if err != nil {
			return nil, err
		}

		return watermarkAction(watermark), nil
	default:
		return nil, errors.Wrapf(ErrUnknownTool, "%q", tool)
	}
}

// DecodeToolOptions decodes the JSON options of a tool.
// Unknown fields are rejected, an empty or null raw value gives the zero options.
func DecodeToolOptions(tool Tool, raw json.RawMessage) (ToolOptions, error) {
	switch tool {
	case ToolConvertToPDF, ToolFlattenAnnotations, ToolApplyRedactions:
		return nil, nil
	case ToolRotatePages:
		return decodeOptions[RotateOptions](tool, raw)
	case ToolOCR:
		return decodeOptions[OCROptions](tool, raw)
	case ToolWatermark:
		return decodeOptions[WatermarkOptions](tool, raw)
	default:
		return nil, errors.Wrapf(ErrUnknownTool, "%q", tool)
	}
}

func decodeOptions[T ToolOptions](tool Tool, raw json.RawMessage) (ToolOptions, error) {
	var opts T

	if len(raw) == 0 || string(raw) == "null" {
		return opts, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&opts); err != nil {
		return nil, errors.Wrapf(err, "unable to decode %s options", tool)
	}

	return opts, nil
}

func expectNoOptions(tool Tool, opts ToolOptions) error {
	if opts == nil {
		return nil
	}

	return errors.Wrapf(ErrOptionsMismatch, "%s takes no options, got %T", tool, opts)
}

// optionsAs accepts nil, a value or a pointer of the expected options type.
func optionsAs[T ToolOptions](tool Tool, opts ToolOptions) (T, error) {
	var zero T

	switch val := opts.(type) {
	case nil:
		return zero, nil
	case T:
		return val, nil
	case *T:
		if val == nil {
			return zero, nil
		}

		return *val, nil
	default:
		return zero, errors.Wrapf(ErrOptionsMismatch, "%s expects %T, got %T", tool, zero, opts)
	}
}

func ocrLanguage(language string) string {
	if language == "" {
		language = DefaultOCRLanguage
	}

	if code, ok := ocrLanguages[language]; ok {
		return code
	}

	return language
}

func watermarkAction(opts WatermarkOptions) model.WatermarkAction {
	action := model.WatermarkAction{
		Text:     opts.Text,
		ImageURL: opts.ImageURL,
		Width:    opts.Width,
		Height:   opts.Height,
		Opacity:  DefaultWatermarkOpacity,
		Position: opts.Position,
	}

	if action.Width == 0 {
		action.Width = DefaultWatermarkWidth
	}

	if action.Height == 0 {
		action.Height = DefaultWatermarkHeight
	}

	if opts.Opacity != nil {
		action.Opacity = *opts.Opacity
	}

	if action.Position == "" {
		action.Position = DefaultWatermarkPosition
	}

	return action
}
