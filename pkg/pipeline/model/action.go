package model

import "encoding/json"

// ActionType is the wire discriminator of an action.
type ActionType string

const (
	ActionConvertToPDF       ActionType = "convert-to-pdf"
	ActionFlattenAnnotations ActionType = "flatten"
	ActionRotate             ActionType = "rotate"
	ActionOCR                ActionType = "ocr"
	ActionWatermark          ActionType = "watermark"
	ActionApplyRedactions    ActionType = "applyRedactions"
)

// Action is one entry of the instruction document "actions" list.
type Action interface {
	Type() ActionType
	isAction()
}

// ConvertToPDFAction converts the input to PDF.
type ConvertToPDFAction struct{}

func (ConvertToPDFAction) Type() ActionType { return ActionConvertToPDF }

func (ConvertToPDFAction) isAction() {}

func (a ConvertToPDFAction) MarshalJSON() ([]byte, error) {
	return marshalType(a.Type())
}

// FlattenAction flattens annotations and form fields.
type FlattenAction struct{}

func (FlattenAction) Type() ActionType { return ActionFlattenAnnotations }

func (FlattenAction) isAction() {}

func (a FlattenAction) MarshalJSON() ([]byte, error) {
	return marshalType(a.Type())
}

// ApplyRedactionsAction applies the redaction annotations already present in the document.
type ApplyRedactionsAction struct{}

func (ApplyRedactionsAction) Type() ActionType { return ActionApplyRedactions }

func (ApplyRedactionsAction) isAction() {}

func (a ApplyRedactionsAction) MarshalJSON() ([]byte, error) {
	return marshalType(a.Type())
}

// RotateAction rotates pages clockwise.
type RotateAction struct {
	RotateBy    int   `json:"rotateBy"`
	PageIndexes []int `json:"pageIndexes,omitempty"`
}

func (RotateAction) Type() ActionType { return ActionRotate }

func (RotateAction) isAction() {}

func (a RotateAction) MarshalJSON() ([]byte, error) {
	type fields RotateAction

	return json.Marshal(struct {
		Type ActionType `json:"type"`
		fields
	}{a.Type(), fields(a)})
}

// OCRAction runs text recognition with the given service language code.
type OCRAction struct {
	Language string `json:"language"`
}

func (OCRAction) Type() ActionType { return ActionOCR }

func (OCRAction) isAction() {}

func (a OCRAction) MarshalJSON() ([]byte, error) {
	type fields OCRAction

	return json.Marshal(struct {
		Type ActionType `json:"type"`
		fields
	}{a.Type(), fields(a)})
}

// WatermarkAction stamps either a text or an image on every page.
type WatermarkAction struct {
	Text     string  `json:"text,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Opacity  float64 `json:"opacity"`
	Position string  `json:"position"`
}

func (WatermarkAction) Type() ActionType { return ActionWatermark }

func (WatermarkAction) isAction() {}

func (a WatermarkAction) MarshalJSON() ([]byte, error) {
	type fields WatermarkAction

	return json.Marshal(struct {
		Type ActionType `json:"type"`
		fields
	}{a.Type(), fields(a)})
}

func marshalType(t ActionType) ([]byte, error) {
	return json.Marshal(struct {
		Type ActionType `json:"type"`
	}{t})
}
