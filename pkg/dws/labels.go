package dws

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-dws/pkg/fileinput"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

const (
	labelsOutputKey = "labels"
	rootField       = "(root)"
)

const labelsSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["pages", "label"],
		"properties": {
			"pages": {
				"type": "object",
				"required": ["start"],
				"properties": {
					"start": {"type": "integer"},
					"end": {"type": "integer"}
				}
			},
			"label": {"type": "string", "minLength": 1}
		}
	}
}`

// SetPageLabels assigns labels to page ranges.
func (c *Client) SetPageLabels(ctx context.Context, input fileinput.Input, labels []model.PageLabel, opts ...CallOption) ([]byte, error) {
	if err := validateLabels(labels); err != nil {
		return nil, err
	}

	pipe := c.newPipeline("set-page-labels", []fileinput.Input{input}).
		SetOutputOptions(model.OutputOptions{labelsOutputKey: labels})

	return run(ctx, pipe, opts)
}

func validateLabels(labels []model.PageLabel) error {
	if len(labels) == 0 {
		return errors.Wrap(ErrInvalidLabelConfig, "labels list cannot be empty")
	}

	for i, label := range labels {
		if label.Pages == nil {
			return errors.Wrapf(ErrInvalidLabelConfig, "label configuration %d missing required 'pages' key", i)
		}

		if label.Label == "" {
			return errors.Wrapf(ErrInvalidLabelConfig, "label configuration %d missing required 'label' key", i)
		}
	}

	return nil
}

// ParsePageLabels decodes a JSON or YAML list of label configurations, for example:
//
//   - pages: {start: 0, end: 3}
//     label: Introduction
//   - pages: {start: 3}
//     label: Content
func ParsePageLabels(data []byte) ([]model.PageLabel, error) {
	var raw any

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "unable to parse labels")
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode labels")
	}

	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(labelsSchema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, errors.Wrap(err, "unable to validate labels")
	}

	if !result.Valid() {
		return nil, errors.Wrap(ErrInvalidLabelConfig, labelErrorMessage(result.Errors()[0]))
	}

	var labels []model.PageLabel

	if err := json.Unmarshal(doc, &labels); err != nil {
		return nil, errors.Wrap(err, "unable to decode labels")
	}

	return labels, nil
}

// labelErrorMessage turns a schema violation into a message naming the faulty configuration.
func labelErrorMessage(resultErr gojsonschema.ResultError) string {
	field := resultErr.Field()
	if field == rootField {
		if resultErr.Type() == "array_min_items" {
			return "labels list cannot be empty"
		}

		return "labels must be a list of label configurations"
	}

	index, key, nested := strings.Cut(field, ".")

	switch {
	case !nested && resultErr.Type() == "required":
		return fmt.Sprintf("label configuration %s missing required '%v' key", index, resultErr.Details()["property"])
	case !nested:
		return fmt.Sprintf("label configuration %s must be a mapping", index)
	case strings.HasPrefix(key, "pages"):
		return fmt.Sprintf("label configuration %s 'pages' must be a mapping with 'start' key", index)
	default:
		return fmt.Sprintf("label configuration %s: %s", index, resultErr.Description())
	}
}
