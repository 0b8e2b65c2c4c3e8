// Package definition reads pipeline definition files.
//
// A definition lists the tool steps of a pipeline and its output options, in YAML or JSON:
//
//	steps:
//	  - tool: convert-to-pdf
//	  - tool: ocr-pdf
//	    options:
//	      language: german
//	  - tool: watermark-pdf
//	    options:
//	      text: DRAFT
//	      opacity: 0.5
//	output:
//	  metadata:
//	    title: Report
package definition

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-dws/pkg/pipeline"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

var ErrInvalidDefinition = errors.New("invalid pipeline definition")

const schema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"steps": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": false,
				"required": ["tool"],
				"properties": {
					"tool": {"type": "string", "minLength": 1},
					"options": {"type": ["object", "null"]}
				}
			}
		},
		"output": {"type": "object"}
	}
}`

// Step is a tool step of a definition.
type Step struct {
	Tool    pipeline.Tool
	Options pipeline.ToolOptions
}

// Definition is a parsed pipeline definition.
type Definition struct {
	Steps  []Step
	Output model.OutputOptions
}

type rawDefinition struct {
	Steps []struct {
		Tool    string          `json:"tool"`
		Options json.RawMessage `json:"options"`
	} `json:"steps"`
	Output map[string]any `json:"output"`
}

// Load reads and parses the definition file at path.
func Load(fs afero.Fs, path string) (*Definition, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return def, nil
}

// Parse parses a YAML or JSON definition and checks every step against its tool.
func Parse(data []byte) (*Definition, error) {
	var doc any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unable to parse definition")
	}

	if doc == nil {
		doc = map[string]any{}
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode definition")
	}

	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "unable to validate definition")
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}

		return nil, errors.Wrap(ErrInvalidDefinition, strings.Join(details, "; "))
	}

	var raw rawDefinition

	if err := json.Unmarshal(encoded, &raw); err != nil {
		return nil, errors.Wrap(err, "unable to decode definition")
	}

	def := &Definition{Output: raw.Output}

	for i, step := range raw.Steps {
		tool := pipeline.Tool(step.Tool)

		opts, err := pipeline.DecodeToolOptions(tool, step.Options)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}

		if _, err := pipeline.MapAction(tool, opts); err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}

		def.Steps = append(def.Steps, Step{Tool: tool, Options: opts})
	}

	return def, nil
}

// Apply adds the steps and output options of the definition to pipe.
func (d *Definition) Apply(pipe *pipeline.Pipeline) *pipeline.Pipeline {
	for _, step := range d.Steps {
		pipe = pipe.AddStep(step.Tool, step.Options)
	}

	if len(d.Output) > 0 {
		pipe = pipe.SetOutputOptions(d.Output)
	}

	return pipe
}
