package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/askiada/go-dws/internal/logging"
	"github.com/askiada/go-dws/pkg/fileinput"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

// BuildPath is the endpoint receiving the instruction document.
const BuildPath = "/build"

// Poster sends a request to the processing service and returns the raw response body.
type Poster interface {
	Post(ctx context.Context, path string, req model.Request) ([]byte, error)
}

// Pipeline is a document processing job sent in a single request.
type Pipeline struct {
	poster    Poster
	inputs    []fileinput.Input
	actions   []model.Action
	parts     []model.Part
	output    model.OutputOptions
	hooks     []model.PipelineOption
	fs        afero.Fs
	logger    *log.Logger
	name      string
	threshold int64
	err       error
}

// New creates a pipeline over the given inputs.
func New(poster Poster, inputs []fileinput.Input, opts ...Option) *Pipeline {
	pipe := &Pipeline{
		poster:    poster,
		inputs:    slices.Clone(inputs),
		actions:   []model.Action{},
		fs:        afero.NewOsFs(),
		logger:    logging.Discard(),
		name:      "build",
		threshold: fileinput.DefaultStreamThreshold,
	}

	for _, opt := range opts {
		opt(pipe)
	}

	pipe.logger = pipe.logger.With("pipeline", pipe.name)

	switch {
	case poster == nil:
		pipe.err = ErrPosterMustBeSet
	case len(inputs) == 0:
		pipe.err = ErrInputMustBeSet
	}

	for _, hook := range pipe.hooks {
		if pipe.err != nil {
			break
		}

		if err := hook.New(); err != nil {
			pipe.err = errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe
}

// AddStep appends a tool step. Steps run in insertion order.
func (p *Pipeline) AddStep(tool Tool, opts ToolOptions) *Pipeline {
	if p.err != nil {
		return p
	}

	action, err := MapAction(tool, opts)
	if err != nil {
		p.err = errors.Wrapf(err, "unable to add step %d", len(p.actions))

		return p
	}

	p.actions = append(p.actions, action)

	return p
}

// SetOutputOptions merges options into the output object.
// Later keys win, "metadata" entries are merged key by key.
func (p *Pipeline) SetOutputOptions(opts model.OutputOptions) *Pipeline {
	if p.err != nil {
		return p
	}

	p.output = p.output.Merge(opts)

	return p
}

// SetParts replaces the default parts, one per uploaded file, with custom ones.
func (p *Pipeline) SetParts(parts ...model.Part) *Pipeline {
	if p.err != nil {
		return p
	}

	p.parts = slices.Clone(parts)

	return p
}

// Err returns the first error raised while building the pipeline.
func (p *Pipeline) Err() error {
	return p.err
}

// Instructions returns the instruction document as it would be sent.
func (p *Pipeline) Instructions() (*model.Instructions, error) {
	if p.err != nil {
		return nil, p.err
	}

	return p.instructions(fileinput.FieldNames(len(p.inputs)))
}

func (p *Pipeline) instructions(fields []string) (*model.Instructions, error) {
	parts := p.parts
	if parts == nil {
		parts = make([]model.Part, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, model.FilePart(field))
		}
	}

	for i, part := range parts {
		switch {
		case part.File != "":
			if !slices.Contains(fields, part.File) {
				return nil, errors.Wrapf(ErrUnknownPartFile, "part %d references %q", i, part.File)
			}
		case part.Page != model.NewPage:
			return nil, errors.Wrapf(ErrEmptyPart, "part %d", i)
		}
	}

	return &model.Instructions{
		Parts:   slices.Clone(parts),
		Actions: slices.Clone(p.actions),
		Output:  p.output.Merge(nil),
	}, nil
}

// Execute sends the pipeline and returns the processed document.
// Errors returned by the poster are returned unchanged.
func (p *Pipeline) Execute(ctx context.Context) ([]byte, error) {
	return p.execute(ctx)
}

// ExecuteTo sends the pipeline and writes the processed document to outputPath.
// Filesystem errors are returned unchanged.
func (p *Pipeline) ExecuteTo(ctx context.Context, outputPath string) error {
	data, err := p.execute(ctx)
	if err != nil {
		return err
	}

	return fileinput.Save(p.fs, data, outputPath)
}

func (p *Pipeline) execute(ctx context.Context) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}

	doc, err := p.instructions(fileinput.FieldNames(len(p.inputs)))
	if err != nil {
		return nil, err
	}

	contents, err := p.normalizer().NormalizeAll(ctx, p.inputs)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := fileinput.CloseAll(contents); err != nil {
			p.logger.Warn("unable to close input", "err", err)
		}
	}()

	info := &model.DispatchInfo{
		Name:         p.name,
		Instructions: doc,
		Slots:        fileinput.Bind(contents),
	}

	for _, hook := range p.hooks {
		if err := hook.BeforeDispatch(info); err != nil {
			return nil, errors.Wrap(err, "unable to run before dispatch hook")
		}
	}

	p.logger.Debug("dispatching", "files", len(info.Slots), "actions", len(doc.Actions))

	startTime := time.Now()
	resp, postErr := p.poster.Post(ctx, BuildPath, model.Request{JSON: doc, Files: info.Slots})
	result := &model.DispatchResult{
		Elapsed:      time.Since(startTime),
		ResponseSize: len(resp),
		Err:          postErr,
	}

	for _, hook := range p.hooks {
		if err := hook.AfterDispatch(info, result); err != nil {
			if postErr != nil {
				p.logger.Warn("after dispatch hook failed", "err", err)

				continue
			}

			return nil, errors.Wrap(err, "unable to run after dispatch hook")
		}
	}

	if postErr != nil {
		return nil, postErr
	}

	p.logger.Debug("dispatched", "elapsed", result.Elapsed, "size", result.ResponseSize)

	if err := p.finishRun(); err != nil {
		return nil, err
	}

	return resp, nil
}

func (p *Pipeline) finishRun() error {
	for _, hook := range p.hooks {
		err := hook.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
