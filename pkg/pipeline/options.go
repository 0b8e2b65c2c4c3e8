package pipeline

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/askiada/go-dws/pkg/fileinput"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

// Option configures a Pipeline.
type Option func(p *Pipeline)

// WithName sets the name reported to hooks and logs.
func WithName(name string) Option {
	return func(p *Pipeline) {
		p.name = name
	}
}

// WithFs sets the filesystem used to read path inputs and to save results.
func WithFs(fs afero.Fs) Option {
	return func(p *Pipeline) {
		p.fs = fs
	}
}

// WithStreamThreshold sets the file size above which path inputs are streamed.
func WithStreamThreshold(threshold int64) Option {
	return func(p *Pipeline) {
		p.threshold = threshold
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithHooks registers hooks run around the dispatch.
func WithHooks(hooks ...model.PipelineOption) Option {
	return func(p *Pipeline) {
		p.hooks = append(p.hooks, hooks...)
	}
}

func (p *Pipeline) normalizer() *fileinput.Normalizer {
	return fileinput.NewNormalizer(
		fileinput.WithFs(p.fs),
		fileinput.WithStreamThreshold(p.threshold),
		fileinput.WithLogger(p.logger),
	)
}
