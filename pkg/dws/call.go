package dws

import (
	"context"

	"github.com/askiada/go-dws/pkg/pipeline"
)

// CallOption configures a one-call operation.
type CallOption func(cfg *callConfig)

type callConfig struct {
	outputPath string
}

// SaveTo writes the result to path instead of returning it.
func SaveTo(path string) CallOption {
	return func(cfg *callConfig) {
		cfg.outputPath = path
	}
}

func newCallConfig(opts []CallOption) callConfig {
	cfg := callConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// run executes pipe, returning the document or writing it when SaveTo is set.
func run(ctx context.Context, pipe *pipeline.Pipeline, opts []CallOption) ([]byte, error) {
	cfg := newCallConfig(opts)
	if cfg.outputPath != "" {
		return nil, pipe.ExecuteTo(ctx, cfg.outputPath)
	}

	return pipe.Execute(ctx)
}
