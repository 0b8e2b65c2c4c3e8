package dws

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/askiada/go-dws/internal/logging"
	"github.com/askiada/go-dws/pkg/fileinput"
	"github.com/askiada/go-dws/pkg/pipeline"
	"github.com/askiada/go-dws/pkg/pipeline/model"
	"github.com/askiada/go-dws/pkg/transport"
)

// DefaultSplitConcurrency is the number of split requests in flight at once.
const DefaultSplitConcurrency = 4

// Client sends document processing jobs.
// A Client is safe for concurrent use, the pipelines it builds are not.
type Client struct {
	poster           pipeline.Poster
	fs               afero.Fs
	logger           *log.Logger
	hooks            []model.PipelineOption
	threshold        int64
	splitConcurrency int
}

// Option configures a Client.
type Option func(c *Client)

// WithPoster replaces the HTTP transport.
func WithPoster(poster pipeline.Poster) Option {
	return func(c *Client) {
		c.poster = poster
	}
}

// WithFs sets the filesystem used to read inputs and write results.
func WithFs(fs afero.Fs) Option {
	return func(c *Client) {
		c.fs = fs
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHooks registers hooks on every pipeline built by the client.
// Hooks shared this way must be safe for concurrent use.
func WithHooks(hooks ...model.PipelineOption) Option {
	return func(c *Client) {
		c.hooks = append(c.hooks, hooks...)
	}
}

// WithStreamThreshold sets the file size above which path inputs are streamed.
func WithStreamThreshold(threshold int64) Option {
	return func(c *Client) {
		c.threshold = threshold
	}
}

// WithSplitConcurrency bounds the number of concurrent split requests.
func WithSplitConcurrency(concurrency int) Option {
	return func(c *Client) {
		c.splitConcurrency = concurrency
	}
}

// New creates a client. Without WithPoster, requests are sent with a transport built from cfg.
func New(cfg transport.Config, opts ...Option) *Client {
	client := &Client{
		fs:               afero.NewOsFs(),
		logger:           logging.Discard(),
		threshold:        fileinput.DefaultStreamThreshold,
		splitConcurrency: DefaultSplitConcurrency,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.poster == nil {
		client.poster = transport.New(cfg, transport.WithLogger(client.logger))
	}

	if client.splitConcurrency < 1 {
		client.splitConcurrency = 1
	}

	return client
}

// Close releases the transport connections.
func (c *Client) Close() {
	if closer, ok := c.poster.(interface{ Close() }); ok {
		closer.Close()
	}
}

// Build starts a multi-step pipeline over inputs.
func (c *Client) Build(inputs ...fileinput.Input) *pipeline.Pipeline {
	return c.BuildWith(inputs)
}

// BuildWith starts a multi-step pipeline over inputs with extra pipeline options.
func (c *Client) BuildWith(inputs []fileinput.Input, opts ...pipeline.Option) *pipeline.Pipeline {
	return c.newPipeline("build", inputs, opts...)
}

func (c *Client) newPipeline(name string, inputs []fileinput.Input, opts ...pipeline.Option) *pipeline.Pipeline {
	base := []pipeline.Option{
		pipeline.WithName(name),
		pipeline.WithFs(c.fs),
		pipeline.WithLogger(c.logger),
		pipeline.WithStreamThreshold(c.threshold),
		pipeline.WithHooks(c.hooks...),
	}

	return pipeline.New(c.poster, inputs, append(base, opts...)...)
}
