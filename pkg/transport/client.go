package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/askiada/go-dws/internal/logging"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

const (
	// InstructionsField is the multipart field carrying the instruction document.
	InstructionsField = "instructions"
	requestIDHeader   = "X-Request-Id"
	copyBufferSize    = 32 * 1024
)

// Client posts requests to the processing service.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(c *Client)

// WithHTTPClient replaces the HTTP client. Its timeout is left untouched.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client. Empty config fields take their default value.
func New(cfg Config, opts ...Option) *Client {
	cfg = cfg.withDefaults()

	client := &Client{
		cfg:    cfg,
		logger: logging.Discard(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return client
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Post sends req to path and returns the response body of a successful call.
func (c *Client) Post(ctx context.Context, path string, req model.Request) ([]byte, error) {
	if c.cfg.APIKey == "" {
		return nil, &AuthenticationError{
			Message: "API key is required. Set NUTRIENT_API_KEY environment variable or pass it to the client",
		}
	}

	body, contentType, err := c.encode(req)
	if err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		err = errors.Wrap(err, "unable to create request")

		// The multipart writer blocks until its pipe is read or closed.
		if pr, ok := body.(*io.PipeReader); ok {
			pr.CloseWithError(err)
		}

		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	httpReq.Header.Set(requestIDHeader, requestID)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	logger := c.logger.With("request_id", requestID, "path", path)
	logger.Debug("sending request", "files", len(req.Files))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, requestError(err, requestID)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, requestError(err, requestID)
	}

	logger.Debug("received response", "status", resp.StatusCode, "size", humanize.Bytes(uint64(len(data))))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, responseError(resp.StatusCode, data, requestID)
	}

	return data, nil
}

func (c *Client) encode(req model.Request) (io.Reader, string, error) {
	if len(req.Files) == 0 {
		if req.JSON == nil {
			return nil, "", nil
		}

		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", errors.Wrap(err, "unable to encode request")
		}

		return bytes.NewReader(data), "application/json", nil
	}

	var instructions []byte

	if req.JSON != nil {
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", errors.Wrap(err, "unable to encode instructions")
		}

		instructions = data
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(c.writeForm(form, instructions, req))
	}()

	return pr, form.FormDataContentType(), nil
}

func (c *Client) writeForm(form *multipart.Writer, instructions []byte, req model.Request) error {
	if instructions != nil {
		err := form.WriteField(InstructionsField, string(instructions))
		if err != nil {
			return errors.Wrap(err, "unable to write instructions")
		}
	}

	for key, value := range req.Fields {
		err := form.WriteField(key, value)
		if err != nil {
			return errors.Wrapf(err, "unable to write field %s", key)
		}
	}

	buf := make([]byte, copyBufferSize)

	for _, slot := range req.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(slot.FieldName), quoteEscaper.Replace(slot.Filename)))
		header.Set("Content-Type", slot.ContentType)

		part, err := form.CreatePart(header)
		if err != nil {
			return errors.Wrapf(err, "unable to create part %s", slot.FieldName)
		}

		written, err := io.CopyBuffer(part, slot.Content, buf)
		if err != nil {
			return errors.Wrapf(err, "unable to upload %s", slot.Filename)
		}

		c.logger.Debug("uploaded file", "field", slot.FieldName, "size", humanize.Bytes(uint64(written)))
	}

	return form.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func requestError(err error, requestID string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{Message: "request timed out: " + err.Error(), Err: err}
	}

	return &APIError{Message: "request failed: " + err.Error(), RequestID: requestID, Err: err}
}

func responseError(status int, body []byte, requestID string) error {
	text := strings.TrimSpace(string(body))
	details := map[string]any{}
	message := text

	if err := json.Unmarshal(body, &details); err == nil {
		message = firstString(details, "message", "error", "detail")
	} else {
		details = nil
	}

	if message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{
			Message:      fmt.Sprintf("HTTP %d: %s", status, message),
			StatusCode:   status,
			ResponseBody: text,
		}
	case http.StatusUnprocessableEntity:
		return &ValidationError{
			Message:      message,
			Errors:       details,
			StatusCode:   status,
			ResponseBody: text,
		}
	default:
		return &APIError{
			Message:      fmt.Sprintf("HTTP %d: %s", status, message),
			StatusCode:   status,
			ResponseBody: text,
			RequestID:    requestID,
		}
	}
}

func firstString(values map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := values[key].(string); ok && value != "" {
			return value
		}
	}

	return ""
}
