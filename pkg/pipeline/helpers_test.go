package pipeline_test

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dws/pkg/pipeline/model"
)

type recordedRequest struct {
	path      string
	json      string
	files     map[string]string
	filenames map[string]string
	readers   []io.Reader
}

type fakePoster struct {
	mu       sync.Mutex
	resp     []byte
	err      error
	requests []recordedRequest
}

func (f *fakePoster) Post(_ context.Context, path string, req model.Request) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := json.Marshal(req.JSON)
	if err != nil {
		return nil, err
	}

	rec := recordedRequest{
		path:      path,
		json:      string(doc),
		files:     make(map[string]string),
		filenames: make(map[string]string),
	}

	for _, slot := range req.Files {
		data, err := io.ReadAll(slot.Content)
		if err != nil {
			return nil, err
		}

		rec.files[slot.FieldName] = string(data)
		rec.filenames[slot.FieldName] = slot.Filename
		rec.readers = append(rec.readers, slot.Content)
	}

	f.requests = append(f.requests, rec)

	if f.err != nil {
		return nil, f.err
	}

	return f.resp, nil
}

func (f *fakePoster) onlyRequest(t *testing.T) recordedRequest {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.Len(t, f.requests, 1)

	return f.requests[0]
}

type recordingHook struct {
	calls     []string
	info      *model.DispatchInfo
	result    *model.DispatchResult
	beforeErr error
}

func (h *recordingHook) New() error {
	h.calls = append(h.calls, "new")

	return nil
}

func (h *recordingHook) BeforeDispatch(info *model.DispatchInfo) error {
	h.calls = append(h.calls, "before")
	h.info = info

	return h.beforeErr
}

func (h *recordingHook) AfterDispatch(_ *model.DispatchInfo, result *model.DispatchResult) error {
	h.calls = append(h.calls, "after")
	h.result = result

	return nil
}

func (h *recordingHook) Finish() error {
	h.calls = append(h.calls, "finish")

	return nil
}
