package dws_test

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dws/pkg/dws"
	"github.com/askiada/go-dws/pkg/pipeline/model"
	"github.com/askiada/go-dws/pkg/transport"
)

type recordedRequest struct {
	json  string
	files map[string]string
}

type fakePoster struct {
	mu       sync.Mutex
	respond  func(doc string) ([]byte, error)
	requests []recordedRequest
}

func (f *fakePoster) Post(_ context.Context, _ string, req model.Request) ([]byte, error) {
	doc, err := json.Marshal(req.JSON)
	if err != nil {
		return nil, err
	}

	rec := recordedRequest{json: string(doc), files: make(map[string]string)}

	for _, slot := range req.Files {
		data, err := io.ReadAll(slot.Content)
		if err != nil {
			return nil, err
		}

		rec.files[slot.FieldName] = string(data)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	if f.respond != nil {
		return f.respond(rec.json)
	}

	return []byte("%PDF-result"), nil
}

func (f *fakePoster) onlyRequest(t *testing.T) recordedRequest {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.Len(t, f.requests, 1)

	return f.requests[0]
}

// sortedJSON returns the instruction documents sent, sorted, to compare concurrent requests.
func (f *fakePoster) sortedJSON() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := make([]string, 0, len(f.requests))
	for _, req := range f.requests {
		res = append(res, req.json)
	}

	sort.Strings(res)

	return res
}

func newClient(t *testing.T, poster *fakePoster) (*dws.Client, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/in.pdf", []byte("input"), 0o644))

	client := dws.New(transport.Config{}, dws.WithPoster(poster), dws.WithFs(fs))
	t.Cleanup(client.Close)

	return client, fs
}
