package measure

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
)

// DefaultMeasure is a Measure safe for concurrent pipelines.
type DefaultMeasure struct {
	mu    sync.Mutex
	steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		steps: make(map[string]Metric),
	}
}

// AddMetric returns the metric registered under name, creating it when missing.
func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.steps[name]; ok {
		return mt
	}

	mt := &DefaultMetric{}
	m.steps[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.steps[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return maps.Clone(m.steps)
}

// Summary renders one line per metric, sorted by name.
func Summary(msr Measure) string {
	all := msr.AllMetrics()

	var sb strings.Builder

	for _, name := range slices.Sorted(maps.Keys(all)) {
		mt := all[name]
		fmt.Fprintf(&sb, "%s: %d dispatch(es), %d failed, avg %s, sent %s, received %s\n",
			name,
			mt.Dispatches(),
			mt.Failures(),
			mt.AVGDuration(),
			humanize.Bytes(uint64(mt.BytesSent())),
			humanize.Bytes(uint64(mt.BytesReceived())),
		)
	}

	return sb.String()
}

var _ Measure = (*DefaultMeasure)(nil)
