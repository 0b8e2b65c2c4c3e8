package measure

import "time"

// Measure collects one metric per pipeline name.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric aggregates the dispatches of a pipeline.
type Metric interface {
	AddDispatch(elapsed time.Duration, sent int64, received int, err error)
	Dispatches() int64
	Failures() int64
	AVGDuration() time.Duration
	TotalDuration() time.Duration
	BytesSent() int64
	BytesReceived() int64
}
