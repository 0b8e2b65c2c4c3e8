package measure

import (
	"sync"
	"time"
)

type DefaultMetric struct {
	mu            sync.Mutex
	elapsed       time.Duration
	total         int64
	failures      int64
	bytesSent     int64
	bytesReceived int64
}

// AddDispatch records one remote call. Negative sent sizes are unknown and ignored.
func (mt *DefaultMetric) AddDispatch(elapsed time.Duration, sent int64, received int, err error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.total++
	mt.elapsed += elapsed

	if sent > 0 {
		mt.bytesSent += sent
	}

	mt.bytesReceived += int64(received)

	if err != nil {
		mt.failures++
	}
}

func (mt *DefaultMetric) Dispatches() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

func (mt *DefaultMetric) Failures() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.failures
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.elapsed) / float64(mt.total)))
}

func (mt *DefaultMetric) TotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return round(mt.elapsed)
}

func (mt *DefaultMetric) BytesSent() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.bytesSent
}

func (mt *DefaultMetric) BytesReceived() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.bytesReceived
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
