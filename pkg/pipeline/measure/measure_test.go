package measure_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dws/pkg/pipeline/measure"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

func TestDefaultMetric(t *testing.T) {
	t.Parallel()

	mt := measure.NewDefaultMeasure().AddMetric("build")
	assert.Equal(t, time.Duration(0), mt.AVGDuration())

	mt.AddDispatch(2*time.Second, 1000, 500, nil)
	mt.AddDispatch(4*time.Second, -1, 250, assert.AnError)

	assert.Equal(t, int64(2), mt.Dispatches())
	assert.Equal(t, int64(1), mt.Failures())
	assert.Equal(t, 3*time.Second, mt.AVGDuration())
	assert.Equal(t, 6*time.Second, mt.TotalDuration())
	assert.Equal(t, int64(1000), mt.BytesSent())
	assert.Equal(t, int64(750), mt.BytesReceived())
}

func TestAddMetricReturnsExisting(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	first := msr.AddMetric("merge")
	first.AddDispatch(time.Second, 1, 1, nil)

	assert.Same(t, first, msr.AddMetric("merge"))
	assert.Same(t, first, msr.GetMetric("merge"))
	assert.Nil(t, msr.GetMetric("split"))
	assert.Len(t, msr.AllMetrics(), 1)
}

func TestPipelineMeasureConcurrent(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	hook := measure.PipelineMeasure(msr)
	require.NoError(t, hook.New())

	var wg sync.WaitGroup

	for range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			info := &model.DispatchInfo{
				Name:  "split",
				Slots: []model.UploadSlot{{Size: 100}, {Size: 0}},
			}
			assert.NoError(t, hook.BeforeDispatch(info))
			assert.NoError(t, hook.AfterDispatch(info, &model.DispatchResult{Elapsed: time.Millisecond, ResponseSize: 10}))
		}()
	}

	wg.Wait()
	require.NoError(t, hook.Finish())

	mt := msr.GetMetric("split")
	require.NotNil(t, mt)
	assert.Equal(t, int64(10), mt.Dispatches())
	assert.Equal(t, int64(1000), mt.BytesSent())
	assert.Equal(t, int64(100), mt.BytesReceived())
}

func TestSummary(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	msr.AddMetric("split-1").AddDispatch(time.Second, 2000, 1000, nil)
	msr.AddMetric("split-0").AddDispatch(time.Second, 2000, 1000, assert.AnError)

	assert.Equal(t,
		"split-0: 1 dispatch(es), 1 failed, avg 1s, sent 2.0 kB, received 1.0 kB\n"+
			"split-1: 1 dispatch(es), 0 failed, avg 1s, sent 2.0 kB, received 1.0 kB\n",
		measure.Summary(msr),
	)
}
