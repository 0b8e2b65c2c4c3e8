package measure

import (
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	return nil
}

func (pm *pipelineMeasure) BeforeDispatch(info *model.DispatchInfo) error {
	pm.AddMetric(info.Name)

	return nil
}

func (pm *pipelineMeasure) AfterDispatch(info *model.DispatchInfo, result *model.DispatchResult) error {
	var sent int64

	for _, slot := range info.Slots {
		if slot.Size > 0 {
			sent += slot.Size
		}
	}

	pm.AddMetric(info.Name).AddDispatch(result.Elapsed, sent, result.ResponseSize, result.Err)

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

// PipelineMeasure records every dispatch of a pipeline into measure.
// The same measure can be shared by pipelines running concurrently.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
