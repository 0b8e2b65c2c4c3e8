package model

import "time"

// DispatchInfo describes a fully assembled request right before it is sent.
type DispatchInfo struct {
	// Name identifies the pipeline, for example "merge" or "split-2".
	Name         string
	Instructions *Instructions
	Slots        []UploadSlot
}

// DispatchResult describes the outcome of a remote call.
type DispatchResult struct {
	Elapsed      time.Duration
	ResponseSize int
	Err          error
}

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error
	// BeforeDispatch runs once the instruction document is assembled, right before it is sent.
	BeforeDispatch(info *DispatchInfo) error
	// AfterDispatch runs when the remote call returned, successfully or not.
	AfterDispatch(info *DispatchInfo, result *DispatchResult) error
	// Finish runs after the pipeline is executed.
	Finish() error
}
