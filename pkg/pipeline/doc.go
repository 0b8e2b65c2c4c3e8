// Package pipeline assembles a multi-step document processing job into a single request.
//
// A pipeline collects the input files, an ordered list of tool steps and the output options.
// Each step is mapped to a wire action, the inputs are normalized and bound to multipart fields,
// and the resulting instruction document is sent to the build endpoint in one round trip.
//
// Builder methods can be chained. The first error raised while building is kept and returned
// by Execute before any file is read or any request is sent.
//
// Hooks implementing model.PipelineOption observe every dispatch. The drawer package renders
// the assembled plan as a graph and the measure package collects dispatch metrics.
package pipeline
