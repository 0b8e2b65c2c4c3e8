// Package model provides the data structures shared by the pipeline package and its hooks.
// It defines the instruction document sent to the processing service,
// including the parts, the actions applied to them and the output options,
// as well as the upload slots and the hook interface run around each dispatch.
package model
