package pipeline

import "github.com/pkg/errors"

var (
	ErrPosterMustBeSet = errors.New("poster must be set")
	ErrInputMustBeSet  = errors.New("at least one input is required")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrOptionsMismatch = errors.New("options do not match tool")
	ErrUnknownPartFile = errors.New("part references an unknown upload slot")
	ErrEmptyPart       = errors.New("part must reference a file or a new page")
)
