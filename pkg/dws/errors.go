package dws

import "github.com/pkg/errors"

var (
	ErrInsufficientInputs       = errors.New("at least 2 files required for merge")
	ErrWatermarkSource          = errors.New("either text or image_url must be provided")
	ErrLengthMismatch           = errors.New("output_paths length must match page_ranges length")
	ErrEmptyIndexes             = errors.New("page_indexes cannot be empty")
	ErrNegativeIndexUnsupported = errors.New("negative page indexes not yet supported for deletion")
	ErrInvalidCount             = errors.New("page_count must be at least 1")
	ErrInvalidPosition          = errors.New("insert_index must be -1 (for end) or a non-negative insertion index")
	ErrInvalidLabelConfig       = errors.New("invalid page label configuration")
)
