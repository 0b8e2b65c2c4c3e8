package fileinput

import (
	"strconv"

	"github.com/askiada/go-dws/pkg/pipeline/model"
)

// SingleFieldName is the field name used when exactly one file is uploaded.
const SingleFieldName = "file"

// FieldNames returns the multipart field names for n uploaded files:
// "file" for a single file, "file0" to "file<n-1>" otherwise.
func FieldNames(n int) []string {
	if n == 1 {
		return []string{SingleFieldName}
	}

	names := make([]string, n)
	for i := range names {
		names[i] = SingleFieldName + strconv.Itoa(i)
	}

	return names
}

// Bind assigns a field name to each content, in order.
func Bind(contents []*Content) []model.UploadSlot {
	names := FieldNames(len(contents))
	slots := make([]model.UploadSlot, 0, len(contents))

	for i, content := range contents {
		slots = append(slots, model.UploadSlot{
			FieldName:   names[i],
			Filename:    content.Name,
			Content:     content.Reader(),
			ContentType: ContentType,
			Size:        content.Size(),
		})
	}

	return slots
}
