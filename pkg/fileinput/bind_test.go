package fileinput_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dws/pkg/fileinput"
)

func TestFieldNames(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		n    int
		want []string
	}{
		"none":   {n: 0, want: []string{}},
		"single": {n: 1, want: []string{"file"}},
		"many":   {n: 3, want: []string{"file0", "file1", "file2"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, fileinput.FieldNames(tc.n))
		})
	}
}

func TestBind(t *testing.T) {
	t.Parallel()

	fs := newFs(t, map[string]string{"/a.pdf": "aaa"})
	norm := fileinput.NewNormalizer(fileinput.WithFs(fs))

	contents, err := norm.NormalizeAll(t.Context(), []fileinput.Input{fileinput.Path("/a.pdf"), fileinput.Bytes("bb")})
	require.NoError(t, err)

	slots := fileinput.Bind(contents)
	require.Len(t, slots, 2)

	assert.Equal(t, "file0", slots[0].FieldName)
	assert.Equal(t, "a.pdf", slots[0].Filename)
	assert.Equal(t, fileinput.ContentType, slots[0].ContentType)
	assert.Equal(t, int64(3), slots[0].Size)
	assert.Equal(t, "aaa", readAll(t, slots[0].Content))

	assert.Equal(t, "file1", slots[1].FieldName)
	assert.Equal(t, "document", slots[1].Filename)
	assert.Equal(t, "bb", readAll(t, slots[1].Content))
}
