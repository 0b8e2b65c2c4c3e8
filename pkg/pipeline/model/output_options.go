package model

import "maps"

const metadataKey = "metadata"

// Metadata holds document metadata entries, for example title or author.
type Metadata = map[string]any

// OutputOptions is the "output" object of the instruction document.
type OutputOptions map[string]any

// Merge returns a copy of o updated with next.
// Keys of next replace the ones of o, except "metadata" whose entries are merged key by key.
func (o OutputOptions) Merge(next OutputOptions) OutputOptions {
	if len(o) == 0 && len(next) == 0 {
		return nil
	}

	res := make(OutputOptions, len(o)+len(next))
	maps.Copy(res, o)

	for key, value := range next {
		if key != metadataKey {
			res[key] = value

			continue
		}

		prev, okPrev := asMetadata(res[metadataKey])
		curr, okCurr := asMetadata(value)

		if !okPrev || !okCurr {
			res[key] = value

			continue
		}

		merged := make(Metadata, len(prev)+len(curr))
		maps.Copy(merged, prev)
		maps.Copy(merged, curr)
		res[key] = merged
	}

	return res
}

func asMetadata(value any) (Metadata, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		res := make(Metadata, len(m))
		for k, v := range m {
			res[k] = v
		}

		return res, true
	default:
		return nil, false
	}
}
