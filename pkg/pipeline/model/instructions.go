package model

// NewPage is the Part.Page value asking the service to generate blank pages.
const NewPage = "new"

// PageRange selects pages by zero-based start index and exclusive end index.
// A nil End means "through the last page".
type PageRange struct {
	Start int  `json:"start"`
	End   *int `json:"end,omitempty"`
}

// Range returns the page range [start, end).
func Range(start, end int) PageRange {
	return PageRange{Start: start, End: &end}
}

// From returns the page range starting at start and running to the last page.
func From(start int) PageRange {
	return PageRange{Start: start}
}

// PageLayout describes the pages generated by a new page part.
type PageLayout struct {
	Size        string `json:"size"`
	Orientation string `json:"orientation"`
}

// Part is an element of the instruction document "parts" list.
// It is either a reference to an uploaded file, optionally restricted to a page range,
// or a generated blank page block.
type Part struct {
	File      string      `json:"file,omitempty"`
	Pages     *PageRange  `json:"pages,omitempty"`
	Page      string      `json:"page,omitempty"`
	PageCount int         `json:"pageCount,omitempty"`
	Layout    *PageLayout `json:"layout,omitempty"`
}

// FilePart references a whole uploaded file.
func FilePart(field string) Part {
	return Part{File: field}
}

// FilePages references a page range of an uploaded file.
func FilePages(field string, pages PageRange) Part {
	return Part{File: field, Pages: &pages}
}

// NewPagePart generates count blank pages with the given layout.
func NewPagePart(count int, layout PageLayout) Part {
	return Part{Page: NewPage, PageCount: count, Layout: &layout}
}

// PageLabel assigns a label to a range of pages.
type PageLabel struct {
	Pages *PageRange `json:"pages"`
	Label string     `json:"label"`
}

// Instructions is the document sent to the build endpoint.
type Instructions struct {
	Parts   []Part        `json:"parts"`
	Actions []Action      `json:"actions"`
	Output  OutputOptions `json:"output,omitempty"`
}
