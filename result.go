package scipaper

// RequestResult is a paged search result (§3.2). Documents may contain nil
// entries as a pointer slice; callers must skip them — preserved from the
// original so backends can report a partial page without compacting it.
type RequestResult struct {
	Documents  []*DocumentRecord
	Count      int
	MaxCount   int
	Page       int
	TotalCount int
}

// NewRequestResult builds a RequestResult from documents, filling Count
// and MaxCount from the slice and the requested ceiling.
func NewRequestResult(documents []*DocumentRecord, maxCount, page, totalCount int) *RequestResult {
	return &RequestResult{
		Documents:  documents,
		Count:      len(documents),
		MaxCount:   maxCount,
		Page:       page,
		TotalCount: totalCount,
	}
}

// Free releases every owned document's backend data.
func (rr *RequestResult) Free() {
	if rr == nil {
		return
	}
	for _, d := range rr.Documents {
		if d != nil {
			d.Free()
		}
	}
}
