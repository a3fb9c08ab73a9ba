package scipaper

// BackendData is a per-backend opaque cache attached to a DocumentRecord
// (e.g. cached full text, an internal id). The original C library mediates
// this through a raw pointer plus a pair of free/copy function values; §9
// of the design notes calls a tagged interface "a safer alternative in the
// target language" while warning it must still behave like two mandatory
// hooks. BackendData is that interface: Copy must be a pure deep copy, and
// Free must be safe to call at most once per value.
type BackendData interface {
	// Copy returns a deep copy of the data, valid independently of the
	// receiver's lifetime.
	Copy() BackendData
	// Free releases any resources held by the data. Idempotent is not
	// required; callers call it at most once per value.
	Free()
}

// DocumentRecord is the normalized metadata shape for one paper (§3.1).
// Every field is optional unless noted. Zero values double as sentinels:
// Year == 0 means "unknown", References == -1 means "unknown".
type DocumentRecord struct {
	DOI         string
	URL         string
	Year        uint
	Publisher   string
	Volume      string
	Pages       string
	Author      string
	Title       string
	Journal     string
	ISSN        string
	Keywords    string
	DownloadURL string
	Abstract    string
	References  int

	// SearchText is populated only on query records, never on results.
	SearchText string
	// HasFullText is a hint that full text may be obtainable.
	HasFullText bool

	// BackendID is 0 on an unscoped query, or the id of the producing
	// backend on a result.
	BackendID int
	// BackendData is the producing backend's opaque per-record cache, or
	// nil. If non-nil it must support Copy/Free (the interface makes the
	// "programmer-error" omission described in §7 impossible to express).
	BackendData BackendData
	// Completed is set by the federation engine once a record has passed
	// through enrichment.
	Completed bool
}

// NewDocumentRecord returns a zero DocumentRecord with References set to
// its "unknown" sentinel (-1); using the Go zero value directly would read
// as "zero citations known", which is a distinct, meaningful value.
func NewDocumentRecord() DocumentRecord {
	return DocumentRecord{References: -1}
}

// Copy returns a deep copy of r. Copying then freeing the original leaves
// the copy semantically identical to the original's pre-copy state
// (testable property 1, copy-free identity).
func (r DocumentRecord) Copy() DocumentRecord {
	c := r
	if r.BackendData != nil {
		c.BackendData = r.BackendData.Copy()
	}
	return c
}

// Free releases the record's backend data, if any. Safe to call on a
// record with no BackendData.
func (r *DocumentRecord) Free() {
	if r.BackendData != nil {
		r.BackendData.Free()
		r.BackendData = nil
	}
}

// Equal compares only the user-visible text/number fields (doi, url, year,
// publisher, volume, pages, author, title, journal, issn, keywords). It is
// a bitwise-sense equality useful for detecting a repeated query, not an
// identity test for "same work" (§3.1).
func (r DocumentRecord) Equal(o DocumentRecord) bool {
	return r.DOI == o.DOI &&
		r.URL == o.URL &&
		r.Year == o.Year &&
		r.Publisher == o.Publisher &&
		r.Volume == o.Volume &&
		r.Pages == o.Pages &&
		r.Author == o.Author &&
		r.Title == o.Title &&
		r.Journal == o.Journal &&
		r.ISSN == o.ISSN &&
		r.Keywords == o.Keywords
}

// Combine fills every empty field of r from the corresponding non-empty
// field of src, without ever overwriting a field r already has (testable
// property 2, combine monotonicity). It covers every user-visible
// text/number field, which is the full set Combine is specified over in
// §4.3.1 plus §4.3.2.
func (r *DocumentRecord) Combine(src DocumentRecord) {
	if r.DOI == "" {
		r.DOI = src.DOI
	}
	if r.URL == "" {
		r.URL = src.URL
	}
	if r.Year == 0 {
		r.Year = src.Year
	}
	if r.Publisher == "" {
		r.Publisher = src.Publisher
	}
	if r.Volume == "" {
		r.Volume = src.Volume
	}
	if r.Pages == "" {
		r.Pages = src.Pages
	}
	if r.Author == "" {
		r.Author = src.Author
	}
	if r.Title == "" {
		r.Title = src.Title
	}
	if r.Journal == "" {
		r.Journal = src.Journal
	}
	if r.ISSN == "" {
		r.ISSN = src.ISSN
	}
	if r.Keywords == "" {
		r.Keywords = src.Keywords
	}
	if r.DownloadURL == "" {
		r.DownloadURL = src.DownloadURL
	}
	if r.Abstract == "" {
		r.Abstract = src.Abstract
	}
	if r.References == -1 {
		r.References = src.References
	}
}

// IsEmpty reports whether the query carries no search-relevant field at
// all, the condition under which a backend must decline to search (e.g.
// §4.6.2's empty-q short circuit).
func (r DocumentRecord) IsEmpty() bool {
	return r.DOI == "" && r.Author == "" && r.Title == "" && r.Journal == "" &&
		r.Keywords == "" && r.Abstract == "" && r.SearchText == "" && r.ISSN == ""
}
