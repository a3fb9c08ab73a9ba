package scipaper

import "github.com/bits-and-blooms/bitset"

// Field indexes one bit of a FillRequest, one per DocumentRecord
// user-visible field (§3.4).
type Field uint

const (
	FieldDOI Field = iota
	FieldURL
	FieldYear
	FieldPublisher
	FieldVolume
	FieldPages
	FieldAuthor
	FieldTitle
	FieldJournal
	FieldISSN
	FieldKeywords
	FieldDownloadURL
	FieldAbstract
	FieldReferences

	fieldCount
)

// FillRequest is a per-field bitmask: "the caller requires this field to
// be present in every returned record, attempting further backends if the
// first producer does not supply it." A nil FillRequest means "do not
// attempt cross-backend enrichment" (§3.4); use NewFillRequest or
// AllFieldsFillRequest to build one.
type FillRequest struct {
	bits *bitset.BitSet
}

// NewFillRequest returns an empty FillRequest; set fields with Set.
func NewFillRequest() *FillRequest {
	return &FillRequest{bits: bitset.New(uint(fieldCount))}
}

// AllFieldsFillRequest returns a FillRequest demanding every field. Passed
// to ToJSON it keeps every field and adds the "full-text" key; ToJSON with
// a nil FillRequest keeps every field but omits "full-text".
func AllFieldsFillRequest() *FillRequest {
	fr := NewFillRequest()
	for f := Field(0); f < fieldCount; f++ {
		fr.Set(f)
	}
	return fr
}

// Set marks field f as required.
func (fr *FillRequest) Set(f Field) *FillRequest {
	fr.bits.Set(uint(f))
	return fr
}

// Has reports whether field f is required.
func (fr *FillRequest) Has(f Field) bool {
	if fr == nil || fr.bits == nil {
		return false
	}
	return fr.bits.Test(uint(f))
}

// Satisfied reports whether, for every bit set in fr, the corresponding
// field of r is non-empty (strings) or non-sentinel (year != 0,
// references >= 0) — §4.3.2's satisfaction rule.
func (fr *FillRequest) Satisfied(r DocumentRecord) bool {
	if fr == nil {
		return true
	}
	checks := map[Field]bool{
		FieldDOI:         r.DOI != "",
		FieldURL:         r.URL != "",
		FieldYear:        r.Year != 0,
		FieldPublisher:   r.Publisher != "",
		FieldVolume:      r.Volume != "",
		FieldPages:       r.Pages != "",
		FieldAuthor:      r.Author != "",
		FieldTitle:       r.Title != "",
		FieldJournal:     r.Journal != "",
		FieldISSN:        r.ISSN != "",
		FieldKeywords:    r.Keywords != "",
		FieldDownloadURL: r.DownloadURL != "",
		FieldAbstract:    r.Abstract != "",
		FieldReferences:  r.References >= 0,
	}
	for f := Field(0); f < fieldCount; f++ {
		if fr.Has(f) && !checks[f] {
			return false
		}
	}
	return true
}
