package scipaper

import (
	"fmt"

	"github.com/antflydb/scipaper/jsoncodec"
)

// jsonRecord mirrors the JSON record format of §6.2. Pointer fields are
// omitted from output when nil so Year == 0 and References < 0 can be
// suppressed per §4.4.1. FullText has no omitempty: ToJSON decides
// separately whether to include the key at all (§4.4.1 — present iff a
// full-text argument was supplied or a FillRequest was given).
type jsonRecord struct {
	DOI         string `json:"doi,omitempty"`
	URL         string `json:"url,omitempty"`
	Year        *uint  `json:"year,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Volume      string `json:"volume,omitempty"`
	Pages       string `json:"pages,omitempty"`
	Author      string `json:"author,omitempty"`
	Title       string `json:"title,omitempty"`
	Journal     string `json:"journal,omitempty"`
	ISSN        string `json:"issn,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	DownloadURL string `json:"download-url,omitempty"`
	Abstract    string `json:"abstract,omitempty"`
	References  *int   `json:"references,omitempty"`
}

// jsonRecordWithFullText adds the always-present "full-text" key, used
// when ToJSON decides the key belongs in the output (possibly as null).
type jsonRecordWithFullText struct {
	jsonRecord
	FullText *string `json:"full-text"`
}

// fieldForJSONKey maps a jsonRecord key to its FillRequest bit, used to
// restrict the emitted keyset when a FillRequest argument is supplied.
var fieldForJSONKey = map[string]Field{
	"doi":          FieldDOI,
	"url":          FieldURL,
	"year":         FieldYear,
	"publisher":    FieldPublisher,
	"volume":       FieldVolume,
	"pages":        FieldPages,
	"author":       FieldAuthor,
	"title":        FieldTitle,
	"journal":      FieldJournal,
	"issn":         FieldISSN,
	"keywords":     FieldKeywords,
	"download-url": FieldDownloadURL,
	"abstract":     FieldAbstract,
	"references":   FieldReferences,
}

// ToJSON emits r as a single JSON object, one key per user-visible field
// (§4.4.1). year == 0 and a negative references suppress their keys. fullText,
// if non-nil, adds a "full-text" key. fillRequest, if non-nil, restricts
// the keyset to the requested fields plus full-text; nil means "emit every
// field the record actually has".
func (r DocumentRecord) ToJSON(fullText *string, fillRequest *FillRequest) ([]byte, error) {
	jr := jsonRecord{
		DOI:         r.DOI,
		URL:         r.URL,
		Publisher:   r.Publisher,
		Volume:      r.Volume,
		Pages:       r.Pages,
		Author:      r.Author,
		Title:       r.Title,
		Journal:     r.Journal,
		ISSN:        r.ISSN,
		Keywords:    r.Keywords,
		DownloadURL: r.DownloadURL,
		Abstract:    r.Abstract,
	}
	if r.Year != 0 {
		y := r.Year
		jr.Year = &y
	}
	if r.References >= 0 {
		ref := r.References
		jr.References = &ref
	}

	if fillRequest != nil {
		if !fillRequest.Has(FieldDOI) {
			jr.DOI = ""
		}
		if !fillRequest.Has(FieldURL) {
			jr.URL = ""
		}
		if !fillRequest.Has(FieldYear) {
			jr.Year = nil
		}
		if !fillRequest.Has(FieldPublisher) {
			jr.Publisher = ""
		}
		if !fillRequest.Has(FieldVolume) {
			jr.Volume = ""
		}
		if !fillRequest.Has(FieldPages) {
			jr.Pages = ""
		}
		if !fillRequest.Has(FieldAuthor) {
			jr.Author = ""
		}
		if !fillRequest.Has(FieldTitle) {
			jr.Title = ""
		}
		if !fillRequest.Has(FieldJournal) {
			jr.Journal = ""
		}
		if !fillRequest.Has(FieldISSN) {
			jr.ISSN = ""
		}
		if !fillRequest.Has(FieldKeywords) {
			jr.Keywords = ""
		}
		if !fillRequest.Has(FieldDownloadURL) {
			jr.DownloadURL = ""
		}
		if !fillRequest.Has(FieldAbstract) {
			jr.Abstract = ""
		}
		if !fillRequest.Has(FieldReferences) {
			jr.References = nil
		}
	}

	if fullText != nil || fillRequest != nil {
		return jsoncodec.Marshal(jsonRecordWithFullText{jsonRecord: jr, FullText: fullText})
	}
	return jsoncodec.Marshal(jr)
}

// RecordFromJSON parses a JSON object into a DocumentRecord (§4.4.2).
// Missing keys map to the record's zero value (References defaults to the
// "unknown" sentinel, not 0); unknown keys are ignored. An empty or
// invalid document returns an error.
func RecordFromJSON(data []byte, log Sink) (*DocumentRecord, error) {
	if log == nil {
		log = Noop
	}
	if len(data) == 0 {
		log.Errorf("scipaper: RecordFromJSON: empty document")
		return nil, fmt.Errorf("scipaper: empty json document")
	}
	var jr jsonRecord
	if err := jsoncodec.Unmarshal(data, &jr); err != nil {
		log.Errorf("scipaper: RecordFromJSON: %v", err)
		return nil, fmt.Errorf("scipaper: parsing json record: %w", err)
	}
	rec := NewDocumentRecord()
	rec.DOI = jr.DOI
	rec.URL = jr.URL
	rec.Publisher = jr.Publisher
	rec.Volume = jr.Volume
	rec.Pages = jr.Pages
	rec.Author = jr.Author
	rec.Title = jr.Title
	rec.Journal = jr.Journal
	rec.ISSN = jr.ISSN
	rec.Keywords = jr.Keywords
	rec.DownloadURL = jr.DownloadURL
	rec.Abstract = jr.Abstract
	if jr.Year != nil {
		rec.Year = *jr.Year
	}
	if jr.References != nil {
		rec.References = *jr.References
	}
	return &rec, nil
}
