package scipaper

import "fmt"

// FindByDOI is a thin wrapper over FillMeta building a single-field query
// pinned (optionally) to one backend (SUPPLEMENTED from src/scipaper.c's
// sci_find_by_doi). backendID == 0 means "any backend".
func (lib *Library) FindByDOI(doi string, backendID int) *DocumentRecord {
	q := DocumentRecord{DOI: doi, BackendID: backendID, References: -1}
	result := lib.FillMeta(q, nil, 1, 0, Relevance)
	if result == nil {
		return nil
	}
	return firstNonNil(result.Documents)
}

// FindByAuthor is a thin wrapper over FillMeta building a single-field
// author query (SUPPLEMENTED from src/scipaper.c).
func (lib *Library) FindByAuthor(author string, maxCount int) *RequestResult {
	q := DocumentRecord{Author: author, References: -1}
	return lib.FillMeta(q, nil, maxCount, 0, Relevance)
}

// FindByTitle is a thin wrapper over FillMeta building a single-field
// title query (SUPPLEMENTED from src/scipaper.c).
func (lib *Library) FindByTitle(title string, maxCount int) *RequestResult {
	q := DocumentRecord{Title: title, References: -1}
	return lib.FillMeta(q, nil, maxCount, 0, Relevance)
}

// FindByJournal is a thin wrapper over FillMeta building a single-field
// journal query (SUPPLEMENTED from src/scipaper.c).
func (lib *Library) FindByJournal(journal string, maxCount int) *RequestResult {
	q := DocumentRecord{Journal: journal, References: -1}
	return lib.FillMeta(q, nil, maxCount, 0, Relevance)
}

// SaveDocumentToFile resolves a PDF for record and writes it to path
// (SUPPLEMENTED from src/scipaper.c's SaveDocumentToFile).
func (lib *Library) SaveDocumentToFile(record DocumentRecord, path string) error {
	pdf := lib.GetPdf(record)
	if pdf == nil {
		return fmt.Errorf("scipaper: no backend produced a pdf for doi=%q", record.DOI)
	}
	return pdf.SaveToFile(path)
}
