package scipaper

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// callLog returns a Sink with a "call_id" field attached to every log
// line it emits. Stamping every federation call with a fresh id makes it
// possible to correlate a single fill_meta/get_text/get_pdf's traversal
// across log lines, the way the pack's services stamp request-scoped
// ids rather than relying on message text alone.
func (lib *Library) callLog() Sink {
	return lib.Log.With(zap.String("call_id", uuid.NewString()))
}

// FillMeta implements the federation engine's search operation (§4.3.1).
//
// Traversal rule: walk the registry newest-first; for each backend whose
// Fill function is non-nil and whose id matches query.BackendID (0 means
// "any"), invoke it. The first non-nil return short-circuits the walk.
func (lib *Library) FillMeta(query DocumentRecord, fillRequest *FillRequest, maxCount, page int, sort SortMode) *RequestResult {
	log := lib.callLog()
	if query.BackendID != 0 && fillRequest != nil {
		log.Warnf("scipaper: fill_meta called with both a pinned backend id (%d) and a fill request; ignoring the fill request", query.BackendID)
		fillRequest = nil
	}

	tried := 0
	for _, e := range lib.registry.entries {
		if e.fill == nil {
			continue
		}
		if query.BackendID != 0 && e.id != query.BackendID {
			continue
		}
		tried++
		log.Debugf("scipaper: fill_meta trying backend %q", e.desc.Name)
		result := e.fill(query, maxCount, page, sort)
		lib.metrics.observe(e.desc.Name, "fill_meta", result != nil)
		if result == nil {
			continue
		}
		for _, rec := range result.Documents {
			if rec == nil {
				continue
			}
			rec.Combine(query)
			if query.BackendID == 0 && fillRequest != nil && !fillRequest.Satisfied(*rec) {
				lib.completeAcrossBackends(rec, fillRequest)
			}
			rec.Completed = true
		}
		return result
	}

	if query.BackendID != 0 {
		log.Warnf("scipaper: pinned backend %d returned no results for fill_meta", query.BackendID)
	} else if tried == 0 {
		log.Warnf("scipaper: no backend registered for fill_meta")
	} else {
		log.Warnf("scipaper: no backend had results for fill_meta")
	}
	return nil
}

// completeAcrossBackends implements §4.3.2: given a record with at least a
// DOI and an unsatisfied FillRequest, query every other backend by DOI in
// registry order, combining each hit into the target (fill gaps only),
// stopping as soon as the request is satisfied or backends are exhausted.
func (lib *Library) completeAcrossBackends(rec *DocumentRecord, fillRequest *FillRequest) {
	if rec.DOI == "" {
		return
	}
	for _, e := range lib.registry.entries {
		if fillRequest.Satisfied(*rec) {
			return
		}
		if e.fill == nil || e.id == rec.BackendID {
			continue
		}
		q := DocumentRecord{DOI: rec.DOI, BackendID: e.id, References: -1}
		result := e.fill(q, 1, 0, Relevance)
		if result == nil || len(result.Documents) == 0 {
			continue
		}
		src := firstNonNil(result.Documents)
		if src == nil {
			continue
		}
		rec.Combine(*src)
	}
}

func firstNonNil(docs []*DocumentRecord) *DocumentRecord {
	for _, d := range docs {
		if d != nil {
			return d
		}
	}
	return nil
}

// GetText implements the federation engine's full-text operation (§4.3.3):
// same traversal as FillMeta, no combine, no enrichment.
func (lib *Library) GetText(record DocumentRecord) *string {
	log := lib.callLog()
	for _, e := range lib.registry.entries {
		if e.getText == nil {
			continue
		}
		if record.BackendID != 0 && e.id != record.BackendID {
			continue
		}
		text := e.getText(record)
		lib.metrics.observe(e.desc.Name, "get_text", text != nil)
		if text != nil {
			return text
		}
	}
	log.Warnf("scipaper: no backend produced full text for doi=%q", record.DOI)
	return nil
}

// GetPdf implements the federation engine's PDF-download operation
// (§4.3.3): same traversal, no combine, no enrichment.
func (lib *Library) GetPdf(record DocumentRecord) *PdfBlob {
	log := lib.callLog()
	for _, e := range lib.registry.entries {
		if e.getPDF == nil {
			continue
		}
		if record.BackendID != 0 && e.id != record.BackendID {
			continue
		}
		pdf := e.getPDF(record)
		lib.metrics.observe(e.desc.Name, "get_pdf", pdf != nil)
		if pdf != nil {
			return pdf
		}
	}
	log.Warnf("scipaper: no backend produced a pdf for doi=%q", record.DOI)
	return nil
}
