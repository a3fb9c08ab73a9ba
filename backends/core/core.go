// Package core implements the repository reference backend (§4.6.2): a
// FILL | GET_TEXT | GET_PDF backend over a CORE-shaped search API with
// scroll-based fast-page continuation, grounded on src/modules/core.c.
package core

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"github.com/antflydb/scipaper"
	"github.com/antflydb/scipaper/config"
	"github.com/antflydb/scipaper/jsontree"
	"github.com/antflydb/scipaper/transport"
)

const (
	name          = "core"
	apiBaseURL    = "https://api.core.ac.uk/v3/"
	methodSearch  = "search/works/"
	methodOutputs = "outputs/"
)

// Data is the repository backend's per-record cache: the cached full text
// (so a later GetText is a pure in-memory copy, §4.6.2) and the backend's
// own internal CORE_ID, if present.
type Data struct {
	FullText string
	CoreID   string
}

// Copy implements scipaper.BackendData.
func (d *Data) Copy() scipaper.BackendData {
	return &Data{FullText: d.FullText, CoreID: d.CoreID}
}

// Free implements scipaper.BackendData. Data holds no external resources.
func (d *Data) Free() {}

// fastPageState is the mutable per-backend-instance state described in
// §4.5: the last query, the page size it was served at, the opaque scroll
// token, and the next page the token will serve.
type fastPageState struct {
	lastQuery    *scipaper.DocumentRecord
	lastMaxCount int
	scrollToken  string
	nextPage     int
}

// Backend is the repository reference backend.
type Backend struct {
	tr       transport.Transport
	log      scipaper.Sink
	apiKey   string
	retry    int
	id       int
	fastPage fastPageState
}

// New builds and registers a core Backend. Initialization fails with a
// descriptive error when Core/ApiKey is absent (§4.6.2).
func New(reg scipaper.Registrar, cfg config.Source, log scipaper.Sink, tr transport.Transport) (*Backend, error) {
	apiKey, ok := cfg.GetString("Core", "ApiKey")
	if !ok || apiKey == "" {
		return nil, fmt.Errorf("core: Core/ApiKey is required")
	}
	b := &Backend{
		tr:     tr,
		log:    log,
		apiKey: apiKey,
		retry:  config.IntDefault(cfg, "Core", "Retry", 1),
	}
	if rl, ok := cfg.GetInt("Core", "RateLimit"); ok {
		log.Infof("core: configured for %d req/s, no enforcement performed", rl)
	}
	b.id = reg.Register(
		scipaper.BackendDescriptor{Name: name, Capabilities: scipaper.CapFill | scipaper.CapGetText | scipaper.CapGetPDF},
		b.fillMeta, b.getText, b.getPDF,
	)
	return b, nil
}

// ID returns the backend's registry id.
func (b *Backend) ID() int { return b.id }

// isFastPageEligible implements the §4.5 predicate exactly.
func (b *Backend) isFastPageEligible(query scipaper.DocumentRecord, maxCount, page int) bool {
	if page == 0 {
		return true
	}
	s := b.fastPage
	if s.lastQuery == nil || s.scrollToken == "" {
		return false
	}
	if !query.Equal(*s.lastQuery) || maxCount != s.lastMaxCount {
		return false
	}
	gap := page - s.nextPage
	return gap >= 0 && gap < 3
}

func buildSearchQuery(q scipaper.DocumentRecord) string {
	var clauses []string
	if q.Author != "" {
		clauses = append(clauses, fmt.Sprintf(`authors:"%s"`, q.Author))
	}
	if q.Title != "" {
		clauses = append(clauses, fmt.Sprintf(`title:"%s"`, q.Title))
	}
	if q.Keywords != "" {
		clauses = append(clauses, strings.Fields(strings.ReplaceAll(q.Keywords, ",", " "))...)
	}
	if q.Abstract != "" {
		clauses = append(clauses, fmt.Sprintf(`abstract:"%s"`, q.Abstract))
	}
	if q.SearchText != "" {
		clauses = append(clauses, fmt.Sprintf(`"%s"`, q.SearchText))
	}
	return strings.Join(clauses, "+")
}

func (b *Backend) fillMeta(query scipaper.DocumentRecord, maxCount, page int, sort scipaper.SortMode) *scipaper.RequestResult {
	if maxCount <= 0 {
		b.log.Warnf("core: a request for 0 results was given")
		return nil
	}
	q := buildSearchQuery(query)
	if q == "" {
		return nil
	}

	fastPage := b.isFastPageEligible(query, maxCount, page)

	var result *scipaper.RequestResult
	attempt := 0
	retryPolicy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(maxInt(b.retry-1, 0)))
	err := backoff.Retry(func() error {
		attempt++
		if attempt > 1 {
			b.log.Warnf("core: retrying fill_meta (%d of %d)", attempt, b.retry)
		}
		r, err := b.fillMetaOnce(query, q, maxCount, page, fastPage)
		if err != nil {
			return err
		}
		result = r
		return nil
	}, retryPolicy)
	if err != nil {
		b.log.Warnf("core: fill_meta failed after retries: %v", err)
		return nil
	}
	return result
}

func (b *Backend) fillMetaOnce(query scipaper.DocumentRecord, q string, maxCount, page int, fastPage bool) (*scipaper.RequestResult, error) {
	values := url.Values{}
	values.Set("apiKey", b.apiKey)
	values.Set("limit", strconv.Itoa(maxCount))
	values.Set("stats", "false")
	values.Set("q", q)
	if fastPage {
		values.Set("scroll", "true")
		if page > 0 && b.fastPage.scrollToken != "" {
			values.Set("scrollId", b.fastPage.scrollToken)
		}
	} else {
		values.Set("offset", strconv.Itoa(page*maxCount))
	}

	u := apiBaseURL + methodSearch + "?" + values.Encode()
	body, err := b.tr.Get(context.Background(), u, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}

	results := jsontree.Get(body, "results")
	if !results.Exists() || !results.IsArray() {
		return nil, fmt.Errorf("malformed response: no results array")
	}
	items := results.Array()
	n := len(items)
	if n > maxCount {
		n = maxCount
	}
	docs := make([]*scipaper.DocumentRecord, n)
	for i := 0; i < n; i++ {
		rec := b.parseDocument([]byte(items[i].Raw))
		docs[i] = &rec
	}

	resultPage := page
	if !fastPage {
		resultPage = jsontree.Int(jsontree.Get(body, "offset")) / maxCount
	}
	total := jsontree.Int(jsontree.Get(body, "totalHits"))
	rr := scipaper.NewRequestResult(docs, maxCount, resultPage, total)

	if fastPage {
		qc := query.Copy()
		b.fastPage = fastPageState{
			lastQuery:    &qc,
			lastMaxCount: maxCount,
			scrollToken:  jsontree.String(jsontree.Get(body, "scrollId")),
			nextPage:     page + 1,
		}
	} else {
		b.fastPage = fastPageState{}
	}

	return rr, nil
}

// parseDocument implements §4.6.2's per-result parsing.
func (b *Backend) parseDocument(item []byte) scipaper.DocumentRecord {
	rec := scipaper.NewDocumentRecord()
	rec.BackendID = b.id
	rec.HasFullText = true

	var authorParts []string
	for _, a := range jsontree.Array(jsontree.Get(item, "authors")) {
		if n := jsontree.String(jsontree.Get([]byte(a.Raw), "name")); n != "" {
			authorParts = append(authorParts, n)
		}
	}
	rec.Author = strings.Join(authorParts, ", ")

	rec.Abstract = jsontree.String(jsontree.Get(item, "abstract"))
	rec.Title = jsontree.String(jsontree.Get(item, "title"))
	rec.Publisher = jsontree.String(jsontree.Get(item, "publisher"))
	rec.Year = uint(jsontree.Int(jsontree.Get(item, "yearPublished")))
	rec.DownloadURL = jsontree.String(jsontree.Get(item, "downloadUrl"))

	doi := jsontree.String(jsontree.Get(item, "doi"))
	if len(doi) > 5 {
		rec.DOI = doi
	} else {
		rec.DOI = findIdentifier(jsontree.Array(jsontree.Get(item, "identifiers")), "DOI")
	}

	data := &Data{
		FullText: jsontree.String(jsontree.Get(item, "fullText")),
		CoreID:   findIdentifier(jsontree.Array(jsontree.Get(item, "identifiers")), "CORE_ID"),
	}
	rec.BackendData = data

	return rec
}

func findIdentifier(ids []jsontree.Value, kind string) string {
	for _, id := range ids {
		raw := []byte(id.Raw)
		if jsontree.String(jsontree.Get(raw, "type")) == kind {
			return jsontree.String(jsontree.Get(raw, "identifier"))
		}
	}
	return ""
}

func (b *Backend) getText(record scipaper.DocumentRecord) *string {
	if record.BackendID == b.id {
		if data, ok := record.BackendData.(*Data); ok && data.FullText != "" {
			text := data.FullText
			return &text
		}
	}
	result := b.fillMeta(record, 1, 0, scipaper.Relevance)
	if result == nil || len(result.Documents) == 0 || result.Documents[0] == nil {
		return nil
	}
	data, ok := result.Documents[0].BackendData.(*Data)
	if !ok || data.FullText == "" {
		return nil
	}
	text := data.FullText
	return &text
}

func (b *Backend) getPDF(record scipaper.DocumentRecord) *scipaper.PdfBlob {
	meta := record
	if record.BackendID != b.id {
		result := b.fillMeta(scipaper.DocumentRecord{DOI: record.DOI, BackendID: b.id, References: -1}, 1, 0, scipaper.Relevance)
		if result == nil || len(result.Documents) == 0 || result.Documents[0] == nil {
			return nil
		}
		meta = *result.Documents[0]
	}
	if meta.DownloadURL == "" {
		return nil
	}

	downloadURL := meta.DownloadURL
	if u, err := url.Parse(downloadURL); err == nil && strings.Contains(u.Host, "arxiv.org") {
		downloadURL = strings.Replace(downloadURL, "/abs/", "/pdf/", 1) + ".pdf"
	}

	data, err := b.tr.GetBinary(context.Background(), downloadURL)
	if err != nil {
		b.log.Warnf("core: fetching pdf %s: %v", downloadURL, err)
		return nil
	}
	return &scipaper.PdfBlob{Data: data, Meta: meta}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
