// Package crossref implements the identifier-resolver reference backend
// (§4.6.1): an FILL-only backend over a Crossref-shaped works/journals
// API, grounded on src/modules/crossref.c.
package crossref

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/antflydb/scipaper"
	"github.com/antflydb/scipaper/config"
	"github.com/antflydb/scipaper/jsontree"
	"github.com/antflydb/scipaper/transport"
)

const (
	name        = "crossref"
	apiDomain   = "https://api.crossref.org/"
	methodWorks = "works"
	methodJourn = "journals"
	selectList  = "DOI,ISSN,abstract,author,publisher,reference,volume,title,issue,page,published"
)

// Backend is the identifier-resolver reference backend.
type Backend struct {
	tr    transport.Transport
	log   scipaper.Sink
	email string
	id    int
}

// New builds and registers a crossref Backend against reg, reading its
// Crossref/Email config (§6.1) and, for a log line only, Crossref/RateLimit.
// Crossref/Timeout is not read; requests use whatever timeout tr applies.
func New(reg scipaper.Registrar, cfg config.Source, log scipaper.Sink, tr transport.Transport) *Backend {
	b := &Backend{
		tr:    tr,
		log:   log,
		email: config.StringDefault(cfg, "Crossref", "Email", ""),
	}
	if rl, ok := cfg.GetInt("Crossref", "RateLimit"); ok {
		log.Infof("crossref: configured for %d req/s, no enforcement performed", rl)
	}
	b.id = reg.Register(
		scipaper.BackendDescriptor{Name: name, Capabilities: scipaper.CapFill},
		b.fillMeta, nil, nil,
	)
	return b
}

// ID returns the backend's registry id.
func (b *Backend) ID() int { return b.id }

func (b *Backend) fillMeta(query scipaper.DocumentRecord, maxCount, page int, sort scipaper.SortMode) *scipaper.RequestResult {
	if maxCount <= 0 {
		return nil
	}
	if query.DOI != "" {
		return b.fillFromDOI(query)
	}
	return b.fillFromQuery(query, maxCount)
}

func (b *Backend) fillFromDOI(query scipaper.DocumentRecord) *scipaper.RequestResult {
	u := apiDomain + methodWorks + "/" + url.PathEscape(query.DOI)
	body, err := b.tr.Get(context.Background(), u, nil)
	if err != nil {
		b.log.Warnf("crossref: fetching %s: %v", u, err)
		return nil
	}
	message := b.getMessage(body, "work")
	if message == nil {
		return nil
	}
	rec := b.parseWork(*message)
	rec.DOI = query.DOI
	rec.BackendID = b.id
	return scipaper.NewRequestResult([]*scipaper.DocumentRecord{&rec}, 1, 0, 0)
}

func (b *Backend) fillFromQuery(query scipaper.DocumentRecord, maxCount int) *scipaper.RequestResult {
	values := url.Values{}
	if query.Author != "" {
		values.Set("query.author", query.Author)
	}
	if query.Title != "" {
		values.Set("query.title", query.Title)
	}
	if query.Journal != "" {
		values.Set("query.publisher-name", query.Journal)
	}
	if query.HasFullText {
		values.Set("filter", "has-full-text:true")
	}
	if query.Year != 0 {
		values.Set("query.bibliographic", strconv.FormatUint(uint64(query.Year), 10))
	}
	if len(values) == 0 {
		return nil
	}
	values.Set("select", selectList)
	values.Set("rows", strconv.Itoa(maxCount))
	if b.email != "" {
		values.Set("mailto", b.email)
	}

	u := apiDomain + methodWorks + "?" + values.Encode()
	body, err := b.tr.Get(context.Background(), u, nil)
	if err != nil {
		b.log.Warnf("crossref: fetching %s: %v", u, err)
		return nil
	}
	message := b.getMessage(body, "work-list")
	if message == nil {
		return nil
	}
	items := jsontree.Array(jsontree.Get(message, "items"))
	total := jsontree.Int(jsontree.Get(message, "total-results"))
	n := len(items)
	if n > maxCount {
		n = maxCount
	}
	docs := make([]*scipaper.DocumentRecord, n)
	for i := 0; i < n; i++ {
		rec := b.parseWork([]byte(items[i].Raw))
		rec.BackendID = b.id
		docs[i] = &rec
	}
	return scipaper.NewRequestResult(docs, maxCount, 0, total)
}

// getMessage validates the {status, message-type, message} envelope every
// Crossref response shares and returns the raw message node, or nil.
func (b *Backend) getMessage(body []byte, expectedType string) *[]byte {
	status := jsontree.String(jsontree.Get(body, "status"))
	if status != "ok" {
		b.log.Warnf("crossref: returned invalid status %q", status)
		return nil
	}
	msgType := jsontree.String(jsontree.Get(body, "message-type"))
	if msgType != expectedType {
		b.log.Warnf("crossref: returned message of type %s instead of %s", msgType, expectedType)
		return nil
	}
	msg := jsontree.Get(body, "message")
	if !msg.Exists() {
		b.log.Warnf("crossref: message does not contain document entry")
		return nil
	}
	raw := []byte(msg.Raw)
	return &raw
}

// parseWork implements the per-work parsing rules of §4.6.1, including the
// literal "referance" (sic) fallback path kept verbatim per §9's explicit
// instruction not to fix the misspelling.
func (b *Backend) parseWork(json []byte) scipaper.DocumentRecord {
	rec := scipaper.NewDocumentRecord()
	rec.URL = jsontree.String(jsontree.Get(json, "URL"))
	rec.DOI = jsontree.String(jsontree.Get(json, "DOI"))
	rec.Publisher = jsontree.String(jsontree.Get(json, "publisher"))
	rec.Volume = jsontree.String(jsontree.Get(json, "volume"))
	rec.Abstract = jsontree.String(jsontree.Get(json, "abstract"))

	var authorParts []string
	for _, a := range jsontree.Array(jsontree.Get(json, "author")) {
		given := jsontree.String(jsontree.Get([]byte(a.Raw), "given"))
		family := jsontree.String(jsontree.Get([]byte(a.Raw), "family"))
		switch {
		case given != "" && family != "":
			authorParts = append(authorParts, given+" "+family)
		case family != "":
			authorParts = append(authorParts, family)
		case given != "":
			authorParts = append(authorParts, given)
		}
	}
	rec.Author = strings.Join(authorParts, ", ")

	dateParts := jsontree.Array(jsontree.Get(json, "published.date-parts"))
	if len(dateParts) > 0 {
		first := jsontree.Array(dateParts[0])
		if len(first) > 0 {
			rec.Year = uint(jsontree.Int(first[0]))
		}
	}

	// The "referance" node (sic) is a misspelling present in the original
	// source; retained literally per design note §9.
	referance := jsontree.Get(json, "referance")
	if referance.Exists() {
		rec.Journal = jsontree.String(jsontree.Get([]byte(referance.Raw), "journal-title"))
		if rec.Year == 0 {
			yearStr := jsontree.String(jsontree.Get([]byte(referance.Raw), "year"))
			if y, err := strconv.ParseUint(yearStr, 10, 64); err == nil {
				rec.Year = uint(y)
			}
		}
	}

	titles := jsontree.Array(jsontree.Get(json, "title"))
	if len(titles) > 0 {
		rec.Title = titles[0].String()
	}

	issns := jsontree.Array(jsontree.Get(json, "ISSN"))
	if len(issns) > 0 {
		rec.ISSN = issns[0].String()
	}

	b.addJournalInfo(&rec)
	return rec
}

// addJournalInfo performs the secondary journals/<issn> lookup (§4.6.1)
// when an ISSN is known but publisher or journal is still missing.
func (b *Backend) addJournalInfo(rec *scipaper.DocumentRecord) {
	if rec.ISSN == "" || (rec.Publisher != "" && rec.Journal != "") {
		return
	}
	u := apiDomain + methodJourn + "/" + url.PathEscape(rec.ISSN)
	body, err := b.tr.Get(context.Background(), u, http.Header{})
	if err != nil {
		b.log.Warnf("crossref: fetching journal info %s: %v", u, err)
		return
	}
	message := b.getMessage(body, "journal")
	if message == nil {
		return
	}
	if rec.Publisher == "" {
		rec.Publisher = jsontree.String(jsontree.Get(*message, "publisher"))
	}
	if rec.Journal == "" {
		rec.Journal = jsontree.String(jsontree.Get(*message, "title"))
	}
}
