package crossref

import (
	"context"
	"net/http"
	"testing"

	"github.com/antflydb/scipaper"
	"github.com/antflydb/scipaper/config"
)

type fakeTransport struct {
	responses map[string][]byte
	errs      map[string]error
}

func (f *fakeTransport) Get(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if b, ok := f.responses[url]; ok {
		return b, nil
	}
	return nil, nil
}

func (f *fakeTransport) Post(ctx context.Context, url string, body []byte, headers http.Header) ([]byte, error) {
	return nil, nil
}

func (f *fakeTransport) GetBinary(ctx context.Context, url string) ([]byte, error) {
	return nil, nil
}

func newTestRegistry() *scipaper.Library {
	return scipaper.NewLibrary(scipaper.Noop, nil)
}

const doiWorkResponse = `{
	"status": "ok",
	"message-type": "work",
	"message": {
		"DOI": "10.1/x",
		"publisher": "Acme",
		"author": [{"given": "Alice", "family": "Lastname"}],
		"title": ["A Paper"],
		"ISSN": ["1234-5678"],
		"published": {"date-parts": [[2020]]}
	}
}`

func TestFillFromDOI_ParsesWork(t *testing.T) {
	tr := &fakeTransport{responses: map[string][]byte{
		apiDomain + methodWorks + "/10.1%2Fx": []byte(doiWorkResponse),
	}}
	b := New(newTestRegistry(), config.Load("", nil), scipaper.Noop, tr)

	result := b.fillMeta(scipaper.DocumentRecord{DOI: "10.1/x", References: -1}, 1, 0, scipaper.Relevance)
	if result == nil || len(result.Documents) != 1 {
		t.Fatalf("expected one document")
	}
	doc := result.Documents[0]
	if doc.Title != "A Paper" || doc.Publisher != "Acme" || doc.Author != "Alice Lastname" {
		t.Fatalf("unexpected parse result: %+v", doc)
	}
	if doc.Year != 2020 {
		t.Fatalf("expected year 2020, got %d", doc.Year)
	}
}

func TestFillMeta_ZeroMaxCountReturnsNil(t *testing.T) {
	b := New(newTestRegistry(), config.Load("", nil), scipaper.Noop, &fakeTransport{})
	if b.fillMeta(scipaper.DocumentRecord{DOI: "x"}, 0, 0, scipaper.Relevance) != nil {
		t.Fatalf("expected nil for maxCount <= 0")
	}
}

func TestGetMessage_RejectsWrongMessageType(t *testing.T) {
	b := New(newTestRegistry(), config.Load("", nil), scipaper.Noop, &fakeTransport{})
	body := []byte(`{"status":"ok","message-type":"work-list","message":{}}`)
	if msg := b.getMessage(body, "work"); msg != nil {
		t.Fatalf("expected nil when message-type does not match")
	}
}

func TestGetMessage_RejectsNonOkStatus(t *testing.T) {
	b := New(newTestRegistry(), config.Load("", nil), scipaper.Noop, &fakeTransport{})
	body := []byte(`{"status":"failed","message-type":"work","message":{}}`)
	if msg := b.getMessage(body, "work"); msg != nil {
		t.Fatalf("expected nil when status is not ok")
	}
}

func TestParseWork_ReferanceFallback(t *testing.T) {
	b := New(newTestRegistry(), config.Load("", nil), scipaper.Noop, &fakeTransport{})
	json := []byte(`{
		"DOI": "10.1/y",
		"author": [{"given": "Bob", "family": "Otherson"}],
		"referance": {"journal-title": "Journal Of Things", "year": "2018"}
	}`)
	rec := b.parseWork(json)
	if rec.Journal != "Journal Of Things" {
		t.Fatalf("expected journal from the referance fallback, got %q", rec.Journal)
	}
	if rec.Year != 2018 {
		t.Fatalf("expected year from the referance fallback, got %d", rec.Year)
	}
}
