package scihub

import (
	"testing"

	"github.com/antflydb/scipaper/config"
)

// TestExtractPdfURL_OnclickWalk covers scenario S6's primary path: a
// button's onclick attribute assigning location.href to a quoted pdf URL.
func TestExtractPdfURL_OnclickWalk(t *testing.T) {
	html := []byte(`<html><body>
		<button onclick="location.href='https://host/x.pdf'">Download</button>
	</body></html>`)

	got, ok := extractPdfURL(html)
	if !ok {
		t.Fatalf("expected a url to be found")
	}
	if got != "https://host/x.pdf" {
		t.Fatalf("got %q, want %q", got, "https://host/x.pdf")
	}
}

// TestExtractPdfURL_SubstringFallback covers scenario S6's fallback path:
// no onclick attribute mentions "pdf", but the raw HTML carries a
// download=true marker near a quoted URL.
func TestExtractPdfURL_SubstringFallback(t *testing.T) {
	html := []byte(`<html><body>
		<a href="x">click here</a>
		some text … 'https://other/y.pdf?download=true' … more text
	</body></html>`)

	got, ok := extractPdfURL(html)
	if !ok {
		t.Fatalf("expected a url to be found")
	}
	if got != "https://other/y.pdf?download=true" {
		t.Fatalf("got %q, want %q", got, "https://other/y.pdf?download=true")
	}
}

func TestExtractPdfURL_NoMatch(t *testing.T) {
	html := []byte(`<html><body><p>nothing here</p></body></html>`)
	if _, ok := extractPdfURL(html); ok {
		t.Fatalf("expected no url to be found")
	}
}

func TestExtractAfterEquals(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"location.href='https://a/b.pdf'", "https://a/b.pdf", true},
		{"location.href=https://a/b.pdf", "https://a/b.pdf", true},
		{"somethingWithNoEquals", "", false},
		{"location.href=", "", false},
	}
	for _, c := range cases {
		got, ok := extractAfterEquals(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("extractAfterEquals(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNew_RequiresURL(t *testing.T) {
	cfg := config.Load("", nil)
	if _, err := New(nil, cfg, nil, nil); err == nil {
		t.Fatalf("expected an error when Scihub/Url is absent")
	}
}
