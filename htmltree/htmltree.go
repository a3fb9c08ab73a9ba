// Package htmltree wraps github.com/PuerkitoBio/goquery as the thin "tree
// reader" collaborator the PDF-resolver backend depends on (§1's "HTML
// parsers abstracted as tree readers"), the way docsaf/html.go parses HTML
// with goquery.NewDocumentFromReader before walking it.
package htmltree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse parses raw HTML leniently, matching the spec's "parse the response
// as lenient HTML" (§4.6.3).
func Parse(raw []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("htmltree: parsing html: %w", err)
	}
	return doc, nil
}

// FindFirstOnclickContaining walks doc depth-first for the first element
// carrying an onclick attribute whose value contains substr, returning
// that attribute's value (§4.6.3 step 2). Depth-first document order is
// exactly what goquery's Find + EachWithBreak visits.
func FindFirstOnclickContaining(doc *goquery.Document, substr string) (string, bool) {
	var found string
	var ok bool
	doc.Find("[onclick]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		v, exists := sel.Attr("onclick")
		if !exists {
			return true
		}
		if strings.Contains(v, substr) {
			found = v
			ok = true
			return false
		}
		return true
	})
	return found, ok
}
