package scipaper

import (
	"fmt"
	"math/rand"
	"strings"
)

// CiteKey builds a BibLaTeX cite key from an author field and a year
// (§4.4.3, property 7). The author field is the canonical
// "Given Family, Given Family, …" form (§3.1): the first author's name is
// kept verbatim with its internal space removed; every subsequent author
// contributes only the initial letter of each of their name's words. The
// result is uppercased, then the year is appended if non-zero, else a
// 5-digit pseudo-random number in [0, 65536).
//
// Example: "Alice Lastname, Bob Otherson" + 2020 -> "ALICELASTNAMEBO2020".
func CiteKey(author string, year uint) string {
	authors := strings.Split(author, ", ")
	var b strings.Builder
	for i, a := range authors {
		words := strings.Fields(a)
		if i == 0 {
			for _, w := range words {
				b.WriteString(w)
			}
			continue
		}
		for _, w := range words {
			r := []rune(w)
			if len(r) > 0 {
				b.WriteRune(r[0])
			}
		}
	}
	key := strings.ToUpper(b.String())
	if year != 0 {
		return fmt.Sprintf("%s%d", key, year)
	}
	return fmt.Sprintf("%s%05d", key, rand.Intn(65536))
}

// ToBibLaTeX emits r as a BibLaTeX entry (§4.4.3, §6.3). A record without
// an author cannot be rendered and returns nil. entryType defaults to
// "article" when empty.
func (r DocumentRecord) ToBibLaTeX(entryType string) *string {
	if r.Author == "" {
		return nil
	}
	if entryType == "" {
		entryType = "article"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, CiteKey(r.Author, r.Year))

	writeField := func(key, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "\t%s={%s},\n", key, value)
	}

	writeField("doi", r.DOI)
	writeField("url", r.URL)
	writeField("publisher", r.Publisher)
	writeField("volume", r.Volume)
	writeField("pages", r.Pages)
	writeField("author", strings.ReplaceAll(r.Author, ", ", " and "))
	writeField("title", r.Title)
	writeField("journal", r.Journal)
	writeField("issn", r.ISSN)
	writeField("keywords", r.Keywords)
	if r.Year != 0 {
		fmt.Fprintf(&b, "\tyear={%d},\n", r.Year)
	}

	b.WriteString("}\n")
	out := b.String()
	return &out
}
