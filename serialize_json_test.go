package scipaper

import (
	"encoding/json"
	"testing"
)

// TestToJSON_OmitsUnknownYearAndReferences covers the §4.4.1 suppression
// rule: year == 0 and references == -1 drop their keys.
func TestToJSON_OmitsUnknownYearAndReferences(t *testing.T) {
	r := NewDocumentRecord()
	r.Title = "T"

	data, err := r.ToJSON(nil, nil)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["year"]; ok {
		t.Errorf("expected year to be omitted, got %v", m["year"])
	}
	if _, ok := m["references"]; ok {
		t.Errorf("expected references to be omitted, got %v", m["references"])
	}
	if _, ok := m["full-text"]; ok {
		t.Errorf("expected full-text to be absent when neither fullText nor fillRequest is given")
	}
}

// TestToJSON_FullTextKeyPresentWithFillRequestEvenIfNilText covers
// scenario S4: the "full-text" key appears (as null) when a FillRequest
// was given even though no fullText string was supplied.
func TestToJSON_FullTextKeyPresentWithFillRequestEvenIfNilText(t *testing.T) {
	r := NewDocumentRecord()
	r.Title = "T"
	fr := NewFillRequest().Set(FieldTitle)

	data, err := r.ToJSON(nil, fr)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, ok := m["full-text"]
	if !ok {
		t.Fatalf("expected a full-text key to be present")
	}
	if v != nil {
		t.Fatalf("expected full-text to be null, got %v", v)
	}
}

func TestToJSON_FillRequestRestrictsKeyset(t *testing.T) {
	r := NewDocumentRecord()
	r.Title = "T"
	r.Author = "A"
	fr := NewFillRequest().Set(FieldTitle)

	data, err := r.ToJSON(nil, fr)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var m map[string]any
	json.Unmarshal(data, &m)
	if _, ok := m["title"]; !ok {
		t.Errorf("expected title to be present")
	}
	if _, ok := m["author"]; ok {
		t.Errorf("expected author to be restricted out, got %v", m["author"])
	}
}

func TestToJSON_IncludesKnownZeroReferences(t *testing.T) {
	r := NewDocumentRecord()
	r.References = 0
	data, err := r.ToJSON(nil, nil)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var m map[string]any
	json.Unmarshal(data, &m)
	if _, ok := m["references"]; !ok {
		t.Fatalf("expected a known zero reference count to be emitted")
	}
}

func TestRecordFromJSON_RoundTrip(t *testing.T) {
	r := NewDocumentRecord()
	r.Title = "T"
	r.Year = 2020
	r.References = 3

	data, err := r.ToJSON(nil, nil)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := RecordFromJSON(data, Noop)
	if err != nil {
		t.Fatalf("RecordFromJSON: %v", err)
	}
	if got.Title != "T" || got.Year != 2020 || got.References != 3 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRecordFromJSON_EmptyInputErrors(t *testing.T) {
	if _, err := RecordFromJSON(nil, Noop); err == nil {
		t.Fatalf("expected an error for empty input")
	}
}

func TestRecordFromJSON_MissingReferencesDefaultsToSentinel(t *testing.T) {
	got, err := RecordFromJSON([]byte(`{"title":"T"}`), Noop)
	if err != nil {
		t.Fatalf("RecordFromJSON: %v", err)
	}
	if got.References != -1 {
		t.Fatalf("expected References to default to the unknown sentinel, got %d", got.References)
	}
}
