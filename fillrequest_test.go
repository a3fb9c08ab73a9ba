package scipaper

import "testing"

func TestFillRequest_SatisfiedOnlyChecksSetFields(t *testing.T) {
	fr := NewFillRequest().Set(FieldTitle).Set(FieldYear)

	r := NewDocumentRecord()
	if fr.Satisfied(r) {
		t.Fatalf("an empty record should not satisfy a title+year request")
	}

	r.Title = "Something"
	r.Year = 2021
	if !fr.Satisfied(r) {
		t.Fatalf("a record with title and year should satisfy a title+year request")
	}

	// Other unset fields being empty is irrelevant.
	if r.Author != "" {
		t.Fatalf("expected Author to stay empty in this test")
	}
}

func TestFillRequest_ReferencesZeroIsSatisfied(t *testing.T) {
	fr := NewFillRequest().Set(FieldReferences)
	r := NewDocumentRecord()
	r.References = 0
	if !fr.Satisfied(r) {
		t.Fatalf("a known zero reference count should satisfy the references field")
	}
	r.References = -1
	if fr.Satisfied(r) {
		t.Fatalf("an unknown (-1) reference count should not satisfy the references field")
	}
}

func TestFillRequest_NilIsAlwaysSatisfied(t *testing.T) {
	var fr *FillRequest
	if !fr.Satisfied(NewDocumentRecord()) {
		t.Fatalf("a nil FillRequest should report every record as satisfied")
	}
}

func TestAllFieldsFillRequest(t *testing.T) {
	fr := AllFieldsFillRequest()
	for f := Field(0); f < fieldCount; f++ {
		if !fr.Has(f) {
			t.Fatalf("field %d should be set by AllFieldsFillRequest", f)
		}
	}
}
