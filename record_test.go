package scipaper

import "testing"

type fakeData struct {
	freed bool
	val   string
}

func (f *fakeData) Copy() BackendData { return &fakeData{val: f.val} }
func (f *fakeData) Free()             { f.freed = true }

// TestRecord_CopyFreeIdentity covers testable property 1: copying a
// record then freeing the original leaves the copy in the original's
// pre-copy state.
func TestRecord_CopyFreeIdentity(t *testing.T) {
	orig := NewDocumentRecord()
	orig.DOI = "10.1/x"
	orig.BackendData = &fakeData{val: "cached"}

	cp := orig.Copy()
	orig.Free()

	if cp.DOI != "10.1/x" {
		t.Fatalf("copy lost DOI: %q", cp.DOI)
	}
	data, ok := cp.BackendData.(*fakeData)
	if !ok || data.freed {
		t.Fatalf("copy's backend data was affected by freeing the original")
	}
	origData := orig.BackendData
	if origData != nil {
		t.Fatalf("expected original's BackendData to be nilled by Free")
	}
}

// TestRecord_CombineMonotonicity covers testable property 2: Combine
// never overwrites a field the receiver already has.
func TestRecord_CombineMonotonicity(t *testing.T) {
	r := NewDocumentRecord()
	r.Title = "Existing Title"
	r.Year = 2020

	src := NewDocumentRecord()
	src.Title = "Other Title"
	src.Year = 1999
	src.Author = "New Author"
	src.References = 7

	r.Combine(src)

	if r.Title != "Existing Title" {
		t.Errorf("Combine overwrote an existing field: %q", r.Title)
	}
	if r.Year != 2020 {
		t.Errorf("Combine overwrote an existing year: %d", r.Year)
	}
	if r.Author != "New Author" {
		t.Errorf("Combine did not fill an empty field: %q", r.Author)
	}
	if r.References != 7 {
		t.Errorf("Combine did not fill references: %d", r.References)
	}
}

func TestRecord_CombineReferencesSentinelIsMinusOne(t *testing.T) {
	r := NewDocumentRecord()
	if r.References != -1 {
		t.Fatalf("NewDocumentRecord should default References to -1, got %d", r.References)
	}

	src := NewDocumentRecord()
	src.References = 0
	r.Combine(src)
	if r.References != 0 {
		t.Fatalf("Combine should fill a zero (known zero-citation) reference count, got %d", r.References)
	}
}

func TestRecord_EqualComparesUserVisibleFieldsOnly(t *testing.T) {
	a := NewDocumentRecord()
	a.Title = "T"
	a.BackendID = 1

	b := NewDocumentRecord()
	b.Title = "T"
	b.BackendID = 2

	if !a.Equal(b) {
		t.Fatalf("Equal should ignore BackendID")
	}

	c := NewDocumentRecord()
	c.Title = "Different"
	if a.Equal(c) {
		t.Fatalf("Equal should distinguish differing titles")
	}
}

func TestRecord_IsEmpty(t *testing.T) {
	r := NewDocumentRecord()
	if !r.IsEmpty() {
		t.Fatalf("a zero-value query should be empty")
	}
	r.Title = "x"
	if r.IsEmpty() {
		t.Fatalf("a record with a title should not be empty")
	}
}
