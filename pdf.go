package scipaper

import (
	"fmt"
	"os"
)

// PdfBlob is a downloaded PDF: raw bytes plus the owning DocumentRecord
// describing the resolved source (§3.3).
type PdfBlob struct {
	Data []byte
	Meta DocumentRecord
}

// Len returns len(Data), the documented "length" field.
func (p *PdfBlob) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Data)
}

// LooksLikePDF reports whether data qualifies as a PDF per §4.6.3: length
// at least 100 bytes and a "%PDF" magic header.
func LooksLikePDF(data []byte) bool {
	return len(data) >= 100 && string(data[:4]) == "%PDF"
}

// Free releases the owned meta record's backend data.
func (p *PdfBlob) Free() {
	if p == nil {
		return
	}
	p.Meta.Free()
}

// SaveToFile writes the PDF bytes to path (SUPPLEMENTED: the original's
// SavePdfToFile convenience, §scipaper.c).
func (p *PdfBlob) SaveToFile(path string) error {
	if p == nil {
		return fmt.Errorf("scipaper: nil PdfBlob")
	}
	if err := os.WriteFile(path, p.Data, 0o644); err != nil {
		return fmt.Errorf("scipaper: saving pdf to %s: %w", path, err)
	}
	return nil
}
