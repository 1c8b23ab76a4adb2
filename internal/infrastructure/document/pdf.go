// Package document renders policy documents as PDFs.
package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const (
	margin     = 20.0 // mm
	titleSize  = 18
	bodySize   = 11
	lineHeight = 6.5
)

// Page is the content of a text document. Lines longer than the page width
// wrap, and the document grows extra pages as needed.
type Page struct {
	Title string
	Lines []string
}

// RenderPDF writes p as an A4 PDF using the built-in Helvetica font.
func RenderPDF(p Page) ([]byte, error) {
	pdf := layout(p)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return buf.Bytes(), nil
}

func layout(p Page) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(p.Title, true)
	pdf.SetCreator("corretora_seguros", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.MultiCell(0, lineHeight*1.5, winAnsi(p.Title), "", "L", false)
	pdf.Ln(lineHeight)

	pdf.SetFont("Helvetica", "", bodySize)
	for _, line := range p.Lines {
		pdf.MultiCell(0, lineHeight, winAnsi(line), "", "L", false)
	}
	return pdf
}

// winAnsi converts s to the Windows-1252 bytes the core fonts expect. Runes
// outside the code page become '?'.
func winAnsi(s string) string {
	var b strings.Builder
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}
