package extractor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// detectionPages is how many leading pages carry the bank's letterhead and
// account block; detection never needs more.
const detectionPages = 3

// FirstPagesText extracts plain text from the leading pages of a PDF for
// bank detection. It is not a table extractor.
func FirstPagesText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	pages := r.NumPage()
	if pages > detectionPages {
		pages = detectionPages
	}
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteByte(' ')
	}

	text := b.String()
	if !isReadableText(text) {
		return "", fmt.Errorf("pdf %q has no readable text layer", path)
	}
	return text, nil
}

// isReadableText guards against scanned statements whose text layer is
// missing or garbage: we need a reasonable share of letters and digits.
func isReadableText(s string) bool {
	if len(strings.TrimSpace(s)) < 50 {
		return false
	}
	total, readable := 0, 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsPunct(r) {
			readable++
		}
	}
	return total > 0 && float64(readable)/float64(total) > 0.8
}
