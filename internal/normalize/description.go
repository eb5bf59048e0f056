package normalize

import (
	"regexp"
	"strings"
)

const maxDescriptionLen = 80

var (
	cardHintRe     = regexp.MustCompile(`(?i)\b(CHECKCARD|PURCHASE)\b`)
	checkWordRe    = regexp.MustCompile(`(?i)\bCHECK\b`)
	merchantHintRe = regexp.MustCompile(`(?i)\bMERCHANT\b`)

	checkLabelRe = regexp.MustCompile(`(?i)Check\s*#?\s*\d{3,}`)

	descStripRes = []*regexp.Regexp{
		dateRe,
		amountRe,
		regexp.MustCompile(`\b(CKCD|CCD|PPD)\s*\d*`),
		regexp.MustCompile(`(?i)\bCard\s+\d{4}\b`),
		regexp.MustCompile(`X{4,}\d+`),
		regexp.MustCompile(`DES:\S*`),
		regexp.MustCompile(`ID:\s*[A-Z0-9\-]+`),
		regexp.MustCompile(`INDN:\S*`),
	}
)

// CleanDescription reduces raw row text to a merchant description: dates,
// amounts, card fragments and processor codes are stripped, check labels
// collapse to the word Check, whitespace is normalized and the result is
// capped at 80 characters. Rows that clean down to nothing get a category
// fallback derived from the raw text.
func CleanDescription(text string) string {
	s := checkLabelRe.ReplaceAllString(text, " Check ")
	for _, re := range descStripRes {
		s = re.ReplaceAllString(s, " ")
	}
	s = wsRe.ReplaceAllString(s, " ")
	s = strings.Trim(s, " -,")

	if len(s) < 5 {
		s = fallbackDescription(text)
	}
	if len(s) > maxDescriptionLen {
		s = strings.TrimSpace(s[:maxDescriptionLen])
	}
	return s
}

func fallbackDescription(raw string) string {
	switch {
	case cardHintRe.MatchString(raw):
		return "Debit Card Purchase"
	case checkWordRe.MatchString(raw):
		return "Check"
	case merchantHintRe.MatchString(raw):
		return "Merchant Services"
	default:
		return "Transaction"
	}
}

// HasCardHint reports whether the text carries a debit-card marker
// (CHECKCARD or PURCHASE).
func HasCardHint(text string) bool { return cardHintRe.MatchString(text) }

// HasCheckWord reports whether the text contains the standalone word
// CHECK. CHECKCARD does not qualify.
func HasCheckWord(text string) bool { return checkWordRe.MatchString(text) }
