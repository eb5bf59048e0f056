// Package normalize flattens raw table rows into classifiable text and
// provides the shared token helpers (dates, amounts, descriptions) used by
// the classification stages.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-normalizer/internal/models"
)

var (
	// dateRe matches MM/DD with an optional 2- or 4-digit year.
	dateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`)
	// amountRe matches currency amounts with exactly two fraction digits.
	amountRe      = regexp.MustCompile(`[-+]?\$?\d[\d,]*\.\d{2}`)
	parenAmountRe = regexp.MustCompile(`\(([\d,]+\.\d{2})\)`)
	wsRe          = regexp.MustCompile(`\s+`)

	// pureLedgerRe matches lines that are nothing but date/amount pairs,
	// the shape of a daily balance ledger rendered as running text.
	pureLedgerRe = regexp.MustCompile(`^(?:\s*\d{1,2}/\d{1,2}(?:/\d{2,4})?\s+[-+]?\$?\d[\d,]*\.\d{2}[\s,]*)+$`)
	ledgerJunkRe = regexp.MustCompile(`[()\s,$\-]+`)
	alphaRe      = regexp.MustCompile(`[A-Za-z]`)
)

// RowText joins the non-empty cells of a row with single spaces, collapses
// whitespace and rewrites accounting-style parenthesized amounts to a
// leading minus.
func RowText(cells models.RawRow) string {
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		if c == nil {
			continue
		}
		if s := strings.TrimSpace(*c); s != "" {
			parts = append(parts, s)
		}
	}
	text := strings.Join(parts, " ")
	text = parenAmountRe.ReplaceAllString(text, "-$1")
	return wsRe.ReplaceAllString(strings.TrimSpace(text), " ")
}

// Rows flattens every row of every table, dropping rows that normalize to
// empty text. Input tables are never modified.
func Rows(tables []models.RawTable) []models.NormalizedRow {
	var out []models.NormalizedRow
	for ti, t := range tables {
		for ri, row := range t.Rows {
			text := RowText(row)
			if text == "" {
				continue
			}
			out = append(out, models.NormalizedRow{
				TableIndex: ti,
				RowIndex:   ri,
				Cells:      row,
				Text:       text,
			})
		}
	}
	return out
}

// Dates returns all date tokens in the text, in order.
func Dates(text string) []string {
	return dateRe.FindAllString(text, -1)
}

// Amounts returns all amount tokens in the text, in order.
func Amounts(text string) []string {
	return amountRe.FindAllString(text, -1)
}

// ParseAmount parses a currency token ($, commas and an optional sign) into
// a decimal.
func ParseAmount(tok string) (decimal.Decimal, error) {
	s := strings.TrimSpace(tok)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "+-")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", tok, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// maxPlausibleAmount guards against balance columns and account numbers
// being read as transaction amounts.
var maxPlausibleAmount = decimal.NewFromInt(1_000_000)

// RightmostAmount returns the rightmost amount token whose magnitude is
// below one million. Statements put the transaction amount last on the
// line, with running balances beyond it filtered by the magnitude cap.
func RightmostAmount(text string) (decimal.Decimal, bool) {
	toks := Amounts(text)
	for i := len(toks) - 1; i >= 0; i-- {
		d, err := ParseAmount(toks[i])
		if err != nil {
			continue
		}
		if d.Abs().LessThan(maxPlausibleAmount) {
			return d, true
		}
	}
	return decimal.Zero, false
}

// IsPureLedger reports whether the text is daily-ledger noise: either a
// strict sequence of date/amount pairs, or a line whose residue after
// stripping dates, amounts and punctuation is too short to be a real
// description.
func IsPureLedger(text string) bool {
	if pureLedgerRe.MatchString(text) {
		return true
	}
	dates := Dates(text)
	amounts := Amounts(text)
	if len(dates) >= 2 && len(amounts) >= 2 && len(LedgerResidue(text)) <= 3 {
		return true
	}
	return false
}

// StripTokens removes every date and amount token, leaving the rest of
// the text intact.
func StripTokens(text string) string {
	s := dateRe.ReplaceAllString(text, " ")
	return amountRe.ReplaceAllString(s, " ")
}

// LedgerResidue strips date tokens, amount tokens and structural
// punctuation from the text; what remains is the row's descriptive
// content.
func LedgerResidue(text string) string {
	return ledgerJunkRe.ReplaceAllString(StripTokens(text), "")
}

// AlphaCount returns the number of ASCII letters in s.
func AlphaCount(s string) int {
	return len(alphaRe.FindAllString(s, -1))
}

// StandardizeDate normalizes a date token to MM/DD/YYYY. Two-digit years
// are expanded to 20YY. When the token has no year, the statement year is
// applied if non-zero; otherwise the token stays MM/DD.
func StandardizeDate(tok string, statementYear int) string {
	parts := strings.Split(strings.TrimSpace(tok), "/")
	if len(parts) < 2 {
		return tok
	}
	month := zeroPad2(parts[0])
	day := zeroPad2(parts[1])
	switch {
	case len(parts) >= 3 && len(parts[2]) == 4:
		return fmt.Sprintf("%s/%s/%s", month, day, parts[2])
	case len(parts) >= 3 && len(parts[2]) == 2:
		return fmt.Sprintf("%s/%s/20%s", month, day, parts[2])
	case statementYear > 0:
		return fmt.Sprintf("%s/%s/%04d", month, day, statementYear)
	default:
		return fmt.Sprintf("%s/%s", month, day)
	}
}

func zeroPad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ParseDate parses a normalized MM/DD/YYYY date. Year-less MM/DD dates and
// malformed input report ok=false.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse("01/02/2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
