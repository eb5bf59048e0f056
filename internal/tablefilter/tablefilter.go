// Package tablefilter drops whole extracted tables that hold no
// transactions: daily ledger balance grids and check summary sections.
package tablefilter

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/normalize"
)

// Skip reasons recorded on filtered tables.
const (
	ReasonDailyLedger  = "daily_ledger"
	ReasonCheckSummary = "check_summary"
)

const (
	headerScanRows  = 6
	shapeSampleRows = 10
)

var (
	checkNumberRe = regexp.MustCompile(`\b\d{3,}\b`)
	bare4DigitRe  = regexp.MustCompile(`^\d{4}$`)
	monthDayRe    = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	// tripleHeaderRe matches the repeated column headers of a multi-column
	// check register ("Number Date Amount Number Date Amount ...").
	tripleHeaderRe = regexp.MustCompile(`(?i)number\s+date\s+amount`)
)

// strongCheckKeywords mark a check summary section on their own.
var strongCheckKeywords = []string{
	"summary of checks",
	"checks written",
	"check images",
	"gap in check sequence",
	"checks listed are also displayed",
}

// weakCheckKeywords only count together with a structural signal.
var weakCheckKeywords = []string{
	"account number:",
	"check number:",
	"amount:",
	"number date amount",
}

// Skipped records one dropped table and why.
type Skipped struct {
	TableIndex int
	Reason     string
}

// Filter returns the tables worth classifying plus a record per dropped
// table. The input slice is never modified.
func Filter(tables []models.RawTable, log zerolog.Logger) ([]models.RawTable, []Skipped) {
	kept := make([]models.RawTable, 0, len(tables))
	var skipped []Skipped
	for i, t := range tables {
		if reason, skip := Evaluate(t); skip {
			log.Debug().Int("table", i).Str("reason", reason).Msg("table skipped")
			skipped = append(skipped, Skipped{TableIndex: i, Reason: reason})
			continue
		}
		kept = append(kept, t)
	}
	return kept, skipped
}

// Evaluate decides whether a single table is noise. The heuristics are
// deliberately conservative: a table that shows any sign of holding check
// transactions is kept.
func Evaluate(t models.RawTable) (reason string, skip bool) {
	// Check-summary detection runs first: a check register's bare number
	// column also looks ledger-shaped, and the more specific reason wins.
	if isCheckSummary(t) {
		return ReasonCheckSummary, true
	}
	if isDailyLedger(t) {
		return ReasonDailyLedger, true
	}
	return "", false
}

// isDailyLedger detects balance grids by header text or by row shape: wide
// rows made of nothing but dates and amounts.
func isDailyLedger(t models.RawTable) bool {
	for i, row := range t.Rows {
		if i >= headerScanRows {
			break
		}
		if strings.Contains(strings.ToUpper(normalize.RowText(row)), "DAILY LEDGER BALANCES") {
			return true
		}
	}

	sampled, ledgerish := 0, 0
	for _, row := range t.Rows {
		if sampled >= shapeSampleRows {
			break
		}
		text := normalize.RowText(row)
		if text == "" {
			continue
		}
		// Check transactions can look ledger-shaped; never drop those.
		if normalize.HasCheckWord(text) && checkNumberRe.MatchString(text) {
			return false
		}
		sampled++
		if isLedgerLike(text) {
			ledgerish++
		}
	}
	return sampled > 0 && float64(ledgerish)/float64(sampled) >= 0.7
}

// ledgerLikeResidueMax is the most leftover characters a row may have,
// after date and amount tokens are stripped, and still count as carrying
// no descriptive content.
const ledgerLikeResidueMax = 5

// isLedgerLike reports whether a row is dates and amounts with nothing to
// describe them.
func isLedgerLike(text string) bool {
	if len(normalize.Dates(text)) == 0 && len(normalize.Amounts(text)) == 0 {
		return false
	}
	return len(normalize.LedgerResidue(text)) <= ledgerLikeResidueMax
}

// isCheckSummary detects the "checks paid" register sections. A strong
// keyword is decisive; otherwise two independent structural signals are
// required.
func isCheckSummary(t models.RawTable) bool {
	var b strings.Builder
	for _, row := range t.Rows {
		b.WriteString(strings.ToLower(normalize.RowText(row)))
		b.WriteByte('\n')
	}
	text := b.String()

	for _, kw := range strongCheckKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	signals := 0
	for _, kw := range weakCheckKeywords {
		if strings.Contains(text, kw) {
			signals++
			break
		}
	}
	if hasRepeatedTripleHeader(t) {
		signals++
	}
	if bareCheckNumberRatio(t) > 0.5 {
		signals++
	}
	if checkDatePairCount(t) >= 3 {
		signals++
	}
	return signals >= 2
}

func hasRepeatedTripleHeader(t models.RawTable) bool {
	for _, row := range t.Rows {
		if len(tripleHeaderRe.FindAllString(normalize.RowText(row), -1)) >= 2 {
			return true
		}
	}
	return false
}

// bareCheckNumberRatio is the share of rows whose first cell is a bare
// 4-digit number, the shape of a check register's number column.
func bareCheckNumberRatio(t models.RawTable) float64 {
	rows, hits := 0, 0
	for _, row := range t.Rows {
		first := strings.TrimSpace(strings.TrimSuffix(row.Cell(0), "*"))
		if first == "" {
			continue
		}
		rows++
		if bare4DigitRe.MatchString(first) {
			hits++
		}
	}
	if rows == 0 {
		return 0
	}
	return float64(hits) / float64(rows)
}

// checkDatePairCount counts rows pairing a bare check number with a bare
// MM/DD date in adjacent cells.
func checkDatePairCount(t models.RawTable) int {
	count := 0
	for _, row := range t.Rows {
		for i := 0; i+1 < len(row); i++ {
			a := strings.TrimSpace(strings.TrimSuffix(row.Cell(i), "*"))
			b := strings.TrimSpace(row.Cell(i + 1))
			if bare4DigitRe.MatchString(a) && monthDayRe.MatchString(b) {
				count++
				break
			}
		}
	}
	return count
}
