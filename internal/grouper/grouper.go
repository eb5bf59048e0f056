// Package grouper assembles transactions from columnar statement tables
// where a logical transaction spans several physical rows: the dated row
// carries the amount, following rows only continue the description.
package grouper

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/normalize"
	"github.com/insightdelivered/statement-normalizer/internal/profile"
)

// Skip reasons recorded for dropped row groups.
const (
	SkipOrphanContinuation = "orphan_continuation"
	SkipAmbiguousAmounts   = "ambiguous_amounts"
	SkipNoAmount           = "no_amount"
	SkipHeader             = "header_row"
)

var (
	dateCellRe     = regexp.MustCompile(`^\d{1,2}/\d{1,2}(?:/\d{2,4})?$`)
	checkNumCellRe = regexp.MustCompile(`^\d{3,}\*?$`)
)

// Grouper parses one bank's columnar tables using the profile's column
// role mapping.
type Grouper struct {
	profile       *profile.Profile
	statementYear int
	log           zerolog.Logger
}

// New returns a grouper for a columnar-layout profile.
func New(p *profile.Profile, statementYear int, log zerolog.Logger) *Grouper {
	return &Grouper{profile: p, statementYear: statementYear, log: log}
}

// group accumulates the physical rows of one logical transaction.
type group struct {
	date      string
	check     string
	descParts []string
	credit    string
	debit     string
	invalid   bool
	startRow  int
}

// ParseTable walks a table top to bottom, grouping continuation rows into
// the preceding dated row. It returns the transactions plus the number of
// dropped groups and rows.
func (g *Grouper) ParseTable(tableIndex int, t models.RawTable) (txs []models.Transaction, skipped int) {
	cols := g.profile.Columns
	var cur *group

	flush := func() {
		if cur == nil {
			return
		}
		if tx, reason := g.finish(cur); reason == "" {
			txs = append(txs, tx)
		} else {
			skipped++
			g.log.Debug().
				Int("table", tableIndex).
				Int("row", cur.startRow).
				Str("reason", reason).
				Msg("row group dropped")
		}
		cur = nil
	}

	for ri, row := range t.Rows {
		dateCell := strings.TrimSpace(row.Cell(cols.Date))
		credit := strings.TrimSpace(row.Cell(cols.Credit))
		debit := strings.TrimSpace(row.Cell(cols.Debit))
		desc := strings.TrimSpace(row.Cell(cols.Description))

		if isHeaderRow(row) {
			flush()
			continue
		}

		if dateCellRe.MatchString(dateCell) {
			flush()
			cur = &group{
				date:     dateCell,
				check:    strings.TrimSpace(row.Cell(cols.CheckNumber)),
				credit:   credit,
				debit:    debit,
				startRow: ri,
			}
			if desc != "" {
				cur.descParts = append(cur.descParts, desc)
			}
			continue
		}

		// Continuation row: descriptive text under the dated row. An
		// amount here means the extraction misaligned the table, which
		// poisons the whole group.
		if cur != nil {
			if credit != "" || debit != "" {
				cur.invalid = true
			}
			if desc != "" {
				cur.descParts = append(cur.descParts, desc)
			}
			continue
		}

		if desc != "" || credit != "" || debit != "" {
			skipped++
			g.log.Warn().
				Int("table", tableIndex).
				Int("row", ri).
				Str("reason", SkipOrphanContinuation).
				Msg("continuation row without a dated row")
		}
	}
	flush()
	return txs, skipped
}

// finish turns an accumulated group into a transaction, or returns a skip
// reason.
func (g *Grouper) finish(cur *group) (models.Transaction, string) {
	if cur.invalid {
		return models.Transaction{}, SkipAmbiguousAmounts
	}

	var amount decimal.Decimal
	switch {
	case cur.credit != "":
		d, err := normalize.ParseAmount(cur.credit)
		if err != nil {
			return models.Transaction{}, SkipNoAmount
		}
		amount = d.Abs()
	case cur.debit != "":
		d, err := normalize.ParseAmount(cur.debit)
		if err != nil {
			return models.Transaction{}, SkipNoAmount
		}
		amount = d.Abs().Neg()
	default:
		return models.Transaction{}, SkipNoAmount
	}

	rawDesc := strings.Join(cur.descParts, " ")
	tx := models.Transaction{
		Date:        normalize.StandardizeDate(cur.date, g.statementYear),
		Description: normalize.CleanDescription(rawDesc),
		Amount:      amount,
	}

	switch {
	// Card purchases win over the check column: a stray number next to a
	// "Purchase authorized" row is not a check number.
	case normalize.HasCardHint(rawDesc):
		tx.Type = models.TypeWithdrawal
		tx.Amount = amount.Abs().Neg()
	case checkNumCellRe.MatchString(cur.check):
		tx.Type = models.TypeCheck
		tx.CheckNumber = strings.TrimSuffix(cur.check, "*")
		tx.Amount = amount.Abs().Neg()
		if rawDesc == "" {
			tx.Description = "Check"
		}
	case amount.IsPositive() && g.profile.IsEDICompany(rawDesc):
		tx.Type = models.TypeEDIPayment
	case amount.IsPositive():
		tx.Type = models.TypeDeposit
	default:
		tx.Type = models.TypeWithdrawal
	}
	return tx, ""
}

// isHeaderRow recognizes the repeated column header line.
func isHeaderRow(row models.RawRow) bool {
	text := strings.ToLower(normalize.RowText(row))
	return strings.Contains(text, "date") &&
		strings.Contains(text, "description") &&
		(strings.Contains(text, "credit") || strings.Contains(text, "debit") ||
			strings.Contains(text, "deposits") || strings.Contains(text, "withdrawals"))
}
