// Package classify turns normalized statement rows into typed transactions.
//
// Classification is an ordered rule table evaluated top to bottom with
// early exit. Earlier rules are more specific; the final rule falls back to
// the amount sign. Rules either emit transactions, skip the row with a
// reason, or pass to the next rule.
package classify

import (
	"regexp"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/normalize"
	"github.com/insightdelivered/statement-normalizer/internal/profile"
)

// Skip reasons surfaced in pipeline stats and decision logs.
const (
	SkipLedgerLine = "ledger_line"
	SkipNoDate     = "no_date"
	SkipNoAmount   = "no_amount"
	SkipLowAlpha   = "low_alpha"
)

var (
	// checkTripletRe matches the side-by-side check register layout:
	// dated check number and amount, two or three entries per line.
	checkTripletRe = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4})\s+(\d{3,})(\*?)\s+(-?\$?[\d,]+\.\d{2})`)
	checkNumberRe  = regexp.MustCompile(`\b(\d{3,})\b`)

	// labeledCheckNumberRe binds a number to an explicit check label; a
	// labeled number always outranks a bare one elsewhere in the row.
	labeledCheckNumberRe = regexp.MustCompile(`(?i)\bCheck\s*#?\s*(\d{3,})\b`)

	// checkExclusionRe lists terms that veto the strict check rule even
	// when a check number is present.
	checkExclusionRe = regexp.MustCompile(`(?i)\b(RETURN|DEPOSIT|FEE|REFUND|CREDIT|REVERSAL|VOID|RECEIVED)\b`)
)

// minDescriptionAlpha is the letter count below which a row is treated as
// artifact noise rather than a transaction.
const minDescriptionAlpha = 4

// Classifier applies the rule table for one bank profile.
type Classifier struct {
	profile       *profile.Profile
	statementYear int
	log           zerolog.Logger
}

// New returns a classifier for the profile. statementYear may be zero, in
// which case year-less dates stay MM/DD.
func New(p *profile.Profile, statementYear int, log zerolog.Logger) *Classifier {
	return &Classifier{profile: p, statementYear: statementYear, log: log}
}

type ruleResult struct {
	txs  []models.Transaction
	skip string
	done bool
}

type rule struct {
	name  string
	apply func(c *Classifier, row models.NormalizedRow) ruleResult
}

// Rule order matters: rejects first, specific extractors next, the sign
// fallback last.
var rules = []rule{
	{"ledger_reject", (*Classifier).ledgerReject},
	{"check_triplets", (*Classifier).checkTriplets},
	{"require_date_and_amount", (*Classifier).requireDateAndAmount},
	{"card_override", (*Classifier).cardOverride},
	{"strict_check", (*Classifier).strictCheck},
	{"low_alpha_reject", (*Classifier).lowAlphaReject},
	{"sign_fallback", (*Classifier).signFallback},
}

// Classify runs the rule table over one row. It returns the emitted
// transactions, or a non-empty skip reason when the row is dropped. A row
// never does both.
func (c *Classifier) Classify(row models.NormalizedRow) ([]models.Transaction, string) {
	for _, r := range rules {
		res := r.apply(c, row)
		if !res.done {
			continue
		}
		if res.skip != "" {
			c.log.Debug().
				Str("rule", r.name).
				Str("reason", res.skip).
				Int("table", row.TableIndex).
				Int("row", row.RowIndex).
				Msg("row skipped")
			return nil, res.skip
		}
		c.log.Debug().
			Str("rule", r.name).
			Int("table", row.TableIndex).
			Int("row", row.RowIndex).
			Int("transactions", len(res.txs)).
			Msg("row classified")
		return res.txs, ""
	}
	// signFallback is terminal, so the loop always returns.
	panic("classify: rule table has no terminal rule")
}

func (c *Classifier) ledgerReject(row models.NormalizedRow) ruleResult {
	if normalize.IsPureLedger(row.Text) {
		return ruleResult{skip: SkipLedgerLine, done: true}
	}
	return ruleResult{}
}

// checkTriplets handles multi-column check registers where one physical
// row carries several checks. Register amounts are unsigned; checks are
// always debits.
func (c *Classifier) checkTriplets(row models.NormalizedRow) ruleResult {
	matches := checkTripletRe.FindAllStringSubmatch(row.Text, -1)
	if len(matches) == 0 {
		return ruleResult{}
	}
	txs := make([]models.Transaction, 0, len(matches))
	for _, m := range matches {
		amount, err := normalize.ParseAmount(m[4])
		if err != nil {
			continue
		}
		txs = append(txs, models.Transaction{
			Date:        normalize.StandardizeDate(m[1], c.statementYear),
			CheckNumber: m[2],
			Description: "Check",
			Amount:      amount.Abs().Neg(),
			Type:        models.TypeCheck,
		})
	}
	if len(txs) == 0 {
		return ruleResult{}
	}
	return ruleResult{txs: txs, done: true}
}

func (c *Classifier) requireDateAndAmount(row models.NormalizedRow) ruleResult {
	if len(normalize.Dates(row.Text)) == 0 {
		return ruleResult{skip: SkipNoDate, done: true}
	}
	if _, ok := normalize.RightmostAmount(row.Text); !ok {
		return ruleResult{skip: SkipNoAmount, done: true}
	}
	return ruleResult{}
}

// cardOverride forces CHECKCARD/PURCHASE rows to withdrawals. It runs
// before the check rule so that a stray number on a card row can never
// become a check number.
func (c *Classifier) cardOverride(row models.NormalizedRow) ruleResult {
	if !normalize.HasCardHint(row.Text) {
		return ruleResult{}
	}
	amount, _ := normalize.RightmostAmount(row.Text)
	return ruleResult{done: true, txs: []models.Transaction{{
		Date:        c.rowDate(row),
		Description: normalize.CleanDescription(row.Text),
		Amount:      amount.Abs().Neg(),
		Type:        models.TypeWithdrawal,
	}}}
}

// strictCheck requires the conjunction of the check word, a check number,
// a negative amount and no exclusion term.
func (c *Classifier) strictCheck(row models.NormalizedRow) ruleResult {
	if !normalize.HasCheckWord(row.Text) {
		return ruleResult{}
	}
	num := checkNumber(row.Text)
	if num == "" {
		return ruleResult{}
	}
	amount, _ := normalize.RightmostAmount(row.Text)
	if !amount.IsNegative() {
		return ruleResult{}
	}
	if checkExclusionRe.MatchString(row.Text) {
		return ruleResult{}
	}
	return ruleResult{done: true, txs: []models.Transaction{{
		Date:        c.rowDate(row),
		CheckNumber: num,
		Description: normalize.CleanDescription(row.Text),
		Amount:      amount,
		Type:        models.TypeCheck,
	}}}
}

// checkNumber extracts the check number from a row, preferring a number
// carrying an explicit Check label over the first bare 3+ digit number.
// Date years and amount digits must not be mistaken for check numbers, so
// the bare search runs on token-stripped text.
func checkNumber(text string) string {
	if m := labeledCheckNumberRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := checkNumberRe.FindStringSubmatch(normalize.StripTokens(text)); m != nil {
		return m[1]
	}
	return ""
}

// lowAlphaReject inspects what is left once dates and amounts are gone;
// the description fallbacks must not mask an empty row, so this looks at
// the raw residue rather than the cleaned description.
func (c *Classifier) lowAlphaReject(row models.NormalizedRow) ruleResult {
	if normalize.AlphaCount(normalize.LedgerResidue(row.Text)) < minDescriptionAlpha {
		return ruleResult{skip: SkipLowAlpha, done: true}
	}
	return ruleResult{}
}

// signFallback types the row by amount sign. Positive credits from an EDI
// trading partner become edi_payment, other credits deposit, debits
// withdrawal. Zero amounts stay unknown.
func (c *Classifier) signFallback(row models.NormalizedRow) ruleResult {
	amount, _ := normalize.RightmostAmount(row.Text)
	desc := normalize.CleanDescription(row.Text)
	tx := models.Transaction{
		Date:        c.rowDate(row),
		Description: desc,
		Amount:      amount,
	}
	switch {
	case amount.IsPositive() && c.profile.IsEDICompany(row.Text):
		tx.Type = models.TypeEDIPayment
	case amount.IsPositive():
		tx.Type = models.TypeDeposit
	case amount.IsNegative():
		tx.Type = models.TypeWithdrawal
	default:
		tx.Type = models.TypeUnknown
	}
	return ruleResult{txs: []models.Transaction{tx}, done: true}
}

func (c *Classifier) rowDate(row models.NormalizedRow) string {
	dates := normalize.Dates(row.Text)
	if len(dates) == 0 {
		return ""
	}
	return normalize.StandardizeDate(dates[0], c.statementYear)
}
