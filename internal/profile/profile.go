// Package profile carries the per-bank configuration records and the
// statement-to-bank detection logic.
package profile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/insightdelivered/statement-normalizer/internal/models"
)

// ErrUnsupportedBank is returned when no profile scores above the detection
// threshold, or when an explicit bank identifier is unknown.
var ErrUnsupportedBank = errors.New("unsupported bank")

// Layout describes how a bank renders its transaction tables.
type Layout int

const (
	// LayoutFreeText statements flatten each row to text and go through
	// the row classifier.
	LayoutFreeText Layout = iota
	// LayoutColumnar statements keep a fixed column schema and go through
	// the multi-row grouper.
	LayoutColumnar
)

// Columns maps the fixed roles of a columnar layout to cell indexes.
type Columns struct {
	Date        int
	CheckNumber int
	Description int
	Credit      int
	Debit       int
	Balance     int
}

// Profile is the configuration record for one supported bank.
type Profile struct {
	ID   models.BankID
	Name string

	// Detection inputs. Keywords score 1, strong indicators 2 and an
	// account pattern match 3; a profile needs a total of at least 2.
	Keywords         []string
	StrongIndicators []string
	AccountPatterns  []*regexp.Regexp
	HeaderPatterns   []string

	Layout  Layout
	Columns Columns

	// EDICompanies are the trading partners whose credits classify as
	// edi_payment rather than deposit.
	EDICompanies []string

	// MonthlySummary enables per-month deposit_summary injection.
	MonthlySummary bool
	// SuppressDeposits drops individual deposit rows once the monthly
	// summary represents them. EDI payments are always kept.
	SuppressDeposits bool

	ediMatcher *ahocorasick.Matcher
}

// IsEDICompany reports whether the description mentions one of the
// profile's EDI trading partners.
func (p *Profile) IsEDICompany(description string) bool {
	if p.ediMatcher == nil {
		return false
	}
	return len(p.ediMatcher.Match([]byte(strings.ToUpper(description)))) > 0
}

// SectionPriority orders output sections: monthly summaries lead, EDI
// payments follow, checks close the statement.
func (p *Profile) SectionPriority(t models.TransactionType) int {
	switch t {
	case models.TypeDepositSummary:
		return 0
	case models.TypeEDIPayment:
		return 1
	case models.TypeDeposit:
		return 2
	case models.TypeWithdrawal:
		return 3
	case models.TypeCheck:
		return 4
	default:
		return 5
	}
}

func newProfile(p Profile) *Profile {
	if len(p.EDICompanies) > 0 {
		upper := make([]string, len(p.EDICompanies))
		for i, c := range p.EDICompanies {
			upper[i] = strings.ToUpper(c)
		}
		p.ediMatcher = ahocorasick.NewStringMatcher(upper)
	}
	return &p
}

// BankOfAmerica returns the Bank of America business statement profile.
func BankOfAmerica() *Profile {
	return newProfile(Profile{
		ID:   models.BankOfAmerica,
		Name: "Bank of America",
		Keywords: []string{
			"BANK OF AMERICA",
			"BANKOFAMERICA.COM",
			"BUSINESS ADVANTAGE",
		},
		StrongIndicators: []string{
			"P.O. BOX 25118",
			"TAMPA, FL 33622-5118",
			"1.888.BUSINESS",
		},
		AccountPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Account number:\s*\d{4}\s*\d{4}\s*\d{4}`),
		},
		HeaderPatterns: []string{"Your Business Advantage Fundamentals"},
		Layout:         LayoutFreeText,
		EDICompanies: []string{
			"ITG BRANDS",
			"HELIX PAYMENT",
			"REYNOLDS",
			"PM USA",
			"USSMOKELESS",
			"JAPAN TOBAC",
			"MECCA PAYMENT",
		},
		MonthlySummary:   true,
		SuppressDeposits: true,
	})
}

// WellsFargo returns the Wells Fargo business statement profile.
func WellsFargo() *Profile {
	return newProfile(Profile{
		ID:   models.WellsFargo,
		Name: "Wells Fargo",
		Keywords: []string{
			"WELLS FARGO",
			"NAVIGATE BUSINESS CHECKING",
			"WELLSFARGO.COM/BIZ",
		},
		StrongIndicators: []string{
			"1-800-CALL-WELLS",
			"PORTLAND, OR 97228-6995",
			"WELLSFARGO.COM/BIZ",
		},
		AccountPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Account number:\s*\d{10}`),
		},
		HeaderPatterns: []string{"Navigate Business Checking"},
		Layout:         LayoutColumnar,
		Columns: Columns{
			Date:        0,
			CheckNumber: 1,
			Description: 2,
			Credit:      3,
			Debit:       4,
			Balance:     5,
		},
		EDICompanies: []string{
			"ITG BRANDS",
			"JAPAN TOBAC",
			"LIGGETT VECTOR",
			"EDI PYMNTS",
			"ACH CREDIT",
		},
		MonthlySummary:   false,
		SuppressDeposits: false,
	})
}

// All returns the supported profiles in detection order.
func All() []*Profile {
	return []*Profile{BankOfAmerica(), WellsFargo()}
}

// ByID resolves an explicit bank identifier.
func ByID(id models.BankID) (*Profile, error) {
	for _, p := range All() {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedBank, id)
}
