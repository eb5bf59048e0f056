package models

import "github.com/shopspring/decimal"

// TransactionType is the closed set of classifications the pipeline emits.
type TransactionType string

const (
	TypeDeposit        TransactionType = "deposit"
	TypeWithdrawal     TransactionType = "withdrawal"
	TypeCheck          TransactionType = "check"
	TypeEDIPayment     TransactionType = "edi_payment"
	TypeDepositSummary TransactionType = "deposit_summary"
	TypeUnknown        TransactionType = "unknown"
)

// Transaction is the canonical output record of the normalization pipeline.
// It is created once by the classifier (or the summary injector) and never
// mutated afterwards: dedupe may drop one of two equal transactions and the
// sorter only reorders.
type Transaction struct {
	// Date is MM/DD/YYYY, or MM/DD when the source row carried no year and
	// no statement year was configured for the run.
	Date string `json:"date"`
	// CheckNumber is set only for TypeCheck transactions.
	CheckNumber string `json:"checkNumber,omitempty"`
	Description string `json:"description"`
	// Amount sign encodes direction: positive for credits, negative for
	// debits. TypeDepositSummary amounts are always non-negative.
	Amount decimal.Decimal `json:"amount"`
	Type   TransactionType `json:"type"`
	// Balance is reserved for future ledger reconciliation; the
	// classification stages never populate it.
	Balance *decimal.Decimal `json:"balance,omitempty"`
}

// BankID identifies a supported bank profile.
type BankID string

const (
	BankOfAmerica BankID = "bank_of_america"
	WellsFargo    BankID = "wells_fargo"
)
