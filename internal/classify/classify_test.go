package classify

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/profile"
)

func textRow(text string) models.NormalizedRow {
	return models.NormalizedRow{Text: text}
}

func newBofA(t *testing.T, year int) *Classifier {
	t.Helper()
	return New(profile.BankOfAmerica(), year, zerolog.Nop())
}

func TestClassifyCheckRegisterRow(t *testing.T) {
	c := newBofA(t, 0)

	txs, skip := c.Classify(textRow("01/16/24 228 -1,470.65 01/19/24 230* -1,030.00"))
	require.Empty(t, skip)
	require.Len(t, txs, 2)

	assert.Equal(t, "01/16/2024", txs[0].Date)
	assert.Equal(t, "228", txs[0].CheckNumber)
	assert.Equal(t, "-1470.65", txs[0].Amount.String())
	assert.Equal(t, models.TypeCheck, txs[0].Type)

	assert.Equal(t, "01/19/2024", txs[1].Date)
	assert.Equal(t, "230", txs[1].CheckNumber, "trailing asterisk is stripped")
	assert.Equal(t, "-1030", txs[1].Amount.String())
	assert.Equal(t, models.TypeCheck, txs[1].Type)
}

func TestClassifyCardOverride(t *testing.T) {
	c := newBofA(t, 0)

	txs, skip := c.Classify(textRow("03/02 CHECKCARD 0301 SHELL OIL 24.18"))
	require.Empty(t, skip)
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.Equal(t, models.TypeWithdrawal, tx.Type)
	assert.Equal(t, "-24.18", tx.Amount.String())
	assert.Empty(t, tx.CheckNumber, "card rows never carry a check number")
}

func TestClassifyEDIPayment(t *testing.T) {
	c := newBofA(t, 0)

	txs, skip := c.Classify(textRow("01/05 1234 ITG BRANDS EDI PYMNTS 500.00"))
	require.Empty(t, skip)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TypeEDIPayment, txs[0].Type)
	assert.Equal(t, "500", txs[0].Amount.String())
}

func TestClassifyDeposit(t *testing.T) {
	c := newBofA(t, 2024)

	txs, skip := c.Classify(textRow("01/05 COUNTER CREDIT WHOLESALE ACCT 750.00"))
	require.Empty(t, skip)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TypeDeposit, txs[0].Type)
	assert.Equal(t, "01/05/2024", txs[0].Date)
	assert.True(t, txs[0].Amount.IsPositive())
}

func TestClassifyStrictCheck(t *testing.T) {
	c := newBofA(t, 0)

	t.Run("all conditions met", func(t *testing.T) {
		txs, skip := c.Classify(textRow("01/10 Check 1501 PAYEE HARDWARE -320.00"))
		require.Empty(t, skip)
		require.Len(t, txs, 1)
		assert.Equal(t, models.TypeCheck, txs[0].Type)
		assert.Equal(t, "1501", txs[0].CheckNumber)
		assert.True(t, txs[0].Amount.IsNegative())
	})

	t.Run("labeled number outranks a bare one", func(t *testing.T) {
		txs, skip := c.Classify(textRow("01/10 REF 9981 Check 1501 PAYMENT -320.00"))
		require.Empty(t, skip)
		require.Len(t, txs, 1)
		assert.Equal(t, models.TypeCheck, txs[0].Type)
		assert.Equal(t, "1501", txs[0].CheckNumber)
	})

	t.Run("date year is not a check number", func(t *testing.T) {
		txs, skip := c.Classify(textRow("01/10/2024 Check 1501 PAYEE HARDWARE -320.00"))
		require.Empty(t, skip)
		require.Len(t, txs, 1)
		assert.Equal(t, "1501", txs[0].CheckNumber)
	})

	t.Run("exclusion term vetoes", func(t *testing.T) {
		txs, skip := c.Classify(textRow("01/10 Check 1501 RETURN ITEM FEE -35.00"))
		require.Empty(t, skip)
		require.Len(t, txs, 1)
		assert.Equal(t, models.TypeWithdrawal, txs[0].Type)
		assert.Empty(t, txs[0].CheckNumber)
	})

	t.Run("positive amount is never a check", func(t *testing.T) {
		txs, skip := c.Classify(textRow("01/10 Check 1501 REISSUE CONTOSO 320.00"))
		require.Empty(t, skip)
		require.Len(t, txs, 1)
		assert.NotEqual(t, models.TypeCheck, txs[0].Type)
	})
}

func TestClassifySkips(t *testing.T) {
	c := newBofA(t, 0)

	tests := []struct {
		name string
		text string
		skip string
	}{
		{"ledger line", "01/05 1,200.00 01/06 1,150.50 01/07 980.00", SkipLedgerLine},
		{"no date", "MONTHLY SERVICE SUMMARY 15.00", SkipNoDate},
		{"no amount", "01/05 Page 3 of 9", SkipNoAmount},
		{"low alpha", "01/05 -- 42.00", SkipLowAlpha},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, skip := c.Classify(textRow(tt.text))
			assert.Empty(t, txs)
			assert.Equal(t, tt.skip, skip)
		})
	}
}

func TestClassifySignInvariant(t *testing.T) {
	c := newBofA(t, 0)

	rows := []string{
		"01/05 COUNTER CREDIT 500.00",
		"01/06 ACH PAYMENT ACME SUPPLY -250.00",
		"01/07 CHECKCARD 0105 SHELL OIL 24.18",
		"01/16/24 228 -1,470.65",
		"01/08 ITG BRANDS EDI PYMNTS 1,200.00",
	}
	for _, text := range rows {
		txs, skip := c.Classify(textRow(text))
		require.Empty(t, skip, text)
		for _, tx := range txs {
			switch tx.Type {
			case models.TypeDeposit, models.TypeEDIPayment:
				assert.True(t, tx.Amount.IsPositive(), text)
			case models.TypeWithdrawal, models.TypeCheck:
				assert.True(t, tx.Amount.IsNegative(), text)
			}
			if tx.Type != models.TypeCheck {
				assert.Empty(t, tx.CheckNumber, text)
			}
		}
	}
}
