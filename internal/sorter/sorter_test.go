package sorter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/profile"
)

func tx(date, desc string, typ models.TransactionType) models.Transaction {
	return models.Transaction{
		Date:        date,
		Description: desc,
		Amount:      decimal.New(1, 0),
		Type:        typ,
	}
}

func TestSortSectionsThenDate(t *testing.T) {
	p := profile.BankOfAmerica()
	in := []models.Transaction{
		tx("01/20/2024", "Check", models.TypeCheck),
		tx("01/05/2024", "ACH Payment", models.TypeWithdrawal),
		tx("01/31/2024", "Deposits", models.TypeDepositSummary),
		tx("01/02/2024", "ITG BRANDS", models.TypeEDIPayment),
		tx("01/01/2024", "Check", models.TypeCheck),
	}

	out := Sort(in, p)
	require.Len(t, out, 5)

	gotTypes := []models.TransactionType{out[0].Type, out[1].Type, out[2].Type, out[3].Type, out[4].Type}
	assert.Equal(t, []models.TransactionType{
		models.TypeDepositSummary,
		models.TypeEDIPayment,
		models.TypeWithdrawal,
		models.TypeCheck,
		models.TypeCheck,
	}, gotTypes)

	assert.Equal(t, "01/01/2024", out[3].Date, "checks ordered by date within the section")
	assert.Equal(t, "01/20/2024", out[4].Date)
}

func TestSortStableAndPure(t *testing.T) {
	p := profile.BankOfAmerica()
	a := tx("01/05/2024", "Same", models.TypeWithdrawal)
	b := tx("01/05/2024", "Same", models.TypeWithdrawal)
	b.Amount = decimal.New(2, 0)

	in := []models.Transaction{a, b}
	out1 := Sort(in, p)
	out2 := Sort(out1, p)

	assert.Equal(t, out1, out2, "sorting is deterministic")
	assert.Equal(t, "01/05/2024", in[0].Date, "input is untouched")
}

func TestSortPermutationInvariant(t *testing.T) {
	// Rows equal on (section, date, description) still order the same
	// regardless of extraction order.
	p := profile.BankOfAmerica()
	a := tx("01/05/2024", "Same", models.TypeWithdrawal)
	b := tx("01/05/2024", "Same", models.TypeWithdrawal)
	b.Amount = decimal.New(2, 0)
	c := tx("01/05/2024", "Same", models.TypeCheck)
	c.CheckNumber = "1501"
	d := tx("01/05/2024", "Same", models.TypeCheck)
	d.CheckNumber = "1502"

	forward := Sort([]models.Transaction{a, b, c, d}, p)
	backward := Sort([]models.Transaction{d, c, b, a}, p)
	assert.Equal(t, forward, backward)
	assert.True(t, forward[0].Amount.LessThan(forward[1].Amount))
	assert.Equal(t, "1501", forward[2].CheckNumber)
}

func TestSortUnparseableDatesLast(t *testing.T) {
	p := profile.BankOfAmerica()
	in := []models.Transaction{
		tx("03/02", "Year-less", models.TypeWithdrawal),
		tx("01/05/2024", "Dated", models.TypeWithdrawal),
	}
	out := Sort(in, p)
	assert.Equal(t, "Dated", out[0].Description)
	assert.Equal(t, "Year-less", out[1].Description)
}
