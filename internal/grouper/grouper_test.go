package grouper

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/profile"
)

func row(cells ...string) models.RawRow {
	r := make(models.RawRow, len(cells))
	for i := range cells {
		c := cells[i]
		r[i] = &c
	}
	return r
}

func newGrouper(year int) *Grouper {
	return New(profile.WellsFargo(), year, zerolog.Nop())
}

func TestParseTableCardPurchaseWithContinuation(t *testing.T) {
	g := newGrouper(0)
	tbl := models.RawTable{Rows: []models.RawRow{
		row("6/02", "1234", "Purchase authorized", "", "45.00", ""),
		row("", "", "Shell Oil Co", "", "", ""),
	}}

	txs, skipped := g.ParseTable(0, tbl)
	require.Len(t, txs, 1)
	assert.Zero(t, skipped)

	tx := txs[0]
	assert.Equal(t, "Purchase authorized Shell Oil Co", tx.Description)
	assert.Equal(t, "-45", tx.Amount.String())
	assert.Equal(t, models.TypeWithdrawal, tx.Type)
	assert.Empty(t, tx.CheckNumber, "card purchases never take the check column")
}

func TestParseTableCheckColumn(t *testing.T) {
	g := newGrouper(2024)
	tbl := models.RawTable{Rows: []models.RawRow{
		row("6/03", "1501*", "", "", "320.00", ""),
	}}

	txs, _ := g.ParseTable(0, tbl)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TypeCheck, txs[0].Type)
	assert.Equal(t, "1501", txs[0].CheckNumber)
	assert.Equal(t, "Check", txs[0].Description)
	assert.Equal(t, "-320", txs[0].Amount.String())
	assert.Equal(t, "06/03/2024", txs[0].Date)
}

func TestParseTableCreditAndEDI(t *testing.T) {
	g := newGrouper(0)
	tbl := models.RawTable{Rows: []models.RawRow{
		row("6/04", "", "ITG Brands EDI Pymnts", "1,200.00", "", ""),
		row("6/05", "", "Branch deposit", "300.00", "", ""),
	}}

	txs, _ := g.ParseTable(0, tbl)
	require.Len(t, txs, 2)
	assert.Equal(t, models.TypeEDIPayment, txs[0].Type)
	assert.Equal(t, "1200", txs[0].Amount.String())
	assert.Equal(t, models.TypeDeposit, txs[1].Type)
	assert.Equal(t, "300", txs[1].Amount.String())
}

func TestParseTableAmountOnContinuationDropsGroup(t *testing.T) {
	g := newGrouper(0)
	tbl := models.RawTable{Rows: []models.RawRow{
		row("6/02", "", "Transfer to savings", "", "45.00", ""),
		row("", "", "ref 9981", "", "12.00", ""),
	}}

	txs, skipped := g.ParseTable(0, tbl)
	assert.Empty(t, txs)
	assert.Equal(t, 1, skipped)
}

func TestParseTableOrphanContinuationDropped(t *testing.T) {
	g := newGrouper(0)
	tbl := models.RawTable{Rows: []models.RawRow{
		row("", "", "stray continuation text", "", "", ""),
		row("6/02", "", "Branch deposit", "150.00", "", ""),
	}}

	txs, skipped := g.ParseTable(0, tbl)
	require.Len(t, txs, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, models.TypeDeposit, txs[0].Type)
}

func TestParseTableSkipsHeaderAndAmountlessGroups(t *testing.T) {
	g := newGrouper(0)
	tbl := models.RawTable{Rows: []models.RawRow{
		row("Date", "Check No", "Description", "Deposits/Credits", "Withdrawals/Debits", "Balance"),
		row("6/02", "", "Pending memo entry", "", "", ""),
		row("6/03", "", "Branch deposit", "150.00", "", ""),
	}}

	txs, skipped := g.ParseTable(0, tbl)
	require.Len(t, txs, 1)
	assert.Equal(t, 1, skipped, "a dated row without any amount is dropped")
	assert.Equal(t, "Branch deposit", txs[0].Description)
}
