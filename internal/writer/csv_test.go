package writer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-normalizer/internal/models"
)

func TestString(t *testing.T) {
	txs := []models.Transaction{
		{
			Date:        "01/31/2024",
			Description: "Deposits",
			Amount:      decimal.RequireFromString("1700"),
			Type:        models.TypeDepositSummary,
		},
		{
			Date:        "01/16/2024",
			CheckNumber: "228",
			Description: "Check",
			Amount:      decimal.RequireFromString("-1470.65"),
			Type:        models.TypeCheck,
		},
	}

	out, err := String(txs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Check No,Description,Amount", strings.TrimSpace(lines[0]))
	assert.Equal(t, "01/31/2024,,Deposits,1700.00", strings.TrimSpace(lines[1]))
	assert.Equal(t, "01/16/2024,228,Check,-1470.65", strings.TrimSpace(lines[2]))
}

func TestStringEmptyStillHasHeader(t *testing.T) {
	out, err := String(nil)
	require.NoError(t, err)
	assert.Equal(t, "Date,Check No,Description,Amount", strings.TrimSpace(out))
}

func TestStringQuotesCommas(t *testing.T) {
	txs := []models.Transaction{{
		Date:        "01/05/2024",
		Description: "ACME, INC",
		Amount:      decimal.RequireFromString("-10"),
		Type:        models.TypeWithdrawal,
	}}
	out, err := String(txs)
	require.NoError(t, err)
	assert.Contains(t, out, `"ACME, INC"`)
}
