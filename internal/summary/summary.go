// Package summary injects per-month deposit_summary transactions for
// profiles whose statements report deposits as a monthly aggregate.
package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/normalize"
	"github.com/insightdelivered/statement-normalizer/internal/profile"
)

type monthKey struct {
	year  int
	month time.Month
}

// Inject groups transactions by calendar month and prepends each month
// with a deposit_summary totaling that month's positive deposit and EDI
// credits. Profiles without monthly summaries get an untouched copy.
// Transactions whose dates cannot be parsed (including year-less MM/DD
// dates) keep their relative order in a trailing bucket with no summary.
func Inject(txs []models.Transaction, p *profile.Profile) []models.Transaction {
	if !p.MonthlySummary {
		out := make([]models.Transaction, len(txs))
		copy(out, txs)
		return out
	}

	months := make(map[monthKey][]models.Transaction)
	var unknown []models.Transaction
	for _, tx := range txs {
		t, ok := normalize.ParseDate(tx.Date)
		if !ok {
			unknown = append(unknown, tx)
			continue
		}
		k := monthKey{year: t.Year(), month: t.Month()}
		months[k] = append(months[k], tx)
	}

	keys := make([]monthKey, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]models.Transaction, 0, len(txs)+len(keys))
	for _, k := range keys {
		group := months[k]
		total := depositTotal(group)
		if total.IsPositive() {
			out = append(out, models.Transaction{
				Date:        lastDayOfMonth(k),
				Description: "Deposits",
				Amount:      total,
				Type:        models.TypeDepositSummary,
			})
		}
		for _, tx := range group {
			if p.SuppressDeposits && tx.Type == models.TypeDeposit {
				continue
			}
			out = append(out, tx)
		}
	}
	return append(out, unknown...)
}

// depositTotal sums the positive deposit and edi_payment amounts of one
// month.
func depositTotal(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type != models.TypeDeposit && tx.Type != models.TypeEDIPayment {
			continue
		}
		if tx.Amount.IsPositive() {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func lastDayOfMonth(k monthKey) string {
	first := time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return fmt.Sprintf("%02d/%02d/%04d", int(last.Month()), last.Day(), last.Year())
}
