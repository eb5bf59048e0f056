// Package dedupe removes transactions extracted more than once, which
// happens when overlapping extraction strategies both find the same table.
package dedupe

import (
	"fmt"
	"strings"

	"github.com/insightdelivered/statement-normalizer/internal/models"
)

// Key is the identity under which two transactions are considered the same
// physical statement line.
func Key(tx models.Transaction) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		tx.Date,
		tx.Amount.Round(2).String(),
		tx.CheckNumber,
		strings.ToUpper(tx.Description),
		tx.Type,
	)
}

// Deduplicate returns a new slice keeping the first occurrence of each
// key. Applying it twice yields the same result.
func Deduplicate(txs []models.Transaction) (out []models.Transaction, removed int) {
	seen := make(map[string]struct{}, len(txs))
	out = make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		k := Key(tx)
		if _, dup := seen[k]; dup {
			removed++
			continue
		}
		seen[k] = struct{}{}
		out = append(out, tx)
	}
	return out, removed
}
