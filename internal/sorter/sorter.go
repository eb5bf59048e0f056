// Package sorter produces the final deterministic ordering of the
// normalized statement.
package sorter

import (
	"sort"

	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/normalize"
	"github.com/insightdelivered/statement-normalizer/internal/profile"
)

// Sort returns a new slice ordered by section (summaries first, checks
// last per the profile), then ascending date, then description, with
// check number and amount as final tie-breaks so the ordering is
// invariant under input permutation. The sort is stable and the input
// slice is untouched.
func Sort(txs []models.Transaction, p *profile.Profile) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		pa, pb := p.SectionPriority(a.Type), p.SectionPriority(b.Type)
		if pa != pb {
			return pa < pb
		}
		ta, aok := normalize.ParseDate(a.Date)
		tb, bok := normalize.ParseDate(b.Date)
		switch {
		case aok && bok && !ta.Equal(tb):
			return ta.Before(tb)
		case aok != bok:
			// Parseable dates come before unparseable ones.
			return aok
		case !aok && a.Date != b.Date:
			return a.Date < b.Date
		}
		if a.Description != b.Description {
			return a.Description < b.Description
		}
		if a.CheckNumber != b.CheckNumber {
			return a.CheckNumber < b.CheckNumber
		}
		return a.Amount.LessThan(b.Amount)
	})
	return out
}
