// Package pipeline composes the normalization stages: table filtering, row
// classification or grouping, deduplication, monthly summary injection and
// the final stable sort. Every stage consumes and produces immutable
// values; a failed row or table is counted and skipped, never fatal.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-normalizer/internal/classify"
	"github.com/insightdelivered/statement-normalizer/internal/dedupe"
	"github.com/insightdelivered/statement-normalizer/internal/grouper"
	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/normalize"
	"github.com/insightdelivered/statement-normalizer/internal/profile"
	"github.com/insightdelivered/statement-normalizer/internal/sorter"
	"github.com/insightdelivered/statement-normalizer/internal/summary"
	"github.com/insightdelivered/statement-normalizer/internal/tablefilter"
)

// Stats are the per-run decision counters.
type Stats struct {
	TablesIn           int                            `json:"tablesIn"`
	TablesSkipped      int                            `json:"tablesSkipped"`
	RowsIn             int                            `json:"rowsIn"`
	RowsSkipped        map[string]int                 `json:"rowsSkipped,omitempty"`
	TransactionsByType map[models.TransactionType]int `json:"transactionsByType,omitempty"`
	DuplicatesRemoved  int                            `json:"duplicatesRemoved"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID        string               `json:"runId"`
	Bank         models.BankID        `json:"bank"`
	Transactions []models.Transaction `json:"transactions"`
	Stats        Stats                `json:"stats"`
}

// Pipeline binds the stages to one bank profile and run configuration.
type Pipeline struct {
	profile       *profile.Profile
	statementYear int
	log           zerolog.Logger
}

// New builds a pipeline for the profile. statementYear may be zero.
func New(p *profile.Profile, statementYear int, log zerolog.Logger) *Pipeline {
	return &Pipeline{profile: p, statementYear: statementYear, log: log}
}

// Run normalizes the extracted tables of one statement document.
func (pl *Pipeline) Run(ctx context.Context, tables []models.RawTable) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := pl.log.With().Str("run_id", runID).Str("bank", string(pl.profile.ID)).Logger()

	res := &Result{
		RunID: runID,
		Bank:  pl.profile.ID,
		Stats: Stats{
			TablesIn:           len(tables),
			RowsSkipped:        map[string]int{},
			TransactionsByType: map[models.TransactionType]int{},
		},
	}

	kept, skipped := tablefilter.Filter(tables, log)
	res.Stats.TablesSkipped = len(skipped)

	var txs []models.Transaction
	if pl.profile.Layout == profile.LayoutColumnar {
		txs = pl.runGrouped(kept, res, log)
	} else {
		txs = pl.runClassified(kept, res, log)
	}

	txs, removed := dedupe.Deduplicate(txs)
	res.Stats.DuplicatesRemoved = removed

	txs = summary.Inject(txs, pl.profile)
	txs = sorter.Sort(txs, pl.profile)

	for _, tx := range txs {
		res.Stats.TransactionsByType[tx.Type]++
	}
	res.Transactions = txs

	log.Info().
		Int("tables_in", res.Stats.TablesIn).
		Int("tables_skipped", res.Stats.TablesSkipped).
		Int("rows_in", res.Stats.RowsIn).
		Int("duplicates_removed", removed).
		Int("transactions", len(txs)).
		Msg("pipeline run complete")
	return res, nil
}

func (pl *Pipeline) runClassified(tables []models.RawTable, res *Result, log zerolog.Logger) []models.Transaction {
	cl := classify.New(pl.profile, pl.statementYear, log)
	rows := normalize.Rows(tables)
	res.Stats.RowsIn = len(rows)

	var txs []models.Transaction
	for _, row := range rows {
		got, skip := cl.Classify(row)
		if skip != "" {
			res.Stats.RowsSkipped[skip]++
			continue
		}
		txs = append(txs, got...)
	}
	return txs
}

func (pl *Pipeline) runGrouped(tables []models.RawTable, res *Result, log zerolog.Logger) []models.Transaction {
	gr := grouper.New(pl.profile, pl.statementYear, log)
	var txs []models.Transaction
	for ti, t := range tables {
		res.Stats.RowsIn += len(t.Rows)
		got, skipped := gr.ParseTable(ti, t)
		res.Stats.RowsSkipped[grouperSkipReason] += skipped
		txs = append(txs, got...)
	}
	if res.Stats.RowsSkipped[grouperSkipReason] == 0 {
		delete(res.Stats.RowsSkipped, grouperSkipReason)
	}
	return txs
}

const grouperSkipReason = "group_dropped"
