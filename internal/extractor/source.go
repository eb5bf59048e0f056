// Package extractor is the boundary to the table extraction engines. The
// pipeline consumes extracted tables; producing them from documents is the
// job of external strategies behind the TableSource interface.
package extractor

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-normalizer/internal/models"
)

// TableSource is one extraction strategy for a document.
type TableSource interface {
	// Name identifies the strategy in logs.
	Name() string
	// Tables extracts every table region the strategy can find.
	Tables(ctx context.Context) ([]models.RawTable, error)
}

// Collect runs the sources in order as a fallback chain: once the
// accumulated table count reaches minTables, the remaining sources are not
// tried. A failing source is logged and skipped. Overlap between sources
// is expected and resolved later by deduplication.
func Collect(ctx context.Context, log zerolog.Logger, minTables int, sources ...TableSource) ([]models.RawTable, error) {
	if minTables < 1 {
		minTables = 1
	}
	var tables []models.RawTable
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := src.Tables(ctx)
		if err != nil {
			log.Warn().Str("source", src.Name()).Err(err).Msg("extraction source failed")
			continue
		}
		log.Debug().Str("source", src.Name()).Int("tables", len(got)).Msg("extraction source done")
		tables = append(tables, got...)
		if len(tables) >= minTables {
			break
		}
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables extracted by %d source(s)", len(sources))
	}
	return tables, nil
}

// CollectAll runs every source concurrently and merges all results in
// source order. Used when strategies are cheap and recall matters more
// than latency; duplicates are left for the deduplication stage.
func CollectAll(ctx context.Context, log zerolog.Logger, sources ...TableSource) ([]models.RawTable, error) {
	results := make([][]models.RawTable, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src TableSource) {
			defer wg.Done()
			got, err := src.Tables(ctx)
			if err != nil {
				log.Warn().Str("source", src.Name()).Err(err).Msg("extraction source failed")
				return
			}
			results[i] = got
		}(i, src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var tables []models.RawTable
	for _, got := range results {
		tables = append(tables, got...)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables extracted by %d source(s)", len(sources))
	}
	return tables, nil
}
