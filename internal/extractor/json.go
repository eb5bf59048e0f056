package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/statement-normalizer/internal/models"
)

// DecodeTables reads the extraction engine's wire format: a JSON array of
// tables, each a grid of nullable string cells.
func DecodeTables(r io.Reader) ([]models.RawTable, error) {
	var grids [][][]*string
	dec := json.NewDecoder(r)
	if err := dec.Decode(&grids); err != nil {
		return nil, fmt.Errorf("decode tables json: %w", err)
	}
	tables := make([]models.RawTable, 0, len(grids))
	for _, grid := range grids {
		t := models.RawTable{Rows: make([]models.RawRow, 0, len(grid))}
		for _, row := range grid {
			t.Rows = append(t.Rows, models.RawRow(row))
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// JSONFileSource is a TableSource backed by a tables JSON file on disk.
type JSONFileSource struct {
	Path string
}

func (s JSONFileSource) Name() string { return "json:" + s.Path }

func (s JSONFileSource) Tables(ctx context.Context) ([]models.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open tables file: %w", err)
	}
	defer f.Close()
	return DecodeTables(f)
}

// StaticSource serves pre-extracted tables, mainly for the HTTP surface
// and tests.
type StaticSource struct {
	SourceName string
	Data       []models.RawTable
}

func (s StaticSource) Name() string {
	if s.SourceName == "" {
		return "static"
	}
	return s.SourceName
}

func (s StaticSource) Tables(ctx context.Context) ([]models.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Data, nil
}
