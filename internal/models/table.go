package models

// RawRow is one physical row of extracted cells. A cell is nil when the
// extraction engine found no text in that column.
type RawRow []*string

// RawTable is the immutable grid of text cells produced for one detected
// table region. It is owned by a single pipeline invocation.
type RawTable struct {
	Rows []RawRow `json:"rows"`
}

// NormalizedRow pairs a source row with its flattened text. It only lives
// for the duration of one pipeline run.
type NormalizedRow struct {
	TableIndex int
	RowIndex   int
	Cells      RawRow
	Text       string
}

// Cell returns the text of column i, or "" when the column is absent or
// empty.
func (r RawRow) Cell(i int) string {
	if i < 0 || i >= len(r) || r[i] == nil {
		return ""
	}
	return *r[i]
}
