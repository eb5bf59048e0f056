// Package writer renders normalized transactions to the CSV export
// contract consumed by the downstream bookkeeping import.
package writer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/statement-normalizer/internal/models"
)

// record is one CSV line. Amounts are signed, two decimals, no thousands
// separators.
type record struct {
	Date        string `csv:"Date"`
	CheckNo     string `csv:"Check No"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
}

// Write streams the transactions as CSV, header included even when the
// slice is empty.
func Write(w io.Writer, txs []models.Transaction) error {
	records := make([]record, 0, len(txs))
	for _, tx := range txs {
		records = append(records, record{
			Date:        tx.Date,
			CheckNo:     tx.CheckNumber,
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
		})
	}
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// String renders the CSV into memory, used by the HTTP response payload.
func String(txs []models.Transaction) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, txs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile writes the CSV to path, creating or truncating it.
func WriteFile(path string, txs []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, txs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
