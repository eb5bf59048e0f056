package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-normalizer/internal/profile"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTablesFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.json")
	payload := `[[["01/05 COUNTER CREDIT 500.00"],["01/10 ACH PAYMENT ACME SUPPLY -250.00"]]]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestConvertRequiresTablesFlag(t *testing.T) {
	_, err := runCLI(t, "convert", "--bank", "bank_of_america")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tables")
}

func TestConvertRequiresBankOrPDF(t *testing.T) {
	_, err := runCLI(t, "convert", "--tables", writeTablesFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --bank or --pdf is required")
}

func TestConvertRejectsUnknownBank(t *testing.T) {
	_, err := runCLI(t, "convert",
		"--tables", writeTablesFile(t),
		"--bank", "credit_union_x")
	assert.ErrorIs(t, err, profile.ErrUnsupportedBank)
}

func TestConvertWritesCSV(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.csv")
	stdout, err := runCLI(t, "convert",
		"--tables", writeTablesFile(t),
		"--bank", "bank_of_america",
		"--year", "2024",
		"--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Check No,Description,Amount")
	assert.Contains(t, string(data), "Deposits")
}

func TestRootRegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "convert")
	assert.Contains(t, names, "serve")
}
