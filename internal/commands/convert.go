package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-normalizer/internal/extractor"
	"github.com/insightdelivered/statement-normalizer/internal/logger"
	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/pipeline"
	"github.com/insightdelivered/statement-normalizer/internal/profile"
	"github.com/insightdelivered/statement-normalizer/internal/writer"
)

func newConvertCmd() *cobra.Command {
	var (
		tablesPath string
		pdfPath    string
		bank       string
		year       int
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Normalize a statement's extracted tables and write CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.Console(cfg.LogLevel)

			if year == 0 {
				year = cfg.StatementYear
			}

			var p *profile.Profile
			switch {
			case bank != "":
				p, err = profile.ByID(models.BankID(bank))
			case pdfPath != "":
				var text string
				text, err = extractor.FirstPagesText(pdfPath)
				if err == nil {
					p, err = profile.Detect(text)
				}
			default:
				err = errors.New("either --bank or --pdf is required")
			}
			if err != nil {
				return err
			}
			log.Info().Str("bank", string(p.ID)).Msg("bank profile resolved")

			ctx := cmd.Context()
			tables, err := extractor.Collect(ctx, log, cfg.MinTables,
				extractor.JSONFileSource{Path: tablesPath})
			if err != nil {
				return err
			}

			res, err := pipeline.New(p, year, log).Run(ctx, tables)
			if err != nil {
				return err
			}

			if err := writer.WriteFile(outPath, res.Transactions); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d transactions to %s (run %s)\n",
				len(res.Transactions), outPath, res.RunID)
			return nil
		},
	}

	cmd.Flags().StringVar(&tablesPath, "tables", "", "path to the extracted tables JSON file")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "statement PDF used only for bank detection")
	cmd.Flags().StringVar(&bank, "bank", "", "explicit bank id (bank_of_america, wells_fargo)")
	cmd.Flags().IntVar(&year, "year", 0, "statement year applied to dates without one")
	cmd.Flags().StringVarP(&outPath, "out", "o", "transactions.csv", "output CSV path")
	_ = cmd.MarkFlagRequired("tables")
	return cmd
}
