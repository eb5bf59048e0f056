package commands

import (
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-normalizer/internal/api"
	"github.com/insightdelivered/statement-normalizer/internal/logger"
	"github.com/insightdelivered/statement-normalizer/internal/metrics"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the normalization HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Port = port
			}
			log := logger.New(cfg.LogLevel)

			srv := api.New(log, metrics.New(), cfg.StatementYear)
			log.Info().Int("port", cfg.Port).Msg("starting http api")
			return srv.Listen(cfg.Port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (defaults to PORT env or 8080)")
	return cmd
}
