package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/docuscan/docuscan/internal/config"
	"github.com/docuscan/docuscan/internal/database"
	"github.com/docuscan/docuscan/internal/observability"
	"github.com/docuscan/docuscan/internal/ocr"
	"github.com/docuscan/docuscan/internal/server"
	"github.com/docuscan/docuscan/internal/usecase"
)

func newServeCmd() *cobra.Command {
	var (
		addr      string
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the docuscan HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := observability.NewLogger(observability.LogConfig{
				Level:  logLevel,
				Format: logFormat,
			})

			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				if err := database.CloseDatabase(dbCtx); err != nil {
					log.Error().Err(err).Msg("failed to close database")
				}
			}()

			scan := usecase.NewScan(dbCtx, ocr.NewMockExtractor(log), log)
			srv := server.New(scan, log)

			if addr == "" {
				addr = config.GetListenAddr()
			}

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			log.Info().Str("addr", addr).Msg("starting HTTP server")
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to DOCUSCAN_ADDR or :8080)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "log format (console or json)")

	return cmd
}
