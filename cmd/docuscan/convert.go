package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/docuscan/docuscan/internal/database"
	"github.com/docuscan/docuscan/internal/observability"
	"github.com/docuscan/docuscan/internal/ocr"
	"github.com/docuscan/docuscan/internal/usecase"
)

func newConvertCmd() *cobra.Command {
	var (
		logLevel string
		preview  bool
	)

	cmd := &cobra.Command{
		Use:   "convert <image>...",
		Short: "Convert one or more images into a single PDF",
		Long:  "Stage the given images in order, enhance them, and commit the batch as a\nmulti-page A4 PDF recorded in the scan history.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := observability.NewLogger(observability.LogConfig{
				Level:  logLevel,
				Format: "console",
			})

			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			scan := usecase.NewScan(dbCtx, ocr.NewMockExtractor(log), log)
			session := uuid.NewString()

			for _, path := range args {
				if err := stageFile(scan, session, path); err != nil {
					return err
				}
			}

			if preview {
				items, err := scan.Preview(session)
				if err != nil {
					return err
				}
				for _, item := range items {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%s\n\n", item.DisplayName, item.Text)
				}
			}

			record, outPath, err := scan.Commit(context.Background(), session)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d pages, scan id %d)\n", outPath, record.PageCount, record.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Print extracted text for each image before converting")

	return cmd
}

func stageFile(scan *usecase.Scan, session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if _, err := scan.Stage(session, info.Name(), info.Size(), f); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	return nil
}
