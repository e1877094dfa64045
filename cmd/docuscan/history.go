package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/docuscan/docuscan/internal/database"
)

func newHistoryCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			repo := database.NewScanRepository(dbCtx)
			records, err := repo.List(context.Background())
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return outputHistoryJSON(cmd, records)
			case "table":
				outputHistoryTable(cmd, records)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

type historyOutputEntry struct {
	ID        int64  `json:"id"`
	Filename  string `json:"filename"`
	Created   string `json:"created"`
	PageCount int64  `json:"page_count"`
}

func outputHistoryJSON(cmd *cobra.Command, records []database.ScanRecord) error {
	var output []historyOutputEntry
	for _, record := range records {
		output = append(output, historyOutputEntry{
			ID:        record.ID,
			Filename:  record.Filename,
			Created:   record.CreatedAt.Format(time.RFC3339),
			PageCount: record.PageCount,
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputHistoryTable(cmd *cobra.Command, records []database.ScanRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"ID", "Filename", "Created", "Pages"})
	for _, record := range records {
		t.AppendRow(table.Row{
			record.ID,
			record.Filename,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.PageCount,
		})
	}

	t.Render()
}
