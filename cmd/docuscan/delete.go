package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docuscan/docuscan/internal/database"
	"github.com/docuscan/docuscan/internal/observability"
	"github.com/docuscan/docuscan/internal/ocr"
	"github.com/docuscan/docuscan/internal/services"
	"github.com/docuscan/docuscan/internal/usecase"
)

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a scan and its PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid scan id: %s", args[0])
			}

			// Confirmation prompt
			if !force {
				reader := bufio.NewReader(os.Stdin)
				fmt.Fprintf(cmd.ErrOrStderr(), "Delete scan %d and its PDF file? This cannot be undone. (y/N) ", id)
				answer, err := reader.ReadString('\n')
				if err != nil {
					return err
				}

				answer = strings.TrimSpace(strings.ToLower(answer))
				if answer != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			log := observability.DefaultLogger()
			scan := usecase.NewScan(dbCtx, ocr.NewMockExtractor(log), log)

			if err := scan.Delete(context.Background(), id); err != nil {
				if errors.Is(err, services.ErrNotFound) {
					return fmt.Errorf("scan %d not found", id)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted scan %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
