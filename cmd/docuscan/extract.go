package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docuscan/docuscan/internal/observability"
	"github.com/docuscan/docuscan/internal/ocr"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Print the text extracted from an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extractor := ocr.NewMockExtractor(observability.DefaultLogger())
			fmt.Fprintln(cmd.OutOrStdout(), extractor.Extract(args[0]))
			return nil
		},
	}

	return cmd
}
