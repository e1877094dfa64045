package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "docuscan",
	Short:   "Convert scanned images into searchable PDF documents",
	Long:    "docuscan stages uploaded or captured images, enhances them for legibility,\npreviews extracted text, and assembles them into multi-page A4 PDFs backed by\na local scan history ledger.",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env; absence is not an error.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newMCPCmd())
}
