package main

import (
	"github.com/ccerv1/rf-weights-testing/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output JSONL file (required)")
	_ = exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export validated records as JSONL",
	Long: `Write every validated relationship record as one JSON object per line.

The output can be loaded back with --data file.jsonl.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	table := mustLoadTable(cfg)

	if err := storage.WriteJSONL(exportOutput, table.Records()); err != nil {
		exitWithError(ExitError, "writing %s: %v", exportOutput, err)
	}

	if humanOutput {
		outputHuman("Exported %d records to %s\n", table.Len(), exportOutput)
		return nil
	}
	return outputJSON(StatusResponse{Status: "exported", Path: exportOutput, Records: table.Len()})
}
