package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(typesCmd)
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List relationship types present in the data",
	Long: `List the distinct relationship types in first-seen order.

These are the values accepted by --type.`,
	Args: cobra.NoArgs,
	RunE: runTypes,
}

// TypesResponse is the response for the types command.
type TypesResponse struct {
	Types []string `json:"types"`
}

func runTypes(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	table := mustLoadTable(cfg)

	types := table.RelationshipTypes()
	if types == nil {
		types = []string{}
	}

	if !humanOutput {
		return outputJSON(TypesResponse{Types: types})
	}
	if len(types) == 0 {
		outputHuman("No relationship types found.\n")
	}
	for _, t := range types {
		outputHuman("%s\n", t)
	}
	return nil
}
