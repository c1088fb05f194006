package main

import (
	"context"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered data source definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.ListDefinitions(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(records)
			return nil
		}
		printRecordListTable(records)
		return nil
	},
}
