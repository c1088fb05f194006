package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarryml/db2source"
	"github.com/quarryml/db2source/envelope"
	"github.com/quarryml/db2source/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a registered data source definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.GetDefinition(context.Background(), args[0])
		if err != nil {
			return err
		}

		proto, err := envelope.UnmarshalDataSource(rec.Spec)
		if err != nil {
			return fmt.Errorf("decode stored definition: %w", err)
		}
		src, err := db2source.SourceFromProto(proto)
		if err != nil {
			return fmt.Errorf("restore source: %w", err)
		}

		if jsonOutput {
			printJSON(src)
			return nil
		}
		fmt.Println(ui.RenderAccent(rec.Name))
		fmt.Printf("ID:              %s\n", rec.ID)
		printSourceTable(src)
		fmt.Printf("Registered:      %s\n", ui.RenderMuted(rec.CreatedAt.Format("2006-01-02 15:04:05")))
		fmt.Printf("Updated:         %s\n", ui.RenderMuted(rec.UpdatedAt.Format("2006-01-02 15:04:05")))
		return nil
	},
}
