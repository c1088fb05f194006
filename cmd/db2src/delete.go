package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarryml/db2source/internal/events"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a registered data source definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		defer store.Close()

		pub, closePub, err := openPublisher()
		if err != nil {
			return err
		}
		defer closePub()

		ctx := context.Background()
		if err := store.DeleteDefinition(ctx, args[0]); err != nil {
			return err
		}
		if err := pub.Publish(ctx, events.TopicSourceDeleted, events.SourceDeleted{Name: args[0]}); err != nil {
			logger.Warn("publish event failed", "topic", events.TopicSourceDeleted, "name", args[0], "error", err)
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}
