package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/quarryml/db2source/internal/events"
	"github.com/quarryml/db2source/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream registry change events",
	Long: `Watch subscribes to the registry event stream and prints each event
as it arrives, until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if natsURL == "" {
			return fmt.Errorf("no NATS URL: set --nats or DB2SRC_NATS_URL")
		}

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				logger.Warn("NATS disconnected", "error", err)
			}),
			nats.ReconnectHandler(func(nc *nats.Conn) {
				logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
			}),
		)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe("db2source.>")
		if err != nil {
			return err
		}
		defer cancel()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)

		fmt.Fprintln(os.Stderr, "watching for registry events (Ctrl-C to stop)")
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				ts := time.Now().Format("15:04:05")
				fmt.Printf("%s %s %s\n", ui.RenderMuted(ts), ui.RenderAccent(msg.Topic), msg.Data)
			case <-stop:
				return nil
			}
		}
	},
}
