package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarryml/db2source/internal/config"
	"github.com/quarryml/db2source/internal/events"
	"github.com/quarryml/db2source/internal/registry"
	"github.com/quarryml/db2source/internal/registry/postgres"
	"github.com/quarryml/db2source/internal/ui"
)

var (
	jsonOutput  bool
	sourcesPath string
	registryURL string
	natsURL     string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "db2src",
	Short: "Manage DB2 data source definitions",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if registryURL == "" {
			registryURL = cfg.RegistryURL
		}
		if registryURL == "" {
			registryURL = activeProfileRegistryURL()
		}
		if natsURL == "" {
			natsURL = cfg.NATSURL
		}
		if natsURL == "" {
			natsURL = activeProfileNATSURL()
		}
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		return nil
	},
}

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&sourcesPath, "sources", "sources.toml", "path to the sources declaration file")
	rootCmd.PersistentFlags().StringVar(&registryURL, "registry", "", "registry database URL (defaults to DB2SRC_REGISTRY_URL)")
	rootCmd.PersistentFlags().StringVar(&natsURL, "nats", "", "NATS server URL for event publishing (defaults to DB2SRC_NATS_URL)")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(profileCmd)
}

// openRegistry connects to the definition registry.
func openRegistry() (registry.Store, error) {
	if registryURL == "" {
		return nil, fmt.Errorf("no registry URL: set --registry or DB2SRC_REGISTRY_URL")
	}
	return postgres.New(registryURL)
}

// openPublisher returns a NATS publisher when a URL is configured,
// otherwise a no-op.
func openPublisher() (events.Publisher, func(), error) {
	if natsURL == "" {
		return &events.NoopPublisher{}, func() {}, nil
	}
	pub, err := events.NewNATSPublisher(natsURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return pub, func() { pub.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
