package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarryml/db2source"
	"github.com/quarryml/db2source/envelope"
	"github.com/quarryml/db2source/internal/config"
	"github.com/quarryml/db2source/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the sources file",
	Long: `Validate parses the sources file, checks every declaration, and
verifies that each source survives a round trip through its wire form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := config.LoadSources(sourcesPath)
		if err != nil {
			fmt.Printf("%s %v\n", ui.RenderErr("FAIL"), err)
			os.Exit(1)
		}

		failed := false
		for _, src := range sources {
			if err := roundTrip(src); err != nil {
				fmt.Printf("%s %s: %v\n", ui.RenderErr("FAIL"), src.Name, err)
				failed = true
				continue
			}
			fmt.Printf("%s %s\n", ui.RenderOK("ok"), src.Name)
		}
		if failed {
			os.Exit(1)
		}
		fmt.Printf("\n%d sources valid\n", len(sources))
		return nil
	},
}

// roundTrip marshals the source through the envelope and back, then
// checks the result still describes the same data.
func roundTrip(src *db2source.Source) error {
	proto, err := src.ToProto()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data := proto.Marshal()

	decoded, err := envelope.UnmarshalDataSource(data)
	if err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	restored, err := db2source.SourceFromProto(decoded)
	if err != nil {
		return fmt.Errorf("restore source: %w", err)
	}
	if !src.Equal(restored) {
		return fmt.Errorf("round trip changed the source")
	}
	return nil
}
