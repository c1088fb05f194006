package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarryml/db2source"
	"github.com/quarryml/db2source/conn"
	"github.com/quarryml/db2source/internal/config"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [source-name]",
	Short: "Show column names and value types for a source",
	Long: `Inspect runs a zero-row probe query against the upstream database
and prints each column with its inferred value type. The target is either
a named entry in the sources file, or an ad-hoc --table / --query.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, _ := cmd.Flags().GetString("table")
		query, _ := cmd.Flags().GetString("query")

		src, err := resolveSource(args, table, query)
		if err != nil {
			return err
		}

		db, err := conn.Open(cfg.ConnConfig())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		columns, err := src.ColumnNamesAndTypes(context.Background(), db)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", src.Name, err)
		}

		if jsonOutput {
			printJSON(columnsJSON(columns))
			return nil
		}
		printColumnsTable(columns)
		return nil
	},
}

// resolveSource picks the inspection target: an ad-hoc table or query
// wins, otherwise the named source is looked up in the sources file.
func resolveSource(args []string, table, query string) (*db2source.Source, error) {
	if table != "" || query != "" {
		scfg := db2source.SourceConfig{Table: table, Query: query}
		if query != "" && table == "" {
			scfg.Name = "adhoc"
		}
		return db2source.New(scfg)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("name a source or pass --table / --query")
	}
	sources, err := config.LoadSources(sourcesPath)
	if err != nil {
		return nil, err
	}
	for _, src := range sources {
		if src.Name == args[0] {
			return src, nil
		}
	}
	return nil, fmt.Errorf("no source named %q in %s", args[0], sourcesPath)
}

type columnInfo struct {
	Name      string `json:"name"`
	DBType    string `json:"db_type"`
	ValueType string `json:"value_type"`
}

func columnsJSON(columns []db2source.Column) []columnInfo {
	out := make([]columnInfo, 0, len(columns))
	for _, col := range columns {
		out = append(out, columnInfo{
			Name:      col.Name,
			DBType:    col.DBType,
			ValueType: col.ValueType().String(),
		})
	}
	return out
}

func init() {
	inspectCmd.Flags().String("table", "", "inspect a table reference directly")
	inspectCmd.Flags().String("query", "", "inspect an ad-hoc SQL query")
}
