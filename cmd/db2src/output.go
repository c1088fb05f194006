package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/quarryml/db2source"
	"github.com/quarryml/db2source/internal/registry"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printSourceTable(src *db2source.Source) {
	fmt.Printf("Name:            %s\n", src.Name)
	if src.Table != "" {
		fmt.Printf("Table:           %s\n", src.Table)
	}
	if src.Query != "" {
		fmt.Printf("Query:           %s\n", src.Query)
	}
	if src.TimestampField != "" {
		fmt.Printf("Timestamp:       %s\n", src.TimestampField)
	}
	if src.CreatedTimestampColumn != "" {
		fmt.Printf("Created column:  %s\n", src.CreatedTimestampColumn)
	}
	if len(src.FieldMapping) > 0 {
		fmt.Printf("Field mapping:   %s\n", formatStringMap(src.FieldMapping))
	}
	if src.Description != "" {
		fmt.Printf("Description:     %s\n", src.Description)
	}
	if len(src.Tags) > 0 {
		fmt.Printf("Tags:            %s\n", formatStringMap(src.Tags))
	}
	if src.Owner != "" {
		fmt.Printf("Owner:           %s\n", src.Owner)
	}
}

func printRecordListTable(records []*registry.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tCLASS\tUPDATED")
	for _, rec := range records {
		class := rec.ClassType
		if idx := strings.LastIndex(class, "."); idx >= 0 {
			class = class[idx+1:]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.Name,
			rec.ID,
			class,
			rec.UpdatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()
	fmt.Printf("\n%d definitions\n", len(records))
}

func printColumnsTable(columns []db2source.Column) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tDB TYPE\tVALUE TYPE")
	for _, col := range columns {
		fmt.Fprintf(w, "%s\t%s\t%s\n", col.Name, col.DBType, col.ValueType())
	}
	w.Flush()
}

func formatStringMap(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+m[k])
	}
	return strings.Join(pairs, ", ")
}
