package db2source

import "strings"

// scalarTypes maps normalized database type names to framework value types.
// The names are the pg-flavored identifiers the driver reports through
// column metadata; DB2's compatibility surface speaks the same dialect.
var scalarTypes = map[string]ValueType{
	"bool":    ValueTypeBool,
	"boolean": ValueTypeBool,

	"bytea": ValueTypeBytes,

	"char":              ValueTypeString,
	"bpchar":            ValueTypeString,
	"varchar":           ValueTypeString,
	"character":         ValueTypeString,
	"character varying": ValueTypeString,
	"text":              ValueTypeString,
	"name":              ValueTypeString,
	"uuid":              ValueTypeString,
	"json":              ValueTypeString,
	"jsonb":             ValueTypeString,
	"xml":               ValueTypeString,

	"int2":     ValueTypeInt32,
	"smallint": ValueTypeInt32,
	"int":      ValueTypeInt32,
	"int4":     ValueTypeInt32,
	"integer":  ValueTypeInt32,
	"serial":   ValueTypeInt32,

	"int8":      ValueTypeInt64,
	"bigint":    ValueTypeInt64,
	"bigserial": ValueTypeInt64,

	"float4": ValueTypeFloat,
	"real":   ValueTypeFloat,

	"float8":           ValueTypeDouble,
	"double precision": ValueTypeDouble,
	"numeric":          ValueTypeDouble,
	"decimal":          ValueTypeDouble,

	"date":                        ValueTypeUnixTimestamp,
	"timestamp":                   ValueTypeUnixTimestamp,
	"timestamptz":                 ValueTypeUnixTimestamp,
	"timestamp with time zone":    ValueTypeUnixTimestamp,
	"timestamp without time zone": ValueTypeUnixTimestamp,
}

// ValueTypeFor maps a driver-reported database type name to the framework
// value type. Array types (reported with a leading underscore or a "[]"
// suffix) map to the list variant of their element type. Unknown types map
// to ValueTypeInvalid.
func ValueTypeFor(dbType string) ValueType {
	name := strings.ToLower(strings.TrimSpace(dbType))

	if elem, ok := strings.CutPrefix(name, "_"); ok {
		return scalarTypes[elem].List()
	}
	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		return scalarTypes[elem].List()
	}
	return scalarTypes[name]
}
