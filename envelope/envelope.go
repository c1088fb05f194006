// Package envelope carries the feature-store framework's persistence
// envelope for connector definitions.
//
// The framework stores every data source as a generic DataSource message
// and every saved-dataset storage target as a SavedDatasetStorage message.
// Connectors the framework does not natively know about put their own
// configuration, as opaque bytes, inside CustomSourceOptions. The wire
// schema (field numbers and types) is owned by the framework and fixed;
// this package is the single place in the repository that knows it.
package envelope

import (
	"fmt"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

// SourceType mirrors the framework's data-source type discriminator.
type SourceType int32

const (
	SourceTypeInvalid    SourceType = 0
	SourceTypeBatchFile  SourceType = 1
	SourceTypeBatchQuery SourceType = 2
	SourceTypeStream     SourceType = 3
	SourceTypeCustom     SourceType = 4
)

// DataSource field numbers in the framework schema.
const (
	fieldName                   = 1
	fieldType                   = 2
	fieldFieldMapping           = 3
	fieldTimestampField         = 4
	fieldCreatedTimestampColumn = 5
	fieldDescription            = 6
	fieldTags                   = 7
	fieldOwner                  = 8
	fieldDataSourceClassType    = 9
	fieldCustomOptions          = 10
)

// CustomSourceOptions field numbers.
const fieldConfiguration = 1

// SavedDatasetStorage field numbers.
const fieldCustomStorage = 1

// Map-entry field numbers (standard protobuf map encoding).
const (
	mapEntryKey   = 1
	mapEntryValue = 2
)

// DataSource is the framework-level descriptor of where feature values can
// be read from.
type DataSource struct {
	Name                   string
	Type                   SourceType
	FieldMapping           map[string]string
	TimestampField         string
	CreatedTimestampColumn string
	Description            string
	Tags                   map[string]string
	Owner                  string
	DataSourceClassType    string
	CustomOptions          *CustomSourceOptions
}

// CustomSourceOptions carries opaque configuration bytes for connectors the
// framework does not natively know about.
type CustomSourceOptions struct {
	Configuration []byte
}

// SavedDatasetStorage is the framework-level descriptor of where query
// results should be persisted for later reuse.
type SavedDatasetStorage struct {
	CustomStorage *CustomSourceOptions
}

// Marshal encodes the data source in the framework's wire format.
// Map entries are written in sorted key order so output is deterministic.
func (d *DataSource) Marshal() []byte {
	var b []byte
	b = appendString(b, fieldName, d.Name)
	if d.Type != SourceTypeInvalid {
		b = protowire.AppendTag(b, fieldType, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(d.Type))
	}
	b = appendStringMap(b, fieldFieldMapping, d.FieldMapping)
	b = appendString(b, fieldTimestampField, d.TimestampField)
	b = appendString(b, fieldCreatedTimestampColumn, d.CreatedTimestampColumn)
	b = appendString(b, fieldDescription, d.Description)
	b = appendStringMap(b, fieldTags, d.Tags)
	b = appendString(b, fieldOwner, d.Owner)
	b = appendString(b, fieldDataSourceClassType, d.DataSourceClassType)
	if d.CustomOptions != nil {
		b = protowire.AppendTag(b, fieldCustomOptions, protowire.BytesType)
		b = protowire.AppendBytes(b, d.CustomOptions.Marshal())
	}
	return b
}

// UnmarshalDataSource decodes a data source from the framework's wire
// format. Fields this package does not know are skipped, matching protobuf
// unknown-field semantics.
func UnmarshalDataSource(b []byte) (*DataSource, error) {
	d := &DataSource{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("decode data source tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldName && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("decode name: %w", protowire.ParseError(n))
			}
			d.Name, b = v, b[n:]
		case num == fieldType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("decode type: %w", protowire.ParseError(n))
			}
			d.Type, b = SourceType(v), b[n:]
		case num == fieldFieldMapping && typ == protowire.BytesType:
			var err error
			if d.FieldMapping, b, err = consumeMapEntry(b, d.FieldMapping); err != nil {
				return nil, fmt.Errorf("decode field mapping: %w", err)
			}
		case num == fieldTimestampField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("decode timestamp field: %w", protowire.ParseError(n))
			}
			d.TimestampField, b = v, b[n:]
		case num == fieldCreatedTimestampColumn && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("decode created timestamp column: %w", protowire.ParseError(n))
			}
			d.CreatedTimestampColumn, b = v, b[n:]
		case num == fieldDescription && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("decode description: %w", protowire.ParseError(n))
			}
			d.Description, b = v, b[n:]
		case num == fieldTags && typ == protowire.BytesType:
			var err error
			if d.Tags, b, err = consumeMapEntry(b, d.Tags); err != nil {
				return nil, fmt.Errorf("decode tags: %w", err)
			}
		case num == fieldOwner && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("decode owner: %w", protowire.ParseError(n))
			}
			d.Owner, b = v, b[n:]
		case num == fieldDataSourceClassType && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("decode class type: %w", protowire.ParseError(n))
			}
			d.DataSourceClassType, b = v, b[n:]
		case num == fieldCustomOptions && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("decode custom options: %w", protowire.ParseError(n))
			}
			opts, err := UnmarshalCustomSourceOptions(raw)
			if err != nil {
				return nil, err
			}
			d.CustomOptions, b = opts, b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("skip unknown field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return d, nil
}

// Marshal encodes the options in the framework's wire format.
func (o *CustomSourceOptions) Marshal() []byte {
	var b []byte
	if len(o.Configuration) > 0 {
		b = protowire.AppendTag(b, fieldConfiguration, protowire.BytesType)
		b = protowire.AppendBytes(b, o.Configuration)
	}
	return b
}

// UnmarshalCustomSourceOptions decodes custom source options.
func UnmarshalCustomSourceOptions(b []byte) (*CustomSourceOptions, error) {
	o := &CustomSourceOptions{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("decode custom options tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		if num == fieldConfiguration && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("decode configuration: %w", protowire.ParseError(n))
			}
			o.Configuration = append([]byte(nil), v...)
			b = b[n:]
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, fmt.Errorf("skip unknown field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return o, nil
}

// Marshal encodes the storage descriptor in the framework's wire format.
func (s *SavedDatasetStorage) Marshal() []byte {
	var b []byte
	if s.CustomStorage != nil {
		b = protowire.AppendTag(b, fieldCustomStorage, protowire.BytesType)
		b = protowire.AppendBytes(b, s.CustomStorage.Marshal())
	}
	return b
}

// UnmarshalSavedDatasetStorage decodes a saved-dataset storage descriptor.
func UnmarshalSavedDatasetStorage(b []byte) (*SavedDatasetStorage, error) {
	s := &SavedDatasetStorage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("decode storage tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		if num == fieldCustomStorage && typ == protowire.BytesType {
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("decode custom storage: %w", protowire.ParseError(n))
			}
			opts, err := UnmarshalCustomSourceOptions(raw)
			if err != nil {
				return nil, err
			}
			s.CustomStorage, b = opts, b[n:]
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, fmt.Errorf("skip unknown field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return s, nil
}

// appendString writes a length-delimited string field, omitting empty
// values per proto3 presence rules.
func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// appendStringMap writes one map-entry submessage per key, sorted by key.
func appendStringMap(b []byte, num protowire.Number, m map[string]string) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var entry []byte
		entry = protowire.AppendTag(entry, mapEntryKey, protowire.BytesType)
		entry = protowire.AppendString(entry, k)
		entry = protowire.AppendTag(entry, mapEntryValue, protowire.BytesType)
		entry = protowire.AppendString(entry, m[k])

		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b
}

// consumeMapEntry decodes one map-entry submessage into m, allocating the
// map on first use. It returns the updated map and the remaining buffer.
func consumeMapEntry(b []byte, m map[string]string) (map[string]string, []byte, error) {
	raw, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return m, b, protowire.ParseError(n)
	}
	rest := b[n:]

	var key, value string
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return m, b, protowire.ParseError(n)
		}
		raw = raw[n:]

		switch {
		case num == mapEntryKey && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(raw)
			if n < 0 {
				return m, b, protowire.ParseError(n)
			}
			key, raw = v, raw[n:]
		case num == mapEntryValue && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(raw)
			if n < 0 {
				return m, b, protowire.ParseError(n)
			}
			value, raw = v, raw[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, raw)
			if n < 0 {
				return m, b, protowire.ParseError(n)
			}
			raw = raw[n:]
		}
	}

	if m == nil {
		m = make(map[string]string)
	}
	m[key] = value
	return m, rest, nil
}
