package db2source

// ValueType is the feature-store framework's feature value type.
type ValueType int32

const (
	ValueTypeInvalid ValueType = iota
	ValueTypeBytes
	ValueTypeString
	ValueTypeInt32
	ValueTypeInt64
	ValueTypeDouble
	ValueTypeFloat
	ValueTypeBool
	ValueTypeUnixTimestamp
	ValueTypeBytesList
	ValueTypeStringList
	ValueTypeInt32List
	ValueTypeInt64List
	ValueTypeDoubleList
	ValueTypeFloatList
	ValueTypeBoolList
	ValueTypeUnixTimestampList
)

var valueTypeNames = map[ValueType]string{
	ValueTypeInvalid:           "INVALID",
	ValueTypeBytes:             "BYTES",
	ValueTypeString:            "STRING",
	ValueTypeInt32:             "INT32",
	ValueTypeInt64:             "INT64",
	ValueTypeDouble:            "DOUBLE",
	ValueTypeFloat:             "FLOAT",
	ValueTypeBool:              "BOOL",
	ValueTypeUnixTimestamp:     "UNIX_TIMESTAMP",
	ValueTypeBytesList:         "BYTES_LIST",
	ValueTypeStringList:        "STRING_LIST",
	ValueTypeInt32List:         "INT32_LIST",
	ValueTypeInt64List:         "INT64_LIST",
	ValueTypeDoubleList:        "DOUBLE_LIST",
	ValueTypeFloatList:         "FLOAT_LIST",
	ValueTypeBoolList:          "BOOL_LIST",
	ValueTypeUnixTimestampList: "UNIX_TIMESTAMP_LIST",
}

// String returns the framework's name for the value type.
func (v ValueType) String() string {
	if name, ok := valueTypeNames[v]; ok {
		return name
	}
	return "INVALID"
}

// List returns the list variant of a scalar value type. List types and
// ValueTypeInvalid are returned unchanged.
func (v ValueType) List() ValueType {
	switch v {
	case ValueTypeBytes:
		return ValueTypeBytesList
	case ValueTypeString:
		return ValueTypeStringList
	case ValueTypeInt32:
		return ValueTypeInt32List
	case ValueTypeInt64:
		return ValueTypeInt64List
	case ValueTypeDouble:
		return ValueTypeDoubleList
	case ValueTypeFloat:
		return ValueTypeFloatList
	case ValueTypeBool:
		return ValueTypeBoolList
	case ValueTypeUnixTimestamp:
		return ValueTypeUnixTimestampList
	}
	return v
}
