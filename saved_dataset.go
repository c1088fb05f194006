package db2source

import (
	"errors"
	"fmt"

	"github.com/quarryml/db2source/envelope"
)

// ErrNoTableRef is returned when a saved-dataset storage descriptor is
// constructed without a table reference.
var ErrNoTableRef = errors.New("saved dataset storage requires a table reference")

// SavedDatasetStorage describes the table where query results are persisted
// for later reuse.
type SavedDatasetStorage struct {
	Table string
}

// NewSavedDatasetStorage builds a storage descriptor for the given table
// reference.
func NewSavedDatasetStorage(tableRef string) (*SavedDatasetStorage, error) {
	if tableRef == "" {
		return nil, ErrNoTableRef
	}
	return &SavedDatasetStorage{Table: tableRef}, nil
}

// ToProto serializes the storage descriptor into the framework's envelope.
// The options blob carries only the table reference; name and query stay
// empty.
func (st *SavedDatasetStorage) ToProto() (*envelope.SavedDatasetStorage, error) {
	opts, err := Options{Table: st.Table}.ToProto()
	if err != nil {
		return nil, fmt.Errorf("saved dataset storage %s: %w", st.Table, err)
	}
	return &envelope.SavedDatasetStorage{CustomStorage: opts}, nil
}

// SavedDatasetStorageFromProto reconstructs a storage descriptor from the
// framework's envelope.
func SavedDatasetStorageFromProto(p *envelope.SavedDatasetStorage) (*SavedDatasetStorage, error) {
	opts, err := OptionsFromProto(p.CustomStorage)
	if err != nil {
		return nil, fmt.Errorf("saved dataset storage: %w", err)
	}
	return NewSavedDatasetStorage(opts.Table)
}

// ToDataSource returns a source that reads back the persisted results.
func (st *SavedDatasetStorage) ToDataSource() (*Source, error) {
	return New(SourceConfig{Table: st.Table})
}
