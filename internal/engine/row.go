// Package engine implements the in-memory, schema-bound record store:
// typed mutation, referential integrity with cascading delete,
// optimistic-concurrency update, and predicate query.
package engine

import "github.com/Pieczasz/easydb/internal/wire"

// Row is one stored record: a value per column of its host table, plus
// a monotonically increasing version. A freshly inserted row has
// version 1.
type Row struct {
	Values  []wire.Value
	Version int64
}

func cloneValues(values []wire.Value) []wire.Value {
	out := make([]wire.Value, len(values))
	copy(out, values)
	return out
}
