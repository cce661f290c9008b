package engine

import (
	"github.com/Pieczasz/easydb/internal/schema"
	"github.com/Pieczasz/easydb/internal/wire"
)

// columnTag maps a column's declared type to the wire.Value variant a
// non-null value in that column must hold.
func columnTag(t schema.ColumnType) wire.Tag {
	switch t {
	case schema.TypeInteger:
		return wire.TagInteger
	case schema.TypeFloat:
		return wire.TagFloat
	case schema.TypeString:
		return wire.TagText
	case schema.TypeForeign:
		return wire.TagForeign
	default:
		return wire.TagNull
	}
}

// checkValues validates values against table's column list: arity,
// per-column variant match (Null is always accepted), and — for
// non-null Foreign values — that the referenced row currently exists.
// Shared verbatim between insert and update.
func (db *Database) checkValues(table *schema.Table, values []wire.Value) wire.Status {
	if len(values) != len(table.Columns) {
		return wire.StatusBadRow
	}
	for i, col := range table.Columns {
		v := values[i]
		if v.IsNull() {
			continue
		}
		if v.Tag != columnTag(col.Type) {
			return wire.StatusBadValue
		}
		if col.Type == schema.TypeForeign {
			refRows, ok := db.rows[col.RefTable]
			if !ok {
				return wire.StatusBadForeign
			}
			if _, exists := refRows[v.Foreign]; !exists {
				return wire.StatusBadForeign
			}
		}
	}
	return wire.StatusOK
}
