package engine

import (
	"github.com/Pieczasz/easydb/internal/schema"
	"github.com/Pieczasz/easydb/internal/wire"
)

// Query scans table tableID and returns the ids of every row whose
// value in columnID satisfies operator against operand. columnID 0
// denotes the synthetic row-id column. An empty table yields an empty,
// non-error result.
func (db *Database) Query(tableID int, columnID int, operator wire.Operator, operand wire.Value) (ids []int64, status wire.Status) {
	if tableID == 0 {
		return nil, wire.StatusBadTable
	}
	table, ok := db.table(tableID)
	if !ok {
		return nil, wire.StatusBadTable
	}

	syntheticRowID := columnID == 0
	var declaredTag wire.Tag
	var col *schema.Column
	if syntheticRowID {
		declaredTag = wire.TagInteger
	} else {
		// Valid column ids are 1..len(table.Columns); a columnID
		// greater than the column count is rejected.
		if columnID < 1 || columnID > len(table.Columns) {
			return nil, wire.StatusBadQuery
		}
		col = table.Columns[columnID-1]
		declaredTag = columnTag(col.Type)
	}

	if !operand.IsNull() && operand.Tag != declaredTag {
		return nil, wire.StatusBadQuery
	}
	if status := checkOperatorLegality(operator, syntheticRowID, col); status != wire.StatusOK {
		return nil, status
	}

	var matches []int64
	for id, row := range db.rows[tableID] {
		var selected wire.Value
		if syntheticRowID {
			selected = wire.Integer(id)
		} else {
			selected = row.Values[columnID-1]
		}
		if matchOperator(operator, selected, operand) {
			matches = append(matches, id)
		}
	}
	return matches, wire.StatusOK
}

// checkOperatorLegality enforces: AL only on the synthetic row-id
// column; Foreign-typed columns only take EQ/NE; the synthetic row-id
// column only takes EQ/NE/AL; and operator codes outside 1..7 are
// rejected outright rather than silently falling through to no-match.
func checkOperatorLegality(operator wire.Operator, syntheticRowID bool, col *schema.Column) wire.Status {
	if !wire.ValidOperator(operator) {
		return wire.StatusBadQuery
	}
	if operator == wire.OpAll && !syntheticRowID {
		return wire.StatusBadQuery
	}
	if syntheticRowID {
		if operator != wire.OpAll && operator != wire.OpEQ && operator != wire.OpNE {
			return wire.StatusBadQuery
		}
		return wire.StatusOK
	}
	if col.Type == schema.TypeForeign && operator != wire.OpEQ && operator != wire.OpNE {
		return wire.StatusBadQuery
	}
	return wire.StatusOK
}

// matchOperator evaluates one row's selected value against operand
// under operator's semantics. Null only ever equals Null; ordering
// operators never match when either side is Null (Null has no order).
func matchOperator(operator wire.Operator, selected, operand wire.Value) bool {
	switch operator {
	case wire.OpAll:
		return true
	case wire.OpEQ:
		return selected.Equal(operand)
	case wire.OpNE:
		return !selected.Equal(operand)
	case wire.OpLT, wire.OpGT, wire.OpLE, wire.OpGE:
		if selected.IsNull() || operand.IsNull() {
			return false
		}
		cmp := selected.Compare(operand)
		switch operator {
		case wire.OpLT:
			return cmp < 0
		case wire.OpGT:
			return cmp > 0
		case wire.OpLE:
			return cmp <= 0
		case wire.OpGE:
			return cmp >= 0
		}
	}
	return false
}
