package copper

import (
	"github.com/ezrec/copperlist/raster"
)

// Axis selects which raster coordinates a condition tests.
type Axis int

//go:generate go tool stringer -linecomment -type=Axis
const (
	AXIS_BOTH_AND = Axis(0) // and
	AXIS_COLUMN   = Axis(1) // column
	AXIS_LINE     = Axis(2) // line
	AXIS_BOTH_OR  = Axis(3) // or
)

// Compare is the comparison applied to each tested axis.
type Compare int

//go:generate go tool stringer -linecomment -type=Compare
const (
	CMP_AT_OR_PAST = Compare(0) // ge
	CMP_EXACT      = Compare(1) // eq
)

var axisFlags = map[Axis]Flags{
	AXIS_BOTH_AND: 0,
	AXIS_COLUMN:   FLAG_IGNORE_LINE,
	AXIS_LINE:     FLAG_IGNORE_COLUMN,
	AXIS_BOTH_OR:  FLAG_COMBINE_OR,
}

// Condition is a raster position test.
type Condition struct {
	Axis    Axis    // Axes to test.
	Compare Compare // Comparison policy.
	Line    uint16  // Line threshold.
	Column  uint16  // Column threshold.
}

// LineAtOrPast is true once the beam reaches a line, whatever the column.
func LineAtOrPast(line uint16) Condition {
	return Condition{Axis: AXIS_LINE, Compare: CMP_AT_OR_PAST, Line: line}
}

// Flags returns the operand flag bits of the condition.
func (cond Condition) Flags() (flags Flags, err error) {
	flags, ok := axisFlags[cond.Axis]
	if !ok {
		err = ErrConditionInvalid
		return
	}

	switch cond.Compare {
	case CMP_AT_OR_PAST:
	case CMP_EXACT:
		flags |= FLAG_EXACT
	default:
		err = ErrConditionInvalid
	}

	return
}

// ConditionOf builds a condition from operand flag bits and thresholds.
// Flags ignoring both axes, or combining a single axis, are rejected.
func ConditionOf(flags Flags, line, column uint16) (cond Condition, err error) {
	cond.Line = line
	cond.Column = column

	if flags&FLAG_EXACT != 0 {
		cond.Compare = CMP_EXACT
	}

	axis := flags &^ FLAG_EXACT
	for ax, bits := range axisFlags {
		if bits == axis {
			cond.Axis = ax
			return
		}
	}

	err = ErrConditionInvalid
	return
}

// check validates the thresholds against their bit fields.
func (cond Condition) check() (err error) {
	if cond.Line > LINE_MASK {
		err = ErrField{Field: "line", Value: int(cond.Line), Limit: LINE_MASK}
		return
	}
	if cond.Column > COLUMN_MASK {
		err = ErrField{Field: "column", Value: int(cond.Column), Limit: COLUMN_MASK}
		return
	}
	_, err = cond.Flags()
	return
}

func (cond Condition) compare(value, threshold uint16) bool {
	if cond.Compare == CMP_EXACT {
		return value == threshold
	}
	return value >= threshold
}

// Holds evaluates the condition at a raster position.
func (cond Condition) Holds(pos raster.Position) bool {
	line := cond.compare(pos.Line, cond.Line)
	column := cond.compare(pos.Column, cond.Column)

	switch cond.Axis {
	case AXIS_LINE:
		return line
	case AXIS_COLUMN:
		return column
	case AXIS_BOTH_OR:
		return line || column
	default:
		return line && column
	}
}
