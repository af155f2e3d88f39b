package editor

import (
	"log"

	"github.com/lixenwraith/hecto/keymap"
	"github.com/lixenwraith/hecto/terminal"
)

// leftMargin keeps the cursor off the placeholder gutter
const leftMargin = 1

// origin is the cursor position at startup
var origin = terminal.Position{Column: leftMargin, Row: 0}

// moveCursor applies a motion against the size queried now, so a resize
// is corrected on the next move. Steps saturate at the edges, never wrap.
func (e *Editor) moveCursor(action keymap.Action) error {
	size, err := e.term.Size()
	if err != nil {
		return err
	}

	lastCol := lastIndex(size.Columns)
	lastRow := lastIndex(size.Rows)
	col, row := e.state.cursor.Column, e.state.cursor.Row
	blocked := false

	switch action {
	case keymap.ActionLeft:
		if col > leftMargin {
			col--
		} else {
			col = leftMargin
			blocked = true
		}
	case keymap.ActionRight:
		if col < lastCol {
			col++
		} else {
			blocked = true
		}
	case keymap.ActionUp:
		if row > 0 {
			row--
		} else {
			blocked = true
		}
	case keymap.ActionDown:
		if row < lastRow {
			row++
		} else {
			blocked = true
		}
	case keymap.ActionHome:
		row = 0
	case keymap.ActionEnd:
		row = lastRow
	case keymap.ActionPageUp, keymap.ActionPageDown:
		// Both reset to the top row
		row = 0
	default:
		return nil
	}

	e.state.cursor = clampPosition(terminal.Position{Column: col, Row: row}, size)

	if blocked {
		log.Printf("editor: %s blocked at %d,%d", action, e.state.cursor.Column, e.state.cursor.Row)
		if e.bell != nil {
			e.bell.Ring()
		}
	}
	return nil
}

// clampPosition constrains p to [leftMargin, columns-1] x [0, rows-1].
// On screens too narrow for the margin the column pins to the last index.
func clampPosition(p terminal.Position, size terminal.Size) terminal.Position {
	lastCol := lastIndex(size.Columns)
	lastRow := lastIndex(size.Rows)

	minCol := uint16(leftMargin)
	if minCol > lastCol {
		minCol = lastCol
	}

	if p.Column < minCol {
		p.Column = minCol
	}
	if p.Column > lastCol {
		p.Column = lastCol
	}
	if p.Row > lastRow {
		p.Row = lastRow
	}
	return p
}

// lastIndex returns n-1 saturating at 0
func lastIndex(n uint16) uint16 {
	if n == 0 {
		return 0
	}
	return n - 1
}
