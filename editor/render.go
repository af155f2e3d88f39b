package editor

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/hecto/terminal"
)

const (
	placeholder = "~"
	farewell    = "Goodbye!\r\n"
)

// refreshScreen queues one frame and flushes it with a single Execute.
// The cursor is hidden while drawing so partial frames never show it.
func (e *Editor) refreshScreen() error {
	if err := e.term.HideCursor(); err != nil {
		return err
	}

	if e.state.shouldQuit {
		if err := e.term.ClearScreen(); err != nil {
			return err
		}
		if err := e.term.Print(farewell); err != nil {
			return err
		}
	} else {
		size, err := e.term.Size()
		if err != nil {
			return err
		}
		if err := e.term.MoveCursorTo(terminal.Position{}); err != nil {
			return err
		}
		if err := e.drawRows(size.Rows); err != nil {
			return err
		}
		if err := e.drawWelcome(size); err != nil {
			return err
		}
		if err := e.term.MoveCursorTo(e.state.cursor); err != nil {
			return err
		}
	}

	if err := e.term.ShowCursor(); err != nil {
		return err
	}
	return e.term.Execute()
}

// drawRows clears each row and marks it with the placeholder.
// The last row gets no line break so the screen never scrolls.
func (e *Editor) drawRows(rows uint16) error {
	for row := uint16(0); row < rows; row++ {
		if err := e.term.ClearLine(); err != nil {
			return err
		}
		if err := e.term.Print(placeholder); err != nil {
			return err
		}
		if row+1 < rows {
			if err := e.term.Print("\r\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// drawWelcome centers the name on row rows/3 and the version below it.
// Lines falling off the bottom are skipped, lines wider than the screen are truncated.
func (e *Editor) drawWelcome(size terminal.Size) error {
	top := size.Rows / 3
	for i, text := range [...]string{e.name, e.version} {
		row := top + uint16(i)
		if row >= size.Rows {
			break
		}
		text = runewidth.Truncate(text, int(size.Columns), "")
		if text == "" {
			continue
		}
		col := centerColumn(size.Columns, runewidth.StringWidth(text))
		if err := e.term.MoveCursorTo(terminal.Position{Column: col, Row: row}); err != nil {
			return err
		}
		if err := e.term.Print(text); err != nil {
			return err
		}
	}
	return nil
}

// centerColumn returns columns/2 - width/2 saturating at 0
func centerColumn(columns uint16, width int) uint16 {
	col := int(columns)/2 - width/2
	if col < 0 {
		return 0
	}
	return uint16(col)
}
