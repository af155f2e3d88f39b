package terminal

import (
	"bufio"
	"strconv"
)

// Pre-allocated ANSI sequence fragments
var (
	csiCursorPos  = []byte("\x1b[") // followed by row;colH
	csiClearAll   = []byte("\x1b[2J")
	csiClearLine  = []byte("\x1b[2K")
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")
	csiSGR0       = []byte("\x1b[0m")
	csiRIS        = []byte("\x1bc") // Reset to Initial State (emergency)
	bel           = []byte("\a")
)

// writeInt writes a non-negative integer without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	var buf [8]byte
	w.Write(strconv.AppendInt(buf[:0], int64(n), 10))
}

// writeCursorPos writes a cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, p Position) {
	w.Write(csiCursorPos)
	writeInt(w, int(p.Row)+1)
	w.WriteByte(';')
	writeInt(w, int(p.Column)+1)
	w.WriteByte('H')
}

// encodeCommands writes the ANSI form of cmds into w without flushing
func encodeCommands(w *bufio.Writer, cmds []Command) {
	for _, c := range cmds {
		switch c.Kind {
		case CmdMoveTo:
			writeCursorPos(w, c.Position)
		case CmdClearAll:
			w.Write(csiClearAll)
		case CmdClearLine:
			w.Write(csiClearLine)
		case CmdHideCursor:
			w.Write(csiCursorHide)
		case CmdShowCursor:
			w.Write(csiCursorShow)
		case CmdPrint:
			w.WriteString(c.Text)
		case CmdBell:
			w.Write(bel)
		}
	}
}
