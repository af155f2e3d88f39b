package terminal

import (
	"bufio"
	"bytes"
	"testing"
)

func TestEncodeCommands(t *testing.T) {
	tests := []struct {
		name string
		cmds []Command
		want string
	}{
		{"origin", []Command{{Kind: CmdMoveTo}}, "\x1b[1;1H"},
		{"move", []Command{{Kind: CmdMoveTo, Position: Position{Column: 34, Row: 7}}}, "\x1b[8;35H"},
		{"wide", []Command{{Kind: CmdMoveTo, Position: Position{Column: 1199, Row: 999}}}, "\x1b[1000;1200H"},
		{"clear", []Command{{Kind: CmdClearAll}}, "\x1b[2J"},
		{"line", []Command{{Kind: CmdClearLine}}, "\x1b[2K"},
		{"cursor", []Command{{Kind: CmdHideCursor}, {Kind: CmdShowCursor}}, "\x1b[?25l\x1b[?25h"},
		{"print", []Command{{Kind: CmdPrint, Text: "~\r\n"}}, "~\r\n"},
		{"bell", []Command{{Kind: CmdBell}}, "\a"},
		{
			"frame",
			[]Command{
				{Kind: CmdHideCursor},
				{Kind: CmdClearAll},
				{Kind: CmdPrint, Text: "Goodbye!\r\n"},
				{Kind: CmdShowCursor},
			},
			"\x1b[?25l\x1b[2JGoodbye!\r\n\x1b[?25h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := bufio.NewWriter(&buf)
			encodeCommands(w, tt.cmds)
			w.Flush()
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmergencyResetWritesRestoreSequences(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)
	out := buf.Bytes()
	for _, seq := range [][]byte{csiCursorShow, csiSGR0} {
		if !bytes.Contains(out, seq) {
			t.Errorf("missing %q in %q", seq, out)
		}
	}
}
