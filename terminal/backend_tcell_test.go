package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewWithBackend(NewTcellBackend(screen))
	if err := term.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(func() { term.Terminate() })
	return term, screen
}

func cellAt(screen tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := screen.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func TestTcellPrintCarriageSemantics(t *testing.T) {
	term, screen := newSimTerminal(t, 20, 5)

	term.MoveCursorTo(Position{Column: 0, Row: 0})
	term.Print("~\r\n~\r\n~")
	if err := term.Execute(); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 3; y++ {
		if r := cellAt(screen, 0, y); r != '~' {
			t.Errorf("row %d: got %q, want '~'", y, r)
		}
		if r := cellAt(screen, 1, y); r != ' ' {
			t.Errorf("row %d col 1: got %q, want blank", y, r)
		}
	}
}

func TestTcellMoveAndPrint(t *testing.T) {
	term, screen := newSimTerminal(t, 80, 24)

	term.MoveCursorTo(Position{Column: 35, Row: 8})
	term.Print("hecto")
	if err := term.Execute(); err != nil {
		t.Fatal(err)
	}

	for i, want := range "hecto" {
		if got := cellAt(screen, 35+i, 8); got != want {
			t.Errorf("col %d: got %q, want %q", 35+i, got, want)
		}
	}
}

func TestTcellClearLine(t *testing.T) {
	term, screen := newSimTerminal(t, 10, 3)

	term.MoveCursorTo(Position{Row: 1})
	term.Print("abcdef")
	term.Execute()

	term.MoveCursorTo(Position{Row: 1})
	term.ClearLine()
	term.Execute()

	for x := 0; x < 10; x++ {
		if r := cellAt(screen, x, 1); r != ' ' {
			t.Errorf("col %d not cleared: %q", x, r)
		}
	}
}

func TestTcellCursorVisibility(t *testing.T) {
	term, screen := newSimTerminal(t, 80, 24)

	term.HideCursor()
	term.MoveCursorTo(Position{Column: 6, Row: 23})
	term.ShowCursor()
	term.Execute()

	x, y, visible := screen.GetCursor()
	if !visible || x != 6 || y != 23 {
		t.Errorf("cursor = (%d,%d) visible=%v, want (6,23) visible", x, y, visible)
	}

	term.HideCursor()
	term.Execute()
	if _, _, visible := screen.GetCursor(); visible {
		t.Error("cursor should be hidden")
	}
}

func TestTcellSize(t *testing.T) {
	term, _ := newSimTerminal(t, 80, 24)
	s, err := term.Size()
	if err != nil {
		t.Fatal(err)
	}
	if s != (Size{Columns: 80, Rows: 24}) {
		t.Errorf("Size = %+v", s)
	}
}

func readKey(t *testing.T, term *Terminal) Event {
	t.Helper()
	for {
		ev, err := term.ReadEvent()
		if err != nil {
			t.Fatalf("ReadEvent: %v", err)
		}
		if ev.Type == EventKey {
			return ev
		}
	}
}

func TestTcellKeyTranslation(t *testing.T) {
	term, screen := newSimTerminal(t, 80, 24)

	tests := []struct {
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want Event
	}{
		{tcell.KeyLeft, 0, tcell.ModNone, Event{Type: EventKey, Key: KeyLeft}},
		{tcell.KeyPgDn, 0, tcell.ModNone, Event{Type: EventKey, Key: KeyPageDown}},
		{tcell.KeyHome, 0, tcell.ModNone, Event{Type: EventKey, Key: KeyHome}},
		{tcell.KeyCtrlQ, 0, tcell.ModCtrl, Event{Type: EventKey, Key: KeyCtrlQ}},
		{tcell.KeyRune, 'q', tcell.ModCtrl, Event{Type: EventKey, Key: KeyCtrlQ}},
		{tcell.KeyRune, 'x', tcell.ModNone, Event{Type: EventKey, Key: KeyRune, Rune: 'x'}},
		{tcell.KeyUp, 0, tcell.ModShift, Event{Type: EventKey, Key: KeyUp, Modifiers: ModShift}},
	}

	for _, tt := range tests {
		screen.InjectKey(tt.key, tt.r, tt.mod)
		if got := readKey(t, term); got != tt.want {
			t.Errorf("inject %v/%q/%v: got %+v, want %+v", tt.key, tt.r, tt.mod, got, tt.want)
		}
	}
}
