package main

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/lixenwraith/hecto/keymap"
	"github.com/lixenwraith/hecto/terminal"
)

func TestFormatKeyEvent(t *testing.T) {
	keys := keymap.Default()
	tests := []struct {
		ev   terminal.Event
		want string
	}{
		{terminal.Event{Type: terminal.EventKey, Key: terminal.KeyLeft}, "KEY: left -> left"},
		{terminal.Event{Type: terminal.EventKey, Key: terminal.KeyPageDown}, "KEY: page_down -> page_down"},
		{terminal.Event{Type: terminal.EventKey, Key: terminal.KeyUp, Modifiers: terminal.ModShift | terminal.ModCtrl}, "KEY: Shift+Ctrl+up -> up"},
		{terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'x'}, "KEY: 'x'"},
		{terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'é'}, "KEY: U+00E9"},
		{terminal.Event{Type: terminal.EventKey, Key: terminal.KeyF5}, "KEY: f5"},
	}
	for _, tt := range tests {
		if got := formatKeyEvent(tt.ev, keys); got != tt.want {
			t.Errorf("formatKeyEvent(%+v) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}

func TestEventLogBounded(t *testing.T) {
	l := newEventLog()
	for i := 0; i < maxLog+5; i++ {
		l.add(fmt.Sprint(i))
	}
	if len(l.entries) != maxLog {
		t.Fatalf("len = %d, want %d", len(l.entries), maxLog)
	}
	tail := l.tail(2)
	if len(tail) != 2 || tail[0] != fmt.Sprint(maxLog+3) || tail[1] != fmt.Sprint(maxLog+4) {
		t.Errorf("tail = %v", tail)
	}
	if l.tail(0) != nil {
		t.Error("tail(0) should be empty")
	}
	if got := len(l.tail(maxLog * 2)); got != maxLog {
		t.Errorf("tail beyond length = %d entries", got)
	}
}

// memBackend replays events and tracks what a real screen would show
type memBackend struct {
	events        []terminal.Event
	printed       []string
	cursorVisible bool
	finis         int
}

func (b *memBackend) Init() error { return nil }

func (b *memBackend) Fini() error {
	b.finis++
	return nil
}

func (b *memBackend) Size() (terminal.Size, error) {
	return terminal.Size{Columns: 80, Rows: 24}, nil
}

func (b *memBackend) Apply(cmds []terminal.Command) error {
	for _, c := range cmds {
		switch c.Kind {
		case terminal.CmdHideCursor:
			b.cursorVisible = false
		case terminal.CmdShowCursor:
			b.cursorVisible = true
		case terminal.CmdPrint:
			b.printed = append(b.printed, c.Text)
		}
	}
	return nil
}

func (b *memBackend) ReadEvent() (terminal.Event, error) {
	if len(b.events) == 0 {
		return terminal.Event{}, io.EOF
	}
	ev := b.events[0]
	b.events = b.events[1:]
	return ev, nil
}

func TestLoopLeavesCursorVisible(t *testing.T) {
	for _, quit := range []terminal.Key{terminal.KeyCtrlQ, terminal.KeyCtrlC} {
		b := &memBackend{events: []terminal.Event{
			{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'a'},
			{Type: terminal.EventResize, Width: 80, Height: 24},
			{Type: terminal.EventKey, Key: quit},
		}}
		term := terminal.NewWithBackend(b)
		if err := term.Initialize(); err != nil {
			t.Fatal(err)
		}

		if err := loop(term, keymap.Default()); err != nil {
			t.Fatalf("%s: loop failed: %v", terminal.KeyName(quit), err)
		}
		if err := term.Terminate(); err != nil {
			t.Fatal(err)
		}

		if !b.cursorVisible {
			t.Errorf("%s: cursor hidden after exit", terminal.KeyName(quit))
		}
		if len(b.events) != 0 {
			t.Errorf("%s: %d events left unread", terminal.KeyName(quit), len(b.events))
		}
		found := false
		for _, p := range b.printed {
			if p == "KEY: 'a'" {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: key line not drawn: %q", terminal.KeyName(quit), b.printed)
		}
	}
}

func TestLoopReportsReadError(t *testing.T) {
	b := &memBackend{}
	term := terminal.NewWithBackend(b)
	if err := term.Initialize(); err != nil {
		t.Fatal(err)
	}
	defer term.Terminate()

	if err := loop(term, keymap.Default()); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
	if !b.cursorVisible {
		t.Error("cursor hidden after failed read")
	}
}

func TestLoopInactiveTerminal(t *testing.T) {
	term := terminal.NewWithBackend(&memBackend{})
	if err := loop(term, keymap.Default()); !errors.Is(err, terminal.ErrNotActive) {
		t.Errorf("expected ErrNotActive, got %v", err)
	}
}
