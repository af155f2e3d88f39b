package main

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/hecto/keymap"
	"github.com/lixenwraith/hecto/terminal"
)

const maxLog = 200

// eventLog keeps the most recent formatted events
type eventLog struct {
	entries []string
}

func newEventLog() *eventLog {
	return &eventLog{entries: make([]string, 0, maxLog)}
}

func (l *eventLog) add(s string) {
	if len(l.entries) >= maxLog {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:maxLog-1]
	}
	l.entries = append(l.entries, s)
}

// tail returns up to n most recent entries, oldest first
func (l *eventLog) tail(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	return l.entries[len(l.entries)-n:]
}

func formatKeyEvent(ev terminal.Event, keys keymap.Map) string {
	var mods strings.Builder
	if ev.Modifiers&terminal.ModShift != 0 {
		mods.WriteString("Shift+")
	}
	if ev.Modifiers&terminal.ModAlt != 0 {
		mods.WriteString("Alt+")
	}
	if ev.Modifiers&terminal.ModCtrl != 0 {
		mods.WriteString("Ctrl+")
	}

	keyName := terminal.KeyName(ev.Key)
	if ev.Key == terminal.KeyRune {
		if ev.Rune >= 0x20 && ev.Rune < 0x7f {
			keyName = fmt.Sprintf("'%c'", ev.Rune)
		} else {
			keyName = fmt.Sprintf("U+%04X", ev.Rune)
		}
	}

	line := fmt.Sprintf("KEY: %s%s", mods.String(), keyName)
	if a := keys.Lookup(ev.Key); a != keymap.ActionNone {
		line += " -> " + a.String()
	}
	return line
}
