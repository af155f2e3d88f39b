package terminal

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// errScreenClosed is reported when the screen stops delivering events
var errScreenClosed = errors.New("screen closed")

// tcellBackend replays queued commands onto a tcell cell grid.
// tcell owns the termios handling; this backend only tracks the cursor.
type tcellBackend struct {
	screen tcell.Screen
	style  tcell.Style

	cursorX       int
	cursorY       int
	cursorVisible bool
}

// NewTcellScreenBackend creates a backend on a new tcell screen for the controlling terminal
func NewTcellScreenBackend() (Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTcellBackend(screen), nil
}

// NewTcellBackend wraps an uninitialized tcell screen, e.g. tcell.NewSimulationScreen
func NewTcellBackend(screen tcell.Screen) Backend {
	return &tcellBackend{
		screen:        screen,
		style:         tcell.StyleDefault,
		cursorVisible: true,
	}
}

func (b *tcellBackend) Init() error {
	return b.screen.Init()
}

func (b *tcellBackend) Fini() error {
	b.screen.Fini()
	return nil
}

func (b *tcellBackend) Size() (Size, error) {
	w, h := b.screen.Size()
	return Size{Columns: clampUint16(w), Rows: clampUint16(h)}, nil
}

func (b *tcellBackend) Apply(cmds []Command) error {
	for _, c := range cmds {
		switch c.Kind {
		case CmdMoveTo:
			b.cursorX = int(c.Position.Column)
			b.cursorY = int(c.Position.Row)
		case CmdClearAll:
			b.screen.Clear()
		case CmdClearLine:
			w, _ := b.screen.Size()
			for x := 0; x < w; x++ {
				b.screen.SetContent(x, b.cursorY, ' ', nil, b.style)
			}
		case CmdHideCursor:
			b.cursorVisible = false
		case CmdShowCursor:
			b.cursorVisible = true
		case CmdPrint:
			b.print(c.Text)
		case CmdBell:
			if err := b.screen.Beep(); err != nil {
				return err
			}
		}
	}

	if b.cursorVisible {
		b.screen.ShowCursor(b.cursorX, b.cursorY)
	} else {
		b.screen.HideCursor()
	}
	b.screen.Show()
	return nil
}

// print writes text at the tracked cursor with terminal carriage semantics
func (b *tcellBackend) print(text string) {
	for _, r := range text {
		switch r {
		case '\r':
			b.cursorX = 0
			continue
		case '\n':
			b.cursorY++
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.screen.SetContent(b.cursorX, b.cursorY, r, nil, b.style)
		b.cursorX += w
	}
}

func (b *tcellBackend) ReadEvent() (Event, error) {
	for {
		switch ev := b.screen.PollEvent().(type) {
		case nil:
			return Event{}, errScreenClosed
		case *tcell.EventResize:
			w, h := ev.Size()
			return Event{Type: EventResize, Width: w, Height: h}, nil
		case *tcell.EventKey:
			if out, ok := translateTcellKey(ev); ok {
				return out, nil
			}
		}
	}
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

// translateTcellKey converts a tcell key event, false for keys with no equivalent
func translateTcellKey(ev *tcell.EventKey) (Event, bool) {
	out := Event{Type: EventKey, Modifiers: translateTcellMods(ev.Modifiers())}

	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		out.Key = KeyRune
		out.Rune = ev.Rune()
		return out.normalized(), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		// tcell aliases Tab, Enter and Backspace onto Ctrl+I/M/H
		if mapped, ok := tcellKeys[k]; ok {
			out.Key = mapped
			return out, true
		}
		out.Key = KeyCtrlA + Key(k-tcell.KeyCtrlA)
		out.Modifiers &^= ModCtrl
		return out, true
	}

	if mapped, ok := tcellKeys[k]; ok {
		out.Key = mapped
		return out, true
	}
	return Event{}, false
}

func translateTcellMods(m tcell.ModMask) Modifier {
	var mod Modifier
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	return mod
}

func clampUint16(n int) uint16 {
	if n < 0 {
		return 0
	}
	if n > 0xffff {
		return 0xffff
	}
	return uint16(n)
}
