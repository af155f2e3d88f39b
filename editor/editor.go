// Package editor runs the editor control loop: render, wait for a key, dispatch.
package editor

import (
	"fmt"
	"log"

	"github.com/lixenwraith/hecto/keymap"
	"github.com/lixenwraith/hecto/terminal"
)

// Screen is the terminal surface the editor drives, satisfied by *terminal.Terminal
type Screen interface {
	Initialize() error
	Terminate() error
	Size() (terminal.Size, error)
	MoveCursorTo(p terminal.Position) error
	ClearScreen() error
	ClearLine() error
	HideCursor() error
	ShowCursor() error
	Print(text string) error
	Execute() error
	ReadEvent() (terminal.Event, error)
}

// Bell gives feedback when a cursor move is refused by a screen edge
type Bell interface {
	Ring()
}

// BellFunc adapts a function to Bell
type BellFunc func()

func (f BellFunc) Ring() { f() }

// Options configures an Editor
type Options struct {
	// Name and Version are shown in the welcome banner
	Name    string
	Version string

	// Keymap defaults to keymap.Default()
	Keymap keymap.Map

	// Bell is optional
	Bell Bell
}

// state is mutated only by evaluateEvent
type state struct {
	shouldQuit bool
	cursor     terminal.Position
}

// Editor owns the cursor and quit flag for one run
type Editor struct {
	term    Screen
	keys    keymap.Map
	bell    Bell
	name    string
	version string

	state state
}

// New creates an editor with the cursor at the origin
func New(term Screen, opts Options) *Editor {
	keys := opts.Keymap
	if keys == nil {
		keys = keymap.Default()
	}
	return &Editor{
		term:    term,
		keys:    keys,
		bell:    opts.Bell,
		name:    opts.Name,
		version: opts.Version,
		state: state{
			cursor: origin,
		},
	}
}

// Cursor returns the current cursor position
func (e *Editor) Cursor() terminal.Position {
	return e.state.cursor
}

// Quitting reports whether quit has been requested
func (e *Editor) Quitting() bool {
	return e.state.shouldQuit
}

// Run initializes the terminal, runs the loop until quit and restores the terminal.
// Terminate runs on every exit path including panics. A restore failure is returned
// in preference to an earlier loop error.
func (e *Editor) Run() (err error) {
	if err := e.term.Initialize(); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer func() {
		if terr := e.term.Terminate(); terr != nil {
			if err != nil {
				log.Printf("editor: loop error superseded by restore failure: %v", err)
			}
			err = fmt.Errorf("terminate: %w", terr)
		}
	}()

	if size, err := e.term.Size(); err == nil {
		log.Printf("editor: started %s %s on %dx%d", e.name, e.version, size.Columns, size.Rows)
	}

	return e.repl()
}

func (e *Editor) repl() error {
	for {
		if err := e.refreshScreen(); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if e.state.shouldQuit {
			log.Printf("editor: quit at %d,%d", e.state.cursor.Column, e.state.cursor.Row)
			return nil
		}

		ev, err := e.term.ReadEvent()
		if err != nil {
			return err
		}
		if err := e.evaluateEvent(ev); err != nil {
			return err
		}
	}
}

// evaluateEvent applies one input event to the state.
// Only key presses are considered; repeats and releases are ignored.
func (e *Editor) evaluateEvent(ev terminal.Event) error {
	if ev.Type != terminal.EventKey || ev.Phase != terminal.KeyPress {
		return nil
	}

	switch action := e.keys.Lookup(ev.Key); action {
	case keymap.ActionNone:
		return nil
	case keymap.ActionQuit:
		e.state.shouldQuit = true
		return nil
	default:
		return e.moveCursor(action)
	}
}
