package terminal

import (
	"errors"
	"fmt"
)

// Size is a snapshot of the terminal dimensions
type Size struct {
	Columns uint16
	Rows    uint16
}

// Position is a 0-indexed cell coordinate
type Position struct {
	Column uint16
	Row    uint16
}

// CommandKind identifies a queued terminal operation
type CommandKind uint8

const (
	CmdMoveTo CommandKind = iota
	CmdClearAll
	CmdClearLine
	CmdHideCursor
	CmdShowCursor
	CmdPrint
	CmdBell
)

// Command is a single pending operation, applied by Execute
type Command struct {
	Kind     CommandKind
	Position Position // CmdMoveTo
	Text     string   // CmdPrint
}

// ErrNotActive is returned by queue operations outside Initialize/Terminate
var ErrNotActive = errors.New("terminal not active")

// IOError reports a device failure
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return "terminal " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Terminal queues screen operations and flushes them to a Backend.
// Not safe for concurrent use.
type Terminal struct {
	backend Backend
	pending []Command
	active  bool
}

// New creates a Terminal on the named backend
func New(backend string) (*Terminal, error) {
	switch backend {
	case "", BackendANSI:
		b, err := NewANSIBackend()
		if err != nil {
			return nil, err
		}
		return NewWithBackend(b), nil
	case BackendTcell:
		b, err := NewTcellScreenBackend()
		if err != nil {
			return nil, err
		}
		return NewWithBackend(b), nil
	default:
		return nil, fmt.Errorf("unknown terminal backend %q", backend)
	}
}

// NewWithBackend creates a Terminal on an existing backend
func NewWithBackend(b Backend) *Terminal {
	return &Terminal{
		backend: b,
		pending: make([]Command, 0, 256),
	}
}

// Initialize enters raw mode, clears the screen and homes the cursor.
// On failure the device is left as it was found.
func (t *Terminal) Initialize() error {
	if t.active {
		return nil
	}
	if err := t.backend.Init(); err != nil {
		return &IOError{Op: "init", Err: err}
	}
	t.active = true

	t.pending = append(t.pending[:0],
		Command{Kind: CmdClearAll},
		Command{Kind: CmdMoveTo},
	)
	if err := t.Execute(); err != nil {
		t.active = false
		if ferr := t.backend.Fini(); ferr != nil {
			return errors.Join(err, &IOError{Op: "fini", Err: ferr})
		}
		return err
	}
	return nil
}

// Terminate restores the input discipline saved by Initialize.
// Unflushed commands are discarded. Calling it on an inactive terminal is a no-op.
func (t *Terminal) Terminate() error {
	if !t.active {
		return nil
	}
	t.active = false
	t.pending = t.pending[:0]
	if err := t.backend.Fini(); err != nil {
		return &IOError{Op: "fini", Err: err}
	}
	return nil
}

// Active reports whether the terminal is between Initialize and Terminate
func (t *Terminal) Active() bool {
	return t.active
}

// Size returns the current dimensions, queried live from the device
func (t *Terminal) Size() (Size, error) {
	s, err := t.backend.Size()
	if err != nil {
		return Size{}, &IOError{Op: "size", Err: err}
	}
	return s, nil
}

// MoveCursorTo queues a cursor relocation
func (t *Terminal) MoveCursorTo(p Position) error {
	return t.queue("move cursor", Command{Kind: CmdMoveTo, Position: p})
}

// ClearScreen queues a full screen clear
func (t *Terminal) ClearScreen() error {
	return t.queue("clear screen", Command{Kind: CmdClearAll})
}

// ClearLine queues a clear of the line under the cursor
func (t *Terminal) ClearLine() error {
	return t.queue("clear line", Command{Kind: CmdClearLine})
}

// HideCursor queues cursor hiding
func (t *Terminal) HideCursor() error {
	return t.queue("hide cursor", Command{Kind: CmdHideCursor})
}

// ShowCursor queues cursor showing
func (t *Terminal) ShowCursor() error {
	return t.queue("show cursor", Command{Kind: CmdShowCursor})
}

// Print queues raw text. No newline is appended and nothing is wrapped;
// callers emit "\r\n" themselves since raw mode disables output processing.
func (t *Terminal) Print(text string) error {
	return t.queue("print", Command{Kind: CmdPrint, Text: text})
}

// Ring queues an audible bell, emitted with the next Execute
func (t *Terminal) Ring() error {
	return t.queue("bell", Command{Kind: CmdBell})
}

// Execute flushes all queued commands to the device in one batch.
// The queue is emptied even when the write fails.
func (t *Terminal) Execute() error {
	if !t.active {
		return fmt.Errorf("execute: %w", ErrNotActive)
	}
	cmds := t.pending
	t.pending = t.pending[:0]
	if len(cmds) == 0 {
		return nil
	}
	if err := t.backend.Apply(cmds); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

// ReadEvent blocks until the next input event
func (t *Terminal) ReadEvent() (Event, error) {
	if !t.active {
		return Event{}, fmt.Errorf("read event: %w", ErrNotActive)
	}
	ev, err := t.backend.ReadEvent()
	if err != nil {
		return Event{}, &IOError{Op: "read", Err: err}
	}
	return ev, nil
}

func (t *Terminal) queue(op string, c Command) error {
	if !t.active {
		return fmt.Errorf("%s: %w", op, ErrNotActive)
	}
	t.pending = append(t.pending, c)
	return nil
}
