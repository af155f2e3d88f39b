//go:build unix

package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// escapeTimeoutMs is how long to wait after ESC to distinguish
// a standalone ESC from the start of an escape sequence
const escapeTimeoutMs = 50

type ansiBackend struct {
	inFd    int
	outFd   int
	writer  *bufio.Writer
	oldTerm *term.State

	parser  inputParser
	readBuf []byte
}

// NewANSIBackend returns a backend driving stdin/stdout with ANSI sequences
func NewANSIBackend() (Backend, error) {
	return newANSIBackend(os.Stdin, os.Stdout), nil
}

func newANSIBackend(in, out *os.File) *ansiBackend {
	return &ansiBackend{
		inFd:    int(in.Fd()),
		outFd:   int(out.Fd()),
		writer:  bufio.NewWriterSize(out, 65536),
		readBuf: make([]byte, 256),
	}
}

func (b *ansiBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return err
	}
	b.oldTerm = old
	return nil
}

func (b *ansiBackend) Fini() error {
	if b.oldTerm == nil {
		return nil
	}
	old := b.oldTerm
	b.oldTerm = nil
	return term.Restore(b.inFd, old)
}

func (b *ansiBackend) Size() (Size, error) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{Columns: ws.Col, Rows: ws.Row}, nil
}

func (b *ansiBackend) Apply(cmds []Command) error {
	encodeCommands(b.writer, cmds)
	return b.writer.Flush()
}

func (b *ansiBackend) ReadEvent() (Event, error) {
	for {
		if ev, ok := b.parser.next(false); ok {
			return ev, nil
		}

		// Block indefinitely unless an incomplete sequence is buffered
		timeout := -1
		if b.parser.pending() {
			timeout = escapeTimeoutMs
		}
		ready, err := b.poll(timeout)
		if err != nil {
			return Event{}, err
		}
		if !ready {
			if ev, ok := b.parser.next(true); ok {
				return ev, nil
			}
			continue
		}

		n, err := unix.Read(b.inFd, b.readBuf)
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}
			return Event{}, err
		}
		if n == 0 {
			return Event{}, io.EOF
		}
		b.parser.feed(b.readBuf[:n])
	}
}

// poll waits for stdin to become readable; timeout in ms, -1 blocks
func (b *ansiBackend) poll(timeout int) (bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(b.inFd), Events: unix.POLLIN},
	}
	for {
		n, err := unix.Poll(fds, timeout)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return false, err
		}
		return n > 0, nil
	}
}
