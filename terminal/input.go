package terminal

import "unicode/utf8"

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
)

// KeyPhase distinguishes press from repeat/release on backends that report them
type KeyPhase uint8

const (
	KeyPress KeyPhase = iota
	KeyRepeat
	KeyRelease
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Phase     KeyPhase
	Width     int // For EventResize
	Height    int // For EventResize
}

// normalized folds Ctrl+letter runes into the matching KeyCtrl* key
func (ev Event) normalized() Event {
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Modifiers&ModCtrl == 0 {
		return ev
	}
	if k := ctrlLetterKey(ev.Rune); k != KeyNone {
		ev.Key = k
		ev.Rune = 0
		ev.Modifiers &^= ModCtrl
	}
	return ev
}

// maxCSILen bounds the scan for a CSI terminator; longer runs are dropped
const maxCSILen = 16

// inputParser assembles raw stdin bytes into events.
// The buffer persists across reads so sequences split between reads are not corrupted.
type inputParser struct {
	buf []byte
}

func (p *inputParser) feed(data []byte) {
	p.buf = append(p.buf, data...)
}

// pending reports whether unparsed bytes remain
func (p *inputParser) pending() bool {
	return len(p.buf) > 0
}

// next returns the first complete event in the buffer.
// With flush set, an incomplete sequence at the head is resolved instead of awaited:
// a lone ESC becomes KeyEscape, a truncated UTF-8 sequence is dropped.
func (p *inputParser) next(flush bool) (Event, bool) {
	for len(p.buf) > 0 {
		consumed, ev := parseOne(p.buf, flush)
		if consumed == 0 {
			return Event{}, false
		}
		p.consume(consumed)

		// Unknown sequences are swallowed
		if ev.Key != KeyNone {
			return ev, true
		}
	}
	return Event{}, false
}

func (p *inputParser) consume(n int) {
	if n >= len(p.buf) {
		p.buf = p.buf[:0]
		return
	}
	copy(p.buf, p.buf[n:])
	p.buf = p.buf[:len(p.buf)-n]
}

// parseOne parses the event at the head of data, returns 0 consumed when incomplete
func parseOne(data []byte, flush bool) (int, Event) {
	b := data[0]

	switch {
	case b >= 0x20 && b < 0x7f:
		return 1, Event{Type: EventKey, Key: KeyRune, Rune: rune(b)}

	case b == 0x1b:
		consumed, ev := parseEscape(data)
		if consumed == 0 && flush {
			return 1, Event{Type: EventKey, Key: KeyEscape}
		}
		return consumed, ev

	case b < 0x20:
		return 1, parseControl(b)

	case b == 0x7f:
		return 1, Event{Type: EventKey, Key: KeyBackspace}
	}

	// UTF-8 multibyte
	if !utf8.FullRune(data) {
		if flush {
			return 1, Event{}
		}
		return 0, Event{}
	}
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size == 1 {
		return 1, Event{}
	}
	return size, Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	}

	if data[1] == '[' {
		return parseCSI(data)
	}
	if data[1] == 'O' {
		return parseSS3(data)
	}

	// Alt+Control character
	if data[1] < 0x20 {
		ev := parseControl(data[1])
		ev.Modifiers |= ModAlt
		return 2, ev
	}

	// Alt+printable
	if data[1] < 0x7f {
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}

	// ESC followed by a non-ASCII byte: report the ESC alone
	return 1, Event{Type: EventKey, Key: KeyEscape}
}

// parseCSI parses ESC [ params final
func parseCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}

	limit := len(data)
	if limit > maxCSILen {
		limit = maxCSILen
	}

	for end := 2; end < limit; end++ {
		b := data[end]
		// Linux console F1-F5 use ESC [ [ X; '[' is not a terminator
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			if key, mod, ok := lookupCSI(data[2 : end+1]); ok {
				return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}
			}
			// Unknown but well-formed: consume and drop
			return end + 1, Event{}
		}
		if b < 0x20 || b > 0x7e {
			// Malformed: drop the introducer and resync
			return end, Event{}
		}
	}

	if len(data) >= maxCSILen {
		return maxCSILen, Event{}
	}
	return 0, Event{}
}

// parseSS3 parses ESC O X
func parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return 3, Event{Type: EventKey, Key: key, Modifiers: mod}
	}
	return 3, Event{}
}

// parseControl maps control characters to keys
func parseControl(b byte) Event {
	switch b {
	case 0x08: // Ctrl+H or Backspace
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d: // LF, CR
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Type: EventKey, Key: KeyCtrlA + Key(b-0x01)}
	}
	return Event{}
}
