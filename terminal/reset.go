package terminal

import (
	"io"
	"os"
)

// EmergencyReset attempts to restore the terminal to a sane state.
// Call this from panic recovery when Terminate cannot be relied upon.
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiSGR0)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
