package terminal

// Backend abstracts the device behind a Terminal.
// Implementations are driven from a single goroutine.
type Backend interface {
	// Init enters raw mode
	Init() error

	// Fini restores the input discipline saved by Init
	Fini() error

	// Size queries current dimensions from the device
	Size() (Size, error)

	// Apply writes a batch of commands and flushes the device once
	Apply(cmds []Command) error

	// ReadEvent blocks until the next input event
	ReadEvent() (Event, error)
}

// Backend names accepted by New
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)
