//go:build !unix

package terminal

import "fmt"

// NewANSIBackend is only available on unix; use the tcell backend elsewhere
func NewANSIBackend() (Backend, error) {
	return nil, fmt.Errorf("ansi backend not supported on this platform, use %q", BackendTcell)
}
