// Package keymap binds terminal keys to editor actions.
package keymap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lixenwraith/hecto/terminal"
)

// Action is a semantic editor command
type Action uint8

const (
	ActionNone Action = iota // Unbind sentinel
	ActionQuit
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionHome
	ActionEnd
	ActionPageUp
	ActionPageDown
)

// actionNames maps actions to canonical config names
var actionNames = map[Action]string{
	ActionNone:     "none",
	ActionQuit:     "quit",
	ActionLeft:     "left",
	ActionRight:    "right",
	ActionUp:       "up",
	ActionDown:     "down",
	ActionHome:     "home",
	ActionEnd:      "end",
	ActionPageUp:   "page_up",
	ActionPageDown: "page_down",
}

var nameToAction map[string]Action

func init() {
	nameToAction = make(map[string]Action, len(actionNames))
	for a, name := range actionNames {
		nameToAction[name] = a
	}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ActionByName resolves a config action name, case-insensitive
func ActionByName(name string) (Action, bool) {
	a, ok := nameToAction[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// Map binds keys to actions
type Map map[terminal.Key]Action

// Default returns the built-in bindings
func Default() Map {
	return Map{
		terminal.KeyCtrlQ:    ActionQuit,
		terminal.KeyLeft:     ActionLeft,
		terminal.KeyRight:    ActionRight,
		terminal.KeyUp:       ActionUp,
		terminal.KeyDown:     ActionDown,
		terminal.KeyHome:     ActionHome,
		terminal.KeyEnd:      ActionEnd,
		terminal.KeyPageUp:   ActionPageUp,
		terminal.KeyPageDown: ActionPageDown,
	}
}

// Lookup returns the action bound to k, ActionNone if unbound
func (m Map) Lookup(k terminal.Key) Action {
	return m[k]
}

// Clone returns an independent copy
func (m Map) Clone() Map {
	c := make(Map, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Parse converts key name → action name pairs into a sparse override Map.
// Entries bound to "none" are kept so Merge can unbind them.
func Parse(bindings map[string]string) (Map, error) {
	m := make(Map, len(bindings))

	// Sorted for deterministic error reporting
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, keyName := range names {
		k, ok := terminal.KeyByName(keyName)
		if !ok {
			return nil, fmt.Errorf("unknown key name: %q", keyName)
		}
		a, ok := ActionByName(bindings[keyName])
		if !ok {
			return nil, fmt.Errorf("key %q: unknown action: %q", keyName, bindings[keyName])
		}
		m[k] = a
	}
	return m, nil
}

// Merge returns base overridden by override.
// Override entries bound to ActionNone delete the key from the result.
func Merge(base, override Map) Map {
	result := base.Clone()
	for k, a := range override {
		if a == ActionNone {
			delete(result, k)
		} else {
			result[k] = a
		}
	}
	return result
}
