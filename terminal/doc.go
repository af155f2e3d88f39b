// Package terminal translates editor-level screen intents into terminal commands.
//
// Features:
//   - Raw input mode with guaranteed restoration (Terminate, EmergencyReset)
//   - Explicit command queue flushed once per frame by Execute
//   - Blocking event read with escape sequence parsing
//   - Two backends: direct ANSI output over stdin/stdout, and tcell
//
// The ANSI backend bypasses terminfo entirely, emitting xterm-compatible sequences.
package terminal
