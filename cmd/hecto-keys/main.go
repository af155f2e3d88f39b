// hecto-keys prints the decoded form of every key the terminal delivers,
// with the editor action it is bound to. Ctrl+C or Ctrl+Q exits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/hecto/config"
	"github.com/lixenwraith/hecto/keymap"
	"github.com/lixenwraith/hecto/terminal"
)

const title = "hecto-keys: press keys, Ctrl+C or Ctrl+Q to quit"

var (
	configFlag  = flag.String("config", "", "Config file whose key bindings are shown")
	backendFlag = flag.String("backend", "", "Terminal backend: ansi, tcell")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
	}
	keys, err := cfg.Keymap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	term, err := terminal.New(cfg.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := term.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}

	err = loop(term, keys)
	if ferr := term.Terminate(); ferr != nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func loop(term *terminal.Terminal, keys keymap.Map) error {
	log := newEventLog()
	for {
		if err := render(term, log); err != nil {
			return err
		}

		ev, err := term.ReadEvent()
		if err != nil {
			return err
		}

		switch ev.Type {
		case terminal.EventKey:
			if ev.Key == terminal.KeyCtrlC || ev.Key == terminal.KeyCtrlQ {
				return nil
			}
			log.add(formatKeyEvent(ev, keys))
		case terminal.EventResize:
			log.add(fmt.Sprintf("RESIZE: %dx%d", ev.Width, ev.Height))
		}
	}
}

// render redraws the log and leaves the cursor visible, so the last frame
// before exit hands the shell a visible cursor.
func render(term *terminal.Terminal, log *eventLog) error {
	size, err := term.Size()
	if err != nil {
		return err
	}

	if err := term.HideCursor(); err != nil {
		return err
	}
	if err := term.ClearScreen(); err != nil {
		return err
	}

	lines := append([]string{title, ""}, log.tail(int(size.Rows)-2)...)
	for row, line := range lines {
		if row >= int(size.Rows) {
			break
		}
		if err := term.MoveCursorTo(terminal.Position{Row: uint16(row)}); err != nil {
			return err
		}
		if err := term.Print(runewidth.Truncate(line, int(size.Columns), "")); err != nil {
			return err
		}
	}

	if err := term.ShowCursor(); err != nil {
		return err
	}
	return term.Execute()
}
