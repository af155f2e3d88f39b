package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/hecto/audio"
	"github.com/lixenwraith/hecto/config"
	"github.com/lixenwraith/hecto/editor"
	"github.com/lixenwraith/hecto/terminal"
)

// Set via -ldflags at release time
var (
	name    = "hecto"
	version = "0.1.0"
)

var (
	configFlag  = flag.String("config", "", "Config file (default: user config dir)/hecto/config.yaml")
	backendFlag = flag.String("backend", "", "Terminal backend: ansi, tcell")
	bellFlag    = flag.String("bell", "", "Edge bell: none, terminal, audio")
	debugFlag   = flag.Bool("debug", false, "Write debug log to logs/hecto.log")
	versionFlag = flag.Bool("version", false, "Print version and exit")
)

func main() {
	// Panic Recovery: restore the terminal before printing anything
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mHECTO CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s %s\n", name, version)
		return
	}

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		log.Printf("exit: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}

	// Flags override the file
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
	}
	if *bellFlag != "" {
		cfg.Bell = *bellFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	keys, err := cfg.Keymap()
	if err != nil {
		return err
	}

	term, err := terminal.New(cfg.Backend)
	if err != nil {
		return err
	}

	var bell editor.Bell
	switch cfg.Bell {
	case config.BellTerminal:
		bell = editor.BellFunc(func() {
			if err := term.Ring(); err != nil {
				log.Printf("bell: %v", err)
			}
		})
	case config.BellAudio:
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("audio unavailable, continuing without bell: %v", err)
		} else {
			defer sm.Cleanup()
			bell = sm
		}
	}

	log.Printf("starting %s %s backend=%s bell=%s", name, version, cfg.Backend, cfg.Bell)

	ed := editor.New(term, editor.Options{
		Name:    name,
		Version: version,
		Keymap:  keys,
		Bell:    bell,
	})
	return ed.Run()
}
