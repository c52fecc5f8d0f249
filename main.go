package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-eighties/clock"
	"go-eighties/config"
	"go-eighties/debug"
	"go-eighties/engine"
	"go-eighties/midi"
	"go-eighties/theme"
	"go-eighties/tui"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "list":
			listPorts()
		default:
			usage()
		}
		return
	}

	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("go-eighties - arpeggiator and drum sequencer")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  (none)  - Run with the terminal UI")
	fmt.Println("  list    - List MIDI output ports")
}

func listPorts() {
	defer midi.CloseDriver()
	names, err := midi.ListOutPorts(3 * time.Second)
	if err != nil {
		fmt.Println(err)
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	fmt.Println("=== MIDI Output Ports ===")
	for i, n := range names {
		fmt.Printf("  %d: %s\n", i, n)
	}
}

func run() error {
	defer midi.CloseDriver()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.Debug || os.Getenv("EIGHTIES_DEBUG") == "1" {
		if err := debug.Enable(); err != nil {
			return err
		}
		defer debug.Disable()
	}

	palette := theme.Plasma()
	if cfg.Palette != "" {
		if palette, err = theme.LoadGPL(cfg.Palette); err != nil {
			return err
		}
	}
	th := theme.New(palette)

	e := engine.New(cfg, clock.NewSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// No port configured: take the first one available
	portName := cfg.Output.Port
	if portName == "" {
		if names, err := midi.ListOutPorts(3 * time.Second); err == nil && len(names) > 0 {
			portName = names[0]
		}
	}

	// Watch the output port (handles hot-plug)
	var watcher *midi.PortWatcher
	if portName != "" {
		watcher = midi.NewPortWatcher(portName)
		go watcher.Run(ctx)
	}

	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	debug.Log("main", "started, port=%q tempo=%v", portName, cfg.Tempo)

	m := tui.NewModel(e, watcher, th)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()

	// Stop the engine so the held note is released before the driver closes
	cancel()
	<-done
	return err
}
