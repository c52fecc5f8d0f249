package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"go-eighties/config"
	"go-eighties/debug"
	"go-eighties/engine"
	"go-eighties/midi"
	"go-eighties/theme"
)

type Model struct {
	Engine  *engine.Engine
	Watcher *midi.PortWatcher // may be nil
	Theme   *theme.Theme

	// OpenPort and Save are swapped out in tests
	OpenPort func(name string) (*midi.Port, error)
	Save     func(*config.Config) error

	status   string
	quitting bool
}

type UpdateMsg struct{}

type PortEventMsg midi.PortEvent

func NewModel(e *engine.Engine, w *midi.PortWatcher, th *theme.Theme) Model {
	return Model{
		Engine:   e,
		Watcher:  w,
		Theme:    th,
		OpenPort: midi.OpenPort,
		Save:     (*config.Config).Save,
	}
}

func ListenForUpdates(e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		<-e.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForPorts(w *midi.PortWatcher) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-w.Events()
		if !ok {
			return nil
		}
		return PortEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Engine)}
	if m.Watcher != nil {
		cmds = append(cmds, ListenForPorts(m.Watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ":
			m.Engine.TogglePlay()

		case "a":
			m.Engine.ToggleArp()

		case "d":
			m.Engine.ToggleDrums()

		case "n":
			m.Engine.NextArpPattern()

		case "m":
			m.Engine.NextDrumPattern()

		case "+", "=":
			m.Engine.AdjustTempo(5)

		case "-", "_":
			m.Engine.AdjustTempo(-5)

		case "[":
			m.Engine.TransposeRoot(-1)

		case "]":
			m.Engine.TransposeRoot(1)

		case "{":
			m.Engine.TransposeRoot(-12)

		case "}":
			m.Engine.TransposeRoot(12)

		case "t":
			m.Engine.CycleTransposeSteps()

		case "s":
			if err := m.Save(m.Engine.Config()); err != nil {
				m.status = fmt.Sprintf("save failed: %v", err)
			} else {
				m.status = "saved"
			}
			debug.Log("config", "save: %s", m.status)
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Engine)

	case PortEventMsg:
		event := midi.PortEvent(msg)
		switch event.Type {
		case midi.PortConnected:
			port, err := m.OpenPort(event.Name)
			if err != nil {
				m.status = err.Error()
				debug.Log("port", "open %s: %v", event.Name, err)
			} else {
				m.Engine.SetPort(port)
				m.status = "connected " + event.Name
			}
		case midi.PortDisconnected:
			m.Engine.SetPort(nil)
			m.status = "disconnected " + event.Name
		}
		return m, ListenForPorts(m.Watcher)
	}

	return m, nil
}
