package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"go-eighties/clock"
	"go-eighties/config"
	"go-eighties/engine"
	"go-eighties/midi"
	"go-eighties/theme"
)

func newModel(t *testing.T) Model {
	t.Helper()
	e := engine.New(config.DefaultConfig(), &clock.Manual{})
	return NewModel(e, nil, theme.New(nil))
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestNoteName(t *testing.T) {
	cases := map[uint8]string{60: "C4", 48: "C3", 61: "C#4", 0: "C-1", 127: "G9"}
	for n, want := range cases {
		if got := NoteName(n); got != want {
			t.Errorf("NoteName(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestKeysDriveEngine(t *testing.T) {
	m := newModel(t)
	m = press(m, "n", "m", "+", "]", "]", "t")

	s := m.Engine.Snapshot()
	if s.ArpPatternID != 1 || s.DrumPatternID != 1 {
		t.Errorf("patterns arp=%d drums=%d", s.ArpPatternID, s.DrumPatternID)
	}
	if s.Tempo != 125 {
		t.Errorf("tempo %v", s.Tempo)
	}
	if s.PendingRoot != 50 {
		t.Errorf("root %d", s.PendingRoot)
	}
	if s.TransposeSteps != 2 {
		t.Errorf("transpose %d", s.TransposeSteps)
	}

	m = press(m, " ")
	if s := m.Engine.Snapshot(); s.ArpEnabled || s.DrumsEnabled {
		t.Errorf("space did not stop: %+v", s)
	}
}

func TestSaveReportsStatus(t *testing.T) {
	m := newModel(t)
	var saved *config.Config
	m.Save = func(c *config.Config) error {
		saved = c
		return nil
	}
	m = press(m, "s")
	if saved == nil || m.status != "saved" {
		t.Fatalf("save not called, status %q", m.status)
	}

	m.Save = func(*config.Config) error { return errors.New("read-only") }
	m = press(m, "s")
	if !strings.Contains(m.status, "read-only") {
		t.Fatalf("status %q", m.status)
	}
}

func TestPortEvents(t *testing.T) {
	m := newModel(t)
	m.Watcher = midi.NewPortWatcher("Synth")
	m.OpenPort = func(name string) (*midi.Port, error) {
		return midi.NewPort(name, nil), nil
	}

	next, cmd := m.Update(PortEventMsg{Type: midi.PortConnected, Name: "Synth"})
	m = next.(Model)
	if cmd == nil || m.Engine.Snapshot().Port != "Synth" {
		t.Fatalf("port not attached: %q", m.Engine.Snapshot().Port)
	}

	next, _ = m.Update(PortEventMsg{Type: midi.PortDisconnected, Name: "Synth"})
	m = next.(Model)
	if m.Engine.Snapshot().Port != "" {
		t.Fatalf("port not cleared")
	}
}

func TestViewShowsPatterns(t *testing.T) {
	m := newModel(t)
	out := m.View()
	for _, want := range []string{"go-eighties", "major", "basic", "BD", "OH", "root C3"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, cmd := m.Update(key("q"))
	if cmd == nil || next.(Model).View() != "" {
		t.Fatal("q should quit and blank the view")
	}
}
