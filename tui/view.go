package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-eighties/arp"
	"go-eighties/drums"
	"go-eighties/engine"
	"go-eighties/widgets"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName formats a MIDI note, 60 = C4
func NoteName(n uint8) string {
	return fmt.Sprintf("%s%d", noteNames[n%12], int(n)/12-1)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.Engine.Snapshot()

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	labelStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	playState := "STOP"
	if s.ArpEnabled || s.DrumsEnabled {
		playState = "PLAY"
	}
	port := s.Port
	if port == "" {
		port = "(no output)"
	}
	header := headerStyle.Render(fmt.Sprintf("go-eighties  %s  %3.0fbpm  %s", playState, s.Tempo, port))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	out.WriteString(labelStyle.Render(fmt.Sprintf("ARP   [%s] %-16s root %-4s", onOff(s.ArpEnabled), s.ArpPattern.Name, NoteName(s.PendingRoot))))
	if s.TransposeSteps > 1 {
		out.WriteString(labelStyle.Render(fmt.Sprintf(" transpose every %d", s.TransposeSteps)))
	}
	out.WriteString("\n")
	out.WriteString(m.arpRow(s))
	out.WriteString("\n\n")

	out.WriteString(labelStyle.Render(fmt.Sprintf("DRUMS [%s] %-16s kit %s", onOff(s.DrumsEnabled), s.DrumPattern.Name, s.Kit)))
	out.WriteString("\n")
	for v := drums.Bass; v < drums.NumVoices; v++ {
		out.WriteString(m.drumLane(s, v))
		out.WriteString("\n")
	}
	out.WriteString(m.beatRow(s))
	out.WriteString("\n\n")

	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{
			{Key: "space", Desc: "start/stop both"},
			{Key: "a / d", Desc: "arp / drums on-off"},
			{Key: "n / m", Desc: "next arp / drum pattern"},
			{Key: "+ / -", Desc: "tempo"},
			{Key: "[ ] { }", Desc: "root note by semitone / octave"},
			{Key: "t", Desc: "transpose every 1/2/4 cycles"},
			{Key: "s", Desc: "save config"},
			{Key: "q", Desc: "quit"},
		}},
	})))

	if m.status != "" {
		out.WriteString("\n\n")
		out.WriteString(statusStyle.Render(m.status))
	}

	return out.String()
}

// arpRow shows the four pattern steps, the last played one highlighted
func (m Model) arpRow(s engine.State) string {
	sym := m.Theme.Symbols
	played := (s.ArpStep + arp.Len - 1) % arp.Len

	cells := make([]widgets.Cell, arp.Len)
	for i := range cells {
		cells[i] = widgets.Cell{Symbol: sym.StepEmpty, Color: m.Theme.Muted()}
		if i == played {
			cells[i] = widgets.Cell{Symbol: sym.StepPlayhead, Color: m.Theme.Active()}
		}
	}
	row := widgets.RenderRow("", cells)

	note := string(sym.Rest)
	if s.NoteOn {
		note = fmt.Sprintf("%c %s", sym.Note, NoteName(s.Note))
	}
	return row + "  " + note
}

func (m Model) drumLane(s engine.State, v drums.Voice) string {
	sym := m.Theme.Symbols
	cells := make([]widgets.Cell, drums.Steps)
	for i := range cells {
		c := widgets.Cell{Symbol: sym.StepEmpty, Color: m.Theme.Muted()}
		if s.DrumPattern.Hit(v, i) {
			c = widgets.Cell{Symbol: sym.StepHit, Color: m.Theme.Accent()}
			if i == s.DrumStep && s.Trigger.Voice(v) {
				c.Color = m.Theme.Success()
			}
		}
		cells[i] = c
	}
	return widgets.RenderRow(v.String(), cells)
}

// beatRow flashes the position reported by the beat handler
func (m Model) beatRow(s engine.State) string {
	sym := m.Theme.Symbols
	cells := make([]widgets.Cell, drums.Steps)
	for i := range cells {
		cells[i] = widgets.Cell{Symbol: ' ', Color: m.Theme.Muted()}
		if i == s.Beat && s.DrumsEnabled {
			cells[i] = widgets.Cell{Symbol: sym.StepPlayhead, Color: m.Theme.Active()}
		}
	}
	return widgets.RenderRow("", cells)
}
