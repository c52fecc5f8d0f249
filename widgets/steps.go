package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one colored symbol in a step row
type Cell struct {
	Symbol rune
	Color  lipgloss.Color
}

// RenderCell renders a single colored cell
func RenderCell(c Cell) string {
	style := lipgloss.NewStyle().Foreground(c.Color)
	return style.Render(string(c.Symbol))
}

// RenderRow renders a labelled row of cells, grouped in fours (one beat each)
func RenderRow(label string, cells []Cell) string {
	var out strings.Builder
	fmt.Fprintf(&out, "%-3s", label)
	for i, c := range cells {
		if i%4 == 0 {
			out.WriteString(" ")
		}
		out.WriteString(RenderCell(c))
	}
	return out.String()
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
