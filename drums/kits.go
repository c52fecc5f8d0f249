package drums

// Kit maps the four voices to MIDI notes
type Kit struct {
	Name  string
	Notes [NumVoices]uint8
}

// Kits contains all available drum kit mappings
var Kits = map[string]Kit{
	"gm": {
		Name: "General MIDI",
		Notes: [NumVoices]uint8{
			36, // Kick
			38, // Snare
			42, // Closed HH
			46, // Open HH
		},
	},
	"rd8": {
		Name: "Behringer RD-8",
		Notes: [NumVoices]uint8{
			36, // Kick (BD)
			40, // Snare (SD) - note: RD-8 uses 40, not 38!
			42, // Closed HH (CH)
			46, // Open HH (OH)
		},
	},
	"tr8s": {
		Name:  "Roland TR-8S",
		Notes: [NumVoices]uint8{36, 38, 42, 46},
	},
	"er1": {
		Name: "Korg ER-1",
		Notes: [NumVoices]uint8{
			36, // Perc Synth 1 (Kick)
			38, // Perc Synth 2 (Snare)
			42, // Closed HH (PCM)
			46, // Open HH (PCM)
		},
	},
}

// DefaultKit is the default kit name
const DefaultKit = "gm"

// KitNames returns the list of available kit names
func KitNames() []string {
	return []string{"gm", "rd8", "tr8s", "er1"}
}

// GetKit returns a kit by name, defaulting to GM if not found
func GetKit(name string) Kit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}

// NotesFor returns the MIDI notes of the voices that fire in t
func (k Kit) NotesFor(t Trigger) []uint8 {
	var notes []uint8
	for v := Bass; v < NumVoices; v++ {
		if t.Voice(v) {
			notes = append(notes, k.Notes[v])
		}
	}
	return notes
}
