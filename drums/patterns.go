package drums

// Steps is the length of every drum pattern
const Steps = 16

// Voice indexes a drum sound within a pattern
type Voice int

const (
	Bass Voice = iota
	Snare
	ClosedHat
	OpenHat
	NumVoices
)

var voiceNames = [NumVoices]string{"BD", "SD", "CH", "OH"}

func (v Voice) String() string {
	if v < 0 || v >= NumVoices {
		return "??"
	}
	return voiceNames[v]
}

// Pattern holds one 16-bit step mask per voice. Bit 0 is step 0.
type Pattern struct {
	Name  string
	Masks [NumVoices]uint16
}

// Hit reports whether voice v fires on step
func (p Pattern) Hit(v Voice, step int) bool {
	return p.Masks[v]>>uint(step)&1 == 1
}

var patterns = [...]Pattern{
	{
		Name: "basic",
		Masks: [NumVoices]uint16{
			0b1000000010000001, // bd
			0b0000100000001000, // sd
			0b1010101010101010, // ch
			0b0000000000000001, // oh
		},
	},
	{
		Name: "busy hats",
		Masks: [NumVoices]uint16{
			0b1000000010000001,
			0b0000100000001000,
			0b1111111011111110,
			0b0000000100000001,
		},
	},
	{
		Name: "broken",
		Masks: [NumVoices]uint16{
			0b1100110011001001,
			0b0000100000001000,
			0b0011001100110011,
			0b1000000110000001,
		},
	},
}

// NumPatterns is the size of the built-in pattern table
const NumPatterns = len(patterns)

// GetPattern returns a copy of pattern id, wrapped into the table
func GetPattern(id int) Pattern {
	return patterns[Wrap(id)]
}

// Wrap maps any pattern id into the table
func Wrap(id int) int {
	id %= NumPatterns
	if id < 0 {
		id += NumPatterns
	}
	return id
}
