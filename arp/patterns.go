package arp

// Len is the number of steps in every arp pattern
const Len = 4

// Pattern is a named list of semitone offsets from the root note
type Pattern struct {
	Name  string
	Steps [Len]int8
}

var patterns = [...]Pattern{
	{Name: "major", Steps: [Len]int8{0, 4, 7, 12}},
	{Name: "minor 7th", Steps: [Len]int8{0, 3, 7, 10}},
	{Name: "power 5th", Steps: [Len]int8{0, 7, 12, 0}},
	{Name: "octaves", Steps: [Len]int8{0, 12, 0, -12}},
	{Name: "octaves 2", Steps: [Len]int8{0, 12, 24, -12}},
	{Name: "octaves 3 (bass)", Steps: [Len]int8{0, -12, -12, 0}},
	{Name: "root", Steps: [Len]int8{0, 0, 0, 0}},
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
