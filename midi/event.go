package midi

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	Trigger uint8 = 0x99 // note on immediately followed by note off (drum hit)
)

// DefaultVelocity is used when an event carries velocity 0
const DefaultVelocity uint8 = 100

// Event is a note event headed for an output port
type Event struct {
	Type     uint8 // NoteOn, NoteOff, Trigger
	Channel  uint8 // 1-16
	Note     uint8
	Velocity uint8
}
