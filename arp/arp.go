// Package arp plays a held root note as a repeating four-step arpeggio,
// optionally transposed further on every cycle.
package arp

import (
	"math"
)

// NoteHandler receives a MIDI note number
type NoteHandler func(note uint8)

const (
	defaultBPM      = 120
	defaultGate     = 0.5
	defaultDistance = 12
	maxNote         = 127
)

// Arpeggiator is a polled state machine. It is not safe for concurrent use;
// callers drive it from one goroutine via Update or Tick.
type Arpeggiator struct {
	enabled bool

	tempo     uint32 // ms per beat
	gate      uint32 // ms a note is held
	gateRatio float64

	pattern int
	step    int

	trSteps    int // transpose every trSteps cycles; 1 = never
	trDistance int // semitones per transpose
	trPos      int // 0..trSteps-1
	trAmount   int // latched at cycle start

	root        uint8
	pendingRoot uint8

	note       uint8
	noteActive bool
	lastBeat   uint32

	noteOn  NoteHandler
	noteOff NoteHandler
}

// New creates a disabled arpeggiator on pattern 0 at 120 bpm
func New() *Arpeggiator {
	a := &Arpeggiator{
		gateRatio:  defaultGate,
		trSteps:    1,
		trDistance: defaultDistance,
	}
	a.SetTempo(defaultBPM)
	return a
}

func (a *Arpeggiator) Enable()       { a.enabled = true }
func (a *Arpeggiator) Disable()      { a.enabled = false }
func (a *Arpeggiator) Enabled() bool { return a.enabled }

// SetRootNote stores the root used by Tick. It is latched at the next cycle start.
func (a *Arpeggiator) SetRootNote(note uint8) { a.pendingRoot = note }

// RootNote returns the root of the cycle in progress
func (a *Arpeggiator) RootNote() uint8 { return a.root }

// PendingRoot returns the root that Tick will latch next
func (a *Arpeggiator) PendingRoot() uint8 { return a.pendingRoot }

// SetTempo sets beats per minute. Non-positive values are ignored and
// reported by returning false.
func (a *Arpeggiator) SetTempo(bpm float64) bool {
	if !(bpm > 0) || math.IsInf(bpm, 0) || 60000/bpm > math.MaxUint32 {
		return false
	}
	a.tempo = uint32(math.Round(60000 / bpm))
	a.updateGate()
	return true
}

// SetGate sets the note length as a fraction of a beat, clamped to (0, 1]
func (a *Arpeggiator) SetGate(ratio float64) {
	if !(ratio > 0) {
		return
	}
	if ratio > 1 {
		ratio = 1
	}
	a.gateRatio = ratio
	a.updateGate()
}

func (a *Arpeggiator) updateGate() {
	a.gate = uint32(math.Round(a.gateRatio * float64(a.tempo)))
}

// Tempo returns milliseconds per beat
func (a *Arpeggiator) Tempo() uint32 { return a.tempo }

// Gate returns note duration in milliseconds
func (a *Arpeggiator) Gate() uint32 { return a.gate }

// GateRatio returns the gate as a fraction of a beat
func (a *Arpeggiator) GateRatio() float64 { return a.gateRatio }

// SetTransposeSteps sets how many cycles make up one transpose run. 1 disables it.
func (a *Arpeggiator) SetTransposeSteps(n int) {
	if n < 1 {
		n = 1
	}
	a.trSteps = n
	a.trPos %= n
}

// SetTransposeDistance sets the semitones added per transpose position
func (a *Arpeggiator) SetTransposeDistance(d int) { a.trDistance = d }

func (a *Arpeggiator) TransposeSteps() int    { return a.trSteps }
func (a *Arpeggiator) TransposeDistance() int { return a.trDistance }

// SelectPattern picks a pattern, wrapping id into the table
func (a *Arpeggiator) SelectPattern(id int) { a.pattern = Wrap(id) }

// NextPattern advances to the next pattern, cyclically
func (a *Arpeggiator) NextPattern() { a.pattern = Wrap(a.pattern + 1) }

func (a *Arpeggiator) Pattern() int      { return a.pattern }
func (a *Arpeggiator) PatternCount() int { return NumPatterns }

// SetNoteOnHandler replaces the note-on callback. nil clears it.
func (a *Arpeggiator) SetNoteOnHandler(fn NoteHandler) { a.noteOn = fn }

// SetNoteOffHandler replaces the note-off callback. nil clears it.
func (a *Arpeggiator) SetNoteOffHandler(fn NoteHandler) { a.noteOff = fn }

// Step returns the index of the next pattern step to play
func (a *Arpeggiator) Step() int { return a.step }

// ActiveNote returns the sounding note, if any
func (a *Arpeggiator) ActiveNote() (uint8, bool) { return a.note, a.noteActive }

// Tick is Update with the root set by SetRootNote
func (a *Arpeggiator) Tick(now uint32) {
	a.Update(now, a.pendingRoot)
}

// Update advances the arpeggiator to time now (milliseconds). rootHint is
// only read at the start of a cycle.
func (a *Arpeggiator) Update(now uint32, rootHint uint8) {
	if !a.enabled {
		return
	}

	// Gate first so one call can end the previous beat and start the next
	if a.noteActive && now-a.lastBeat > a.gate {
		a.Release()
	}

	if now-a.lastBeat > a.tempo {
		a.lastBeat = now

		// Musical changes only at the top of a cycle
		if a.step == 0 {
			a.root = rootHint
			a.trAmount = a.trDistance * a.trPos
			a.trPos = (a.trPos + 1) % a.trSteps
		}

		a.note = clampNote(int(a.root) + int(patterns[a.pattern].Steps[a.step]) + a.trAmount)
		a.noteActive = true
		if a.noteOn != nil {
			a.noteOn(a.note)
		}
		a.step = (a.step + 1) % Len
	}
}

// Release sends note-off for the sounding note, if any
func (a *Arpeggiator) Release() {
	if !a.noteActive {
		return
	}
	a.noteActive = false
	if a.noteOff != nil {
		a.noteOff(a.note)
	}
}

func clampNote(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > maxNote {
		return maxNote
	}
	return uint8(n)
}
