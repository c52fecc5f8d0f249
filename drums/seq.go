// Package drums is a 16-step drum pattern player with four voices.
package drums

import "math"

// BeatHandler is called on every step with the step that just ended
type BeatHandler func(step int)

// Trigger says which voices fire on a step
type Trigger struct {
	Bass, Snare, ClosedHat, OpenHat bool
}

// Any reports whether at least one voice fires
func (t Trigger) Any() bool {
	return t.Bass || t.Snare || t.ClosedHat || t.OpenHat
}

// Voice returns the flag for v
func (t Trigger) Voice(v Voice) bool {
	switch v {
	case Bass:
		return t.Bass
	case Snare:
		return t.Snare
	case ClosedHat:
		return t.ClosedHat
	case OpenHat:
		return t.OpenHat
	}
	return false
}

// TriggerHandler receives the voices for a step
type TriggerHandler func(t Trigger)

const defaultBPM = 120

// Sequencer steps through a pattern in sixteenth notes. It is not safe for
// concurrent use.
type Sequencer struct {
	enabled  bool
	pattern  int
	step     int
	period   uint32 // ms per sixteenth
	lastStep uint32

	beat    BeatHandler
	trigger TriggerHandler
}

// New creates a disabled sequencer on pattern 0 at 120 bpm
func New() *Sequencer {
	s := &Sequencer{}
	s.SetTempo(defaultBPM)
	return s
}

func (s *Sequencer) Enable()       { s.enabled = true }
func (s *Sequencer) Disable()      { s.enabled = false }
func (s *Sequencer) Enabled() bool { return s.enabled }

// SelectPattern picks a pattern, wrapping id into the table
func (s *Sequencer) SelectPattern(id int) { s.pattern = Wrap(id) }

// NextPattern advances to the next pattern, cyclically
func (s *Sequencer) NextPattern() { s.pattern = Wrap(s.pattern + 1) }

func (s *Sequencer) Pattern() int      { return s.pattern }
func (s *Sequencer) PatternCount() int { return NumPatterns }

// SetBeatHandler replaces the per-step callback. nil clears it.
func (s *Sequencer) SetBeatHandler(fn BeatHandler) { s.beat = fn }

// SetTriggerHandler replaces the trigger callback. nil clears it.
func (s *Sequencer) SetTriggerHandler(fn TriggerHandler) { s.trigger = fn }

// SetTempo sets beats per minute; a step is a quarter of a beat.
// Non-positive values are ignored and reported by returning false.
func (s *Sequencer) SetTempo(bpm float64) bool {
	if !(bpm > 0) || math.IsInf(bpm, 0) || 15000/bpm > math.MaxUint32 {
		return false
	}
	s.period = uint32(math.Round(60000 / bpm / 4))
	return true
}

// Period returns milliseconds per step
func (s *Sequencer) Period() uint32 { return s.period }

// Step returns the current step index (0..15)
func (s *Sequencer) Step() int { return s.step }

// Update advances at most one step at time now (milliseconds).
// The beat handler sees the step before advancing; trigger bits are read
// at the step after advancing.
func (s *Sequencer) Update(now uint32) {
	if !s.enabled {
		return
	}
	if now-s.lastStep < s.period {
		return
	}
	s.lastStep = now

	if s.beat != nil {
		s.beat(s.step)
	}

	s.step = (s.step + 1) % Steps

	pat := &patterns[s.pattern]
	t := Trigger{
		Bass:      pat.Hit(Bass, s.step),
		Snare:     pat.Hit(Snare, s.step),
		ClosedHat: pat.Hit(ClosedHat, s.step),
		OpenHat:   pat.Hit(OpenHat, s.step),
	}
	if s.trigger != nil {
		s.trigger(t)
	}
}
