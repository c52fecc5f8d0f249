// Package engine is the host loop: it polls the arpeggiator and the drum
// sequencer with a millisecond clock and routes their events to MIDI.
package engine

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go-eighties/arp"
	"go-eighties/clock"
	"go-eighties/config"
	"go-eighties/debug"
	"go-eighties/drums"
	"go-eighties/midi"
)

// PollInterval is how often Run polls the generators
const PollInterval = time.Millisecond

// Engine owns both generators. All access to them goes through the engine
// mutex, so UI goroutines can call the control methods while Run polls.
type Engine struct {
	mu    sync.Mutex
	cfg   config.Config
	clock clock.Clock

	arp   *arp.Arpeggiator
	drums *drums.Sequencer
	kit   drums.Kit
	out   *midi.Port

	// last emitted, for display
	beat    int
	trigger drums.Trigger

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// State is a snapshot for display
type State struct {
	Tempo float64
	Port  string

	ArpEnabled     bool
	ArpPattern     arp.Pattern
	ArpPatternID   int
	ArpStep        int
	Root           uint8
	PendingRoot    uint8
	Note           uint8
	NoteOn         bool
	TransposeSteps int

	DrumsEnabled  bool
	DrumPattern   drums.Pattern
	DrumPatternID int
	DrumStep      int
	Beat          int
	Trigger       drums.Trigger
	Kit           string
}

// New creates an engine configured from cfg
func New(cfg *config.Config, clk clock.Clock) *Engine {
	e := &Engine{
		cfg:        *cfg,
		clock:      clk,
		arp:        arp.New(),
		drums:      drums.New(),
		kit:        drums.GetKit(cfg.Drums.Kit),
		UpdateChan: make(chan struct{}, 1),
	}
	e.cfg.Validate()
	e.configure()

	e.arp.SetNoteOnHandler(e.noteOn)
	e.arp.SetNoteOffHandler(e.noteOff)
	e.drums.SetBeatHandler(e.onBeat)
	e.drums.SetTriggerHandler(e.onTrigger)
	return e
}

func (e *Engine) configure() {
	c := &e.cfg
	e.arp.SetTempo(c.Tempo)
	e.arp.SetGate(c.Arp.Gate)
	e.arp.SelectPattern(c.Arp.Pattern)
	e.arp.SetRootNote(c.Arp.Root)
	e.arp.SetTransposeSteps(c.Arp.TransposeSteps)
	e.arp.SetTransposeDistance(c.Arp.TransposeDistance)
	if c.Arp.Enabled {
		e.arp.Enable()
	}

	e.drums.SetTempo(c.Tempo)
	e.drums.SelectPattern(c.Drums.Pattern)
	if c.Drums.Enabled {
		e.drums.Enable()
	}
}

// Handlers run inside Poll with e.mu held

func (e *Engine) noteOn(note uint8) {
	e.send(midi.Event{Type: midi.NoteOn, Channel: e.cfg.Output.ArpChannel, Note: note})
}

func (e *Engine) noteOff(note uint8) {
	e.send(midi.Event{Type: midi.NoteOff, Channel: e.cfg.Output.ArpChannel, Note: note})
}

func (e *Engine) onBeat(step int) {
	e.beat = step
	debug.LogEvery(16, "beat", "step=%d", step)
}

func (e *Engine) onTrigger(t drums.Trigger) {
	e.trigger = t
	for _, note := range e.kit.NotesFor(t) {
		e.send(midi.Event{Type: midi.Trigger, Channel: e.cfg.Output.DrumChannel, Note: note})
	}
	e.notifyUpdate()
}

func (e *Engine) send(ev midi.Event) {
	debug.Log("dispatch", "type=0x%02x ch=%d note=%d", ev.Type, ev.Channel, ev.Note)
	if err := e.out.Send(ev); err != nil {
		debug.Log("dispatch", "send failed: %v", err)
	}
	e.notifyUpdate()
}

// notifyUpdate wakes the TUI without blocking
func (e *Engine) notifyUpdate() {
	select {
	case e.UpdateChan <- struct{}{}:
	default:
	}
}

// SetPort sets the MIDI output; nil drops events. A held arp note is
// released on the old port first.
func (e *Engine) SetPort(p *midi.Port) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.arp.Release()
	e.out = p
	if p != nil {
		e.cfg.Output.Port = p.Name()
		debug.Log("port", "output set to %s", p.Name())
	} else {
		debug.Log("port", "output cleared")
	}
	e.notifyUpdate()
}

// Poll runs one host iteration at the current clock time
func (e *Engine) Poll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()
	e.arp.Tick(now)
	e.drums.Update(now)
}

// Run polls until ctx is cancelled, then releases any held note
func (e *Engine) Run(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.mu.Lock()
			e.arp.Release()
			e.mu.Unlock()
			return
		case <-ticker.C:
			e.Poll()
		}
	}
}

// Controls

// ToggleArp enables/disables the arpeggiator. Disabling releases the held
// note so it does not hang on the synth; the pattern position is kept.
func (e *Engine) ToggleArp() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.arp.Enabled() {
		e.arp.Disable()
		e.arp.Release()
	} else {
		e.arp.Enable()
	}
	e.cfg.Arp.Enabled = e.arp.Enabled()
	e.notifyUpdate()
}

// ToggleDrums enables/disables the step sequencer
func (e *Engine) ToggleDrums() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drums.Enabled() {
		e.drums.Disable()
	} else {
		e.drums.Enable()
	}
	e.cfg.Drums.Enabled = e.drums.Enabled()
	e.notifyUpdate()
}

// TogglePlay stops both generators if either runs, otherwise starts both
func (e *Engine) TogglePlay() {
	e.mu.Lock()
	defer e.mu.Unlock()
	playing := e.arp.Enabled() || e.drums.Enabled()
	if playing {
		e.arp.Disable()
		e.arp.Release()
		e.drums.Disable()
	} else {
		e.arp.Enable()
		e.drums.Enable()
	}
	e.cfg.Arp.Enabled = !playing
	e.cfg.Drums.Enabled = !playing
	e.notifyUpdate()
}

func (e *Engine) NextArpPattern() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.arp.NextPattern()
	e.cfg.Arp.Pattern = e.arp.Pattern()
	debug.Log("arp", "pattern %d (%s)", e.arp.Pattern(), arp.GetPattern(e.arp.Pattern()).Name)
	e.notifyUpdate()
}

func (e *Engine) NextDrumPattern() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drums.NextPattern()
	e.cfg.Drums.Pattern = e.drums.Pattern()
	debug.Log("drums", "pattern %d (%s)", e.drums.Pattern(), drums.GetPattern(e.drums.Pattern()).Name)
	e.notifyUpdate()
}

// SetTempo sets the BPM for both generators
func (e *Engine) SetTempo(bpm float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if bpm < config.MinTempo {
		bpm = config.MinTempo
	}
	if bpm > config.MaxTempo {
		bpm = config.MaxTempo
	}
	e.cfg.Tempo = bpm
	e.arp.SetTempo(bpm)
	e.drums.SetTempo(bpm)
	e.notifyUpdate()
}

// AdjustTempo nudges the BPM by delta
func (e *Engine) AdjustTempo(delta float64) {
	e.mu.Lock()
	bpm := e.cfg.Tempo + delta
	e.mu.Unlock()
	e.SetTempo(bpm)
}

// SetRootNote sets the arp root, taking effect at the next cycle
func (e *Engine) SetRootNote(note uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if note > 127 {
		note = 127
	}
	e.arp.SetRootNote(note)
	e.cfg.Arp.Root = note
	e.notifyUpdate()
}

// TransposeRoot moves the pending root by delta semitones
func (e *Engine) TransposeRoot(delta int) {
	e.mu.Lock()
	n := int(e.arp.PendingRoot()) + delta
	e.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n > 127 {
		n = 127
	}
	e.SetRootNote(uint8(n))
}

var transposeCycle = []int{1, 2, 4}

// CycleTransposeSteps steps through 1 (off), 2 and 4 cycles per run
func (e *Engine) CycleTransposeSteps() {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := transposeCycle[0]
	for i, n := range transposeCycle {
		if n == e.arp.TransposeSteps() {
			next = transposeCycle[(i+1)%len(transposeCycle)]
			break
		}
	}
	e.arp.SetTransposeSteps(next)
	e.cfg.Arp.TransposeSteps = next
	e.notifyUpdate()
}

// Snapshot returns the current state for display
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	note, on := e.arp.ActiveNote()
	s := State{
		Tempo: e.cfg.Tempo,

		ArpEnabled:     e.arp.Enabled(),
		ArpPattern:     arp.GetPattern(e.arp.Pattern()),
		ArpPatternID:   e.arp.Pattern(),
		ArpStep:        e.arp.Step(),
		Root:           e.arp.RootNote(),
		PendingRoot:    e.arp.PendingRoot(),
		Note:           note,
		NoteOn:         on,
		TransposeSteps: e.arp.TransposeSteps(),

		DrumsEnabled:  e.drums.Enabled(),
		DrumPattern:   drums.GetPattern(e.drums.Pattern()),
		DrumPatternID: e.drums.Pattern(),
		DrumStep:      e.drums.Step(),
		Beat:          e.beat,
		Trigger:       e.trigger,
		Kit:           e.kit.Name,
	}
	if e.out != nil {
		s.Port = e.out.Name()
	}
	return s
}

// Config returns the current settings, ready to save
func (e *Engine) Config() *config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.cfg
	return &c
}
