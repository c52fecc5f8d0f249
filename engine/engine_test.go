package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-eighties/clock"
	"go-eighties/config"
	"go-eighties/engine"
	"go-eighties/midi"
)

type sent struct {
	on      bool
	channel uint8
	key     uint8
}

type capture struct {
	mu   sync.Mutex
	msgs []sent
}

func (c *capture) send(msg gomidi.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ch, key, vel uint8
	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		c.msgs = append(c.msgs, sent{true, ch, key})
	case msg.GetNoteOff(&ch, &key, &vel):
		c.msgs = append(c.msgs, sent{false, ch, key})
	}
	return nil
}

func (c *capture) take() []sent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.msgs
	c.msgs = nil
	return out
}

func newEngine(t *testing.T) (*engine.Engine, *clock.Manual, *capture) {
	t.Helper()
	clk := &clock.Manual{}
	e := engine.New(config.DefaultConfig(), clk)
	c := &capture{}
	e.SetPort(midi.NewPort("test", c.send))
	return e, clk, c
}

func TestPollDispatchesDrumsAndArp(t *testing.T) {
	e, clk, c := newEngine(t)

	// first sixteenth: pattern 0 fires only the closed hat on step 1
	clk.Set(125)
	e.Poll()
	got := c.take()
	want := []sent{{true, 9, 42}, {false, 9, 42}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("drum trigger: got %v, want %v", got, want)
	}

	// first beat: arp plays the root on channel 1
	clk.Set(501)
	e.Poll()
	got = c.take()
	if len(got) != 1 || got[0] != (sent{true, 0, 48}) {
		t.Fatalf("arp note on: got %v", got)
	}

	// gate expires; step 3 fires snare and closed hat
	clk.Set(752)
	e.Poll()
	var arpMsgs, drumMsgs []sent
	for _, m := range c.take() {
		if m.channel == 0 {
			arpMsgs = append(arpMsgs, m)
		} else {
			drumMsgs = append(drumMsgs, m)
		}
	}
	if len(arpMsgs) != 1 || arpMsgs[0] != (sent{false, 0, 48}) {
		t.Fatalf("arp note off: got %v", arpMsgs)
	}
	wantDrums := []sent{{true, 9, 38}, {false, 9, 38}, {true, 9, 42}, {false, 9, 42}}
	if len(drumMsgs) != len(wantDrums) {
		t.Fatalf("drums: got %v, want %v", drumMsgs, wantDrums)
	}
	for i := range wantDrums {
		if drumMsgs[i] != wantDrums[i] {
			t.Fatalf("drums: got %v, want %v", drumMsgs, wantDrums)
		}
	}

	s := e.Snapshot()
	if s.ArpStep != 1 || s.DrumStep != 3 || s.Beat != 2 {
		t.Fatalf("snapshot %+v", s)
	}
}

func TestToggleArpReleasesHeldNote(t *testing.T) {
	e, clk, c := newEngine(t)
	e.ToggleDrums()
	clk.Set(501)
	e.Poll()
	c.take()

	e.ToggleArp()
	got := c.take()
	if len(got) != 1 || got[0] != (sent{false, 0, 48}) {
		t.Fatalf("expected note off on disable, got %v", got)
	}
	clk.Set(5000)
	e.Poll()
	if got := c.take(); len(got) != 0 {
		t.Fatalf("events while stopped: %v", got)
	}
	if s := e.Snapshot(); s.ArpEnabled || s.DrumsEnabled || s.ArpStep != 1 {
		t.Fatalf("state after stop: %+v", s)
	}
}

func TestControlsUpdateConfig(t *testing.T) {
	e, _, _ := newEngine(t)
	e.AdjustTempo(500)
	e.NextArpPattern()
	e.NextDrumPattern()
	e.TransposeRoot(-100)
	e.CycleTransposeSteps()

	cfg := e.Config()
	if cfg.Tempo != config.MaxTempo {
		t.Errorf("tempo %v", cfg.Tempo)
	}
	if cfg.Arp.Pattern != 1 || cfg.Drums.Pattern != 1 {
		t.Errorf("patterns arp=%d drums=%d", cfg.Arp.Pattern, cfg.Drums.Pattern)
	}
	if cfg.Arp.Root != 0 {
		t.Errorf("root %d", cfg.Arp.Root)
	}
	if cfg.Arp.TransposeSteps != 2 {
		t.Errorf("transpose steps %d", cfg.Arp.TransposeSteps)
	}
	if cfg.Output.Port != "test" {
		t.Errorf("port %q", cfg.Output.Port)
	}

	e.CycleTransposeSteps()
	e.CycleTransposeSteps()
	if e.Snapshot().TransposeSteps != 1 {
		t.Errorf("transpose cycle did not wrap")
	}
}

func TestTogglePlay(t *testing.T) {
	e, _, _ := newEngine(t)
	e.TogglePlay()
	if s := e.Snapshot(); s.ArpEnabled || s.DrumsEnabled {
		t.Fatalf("still playing: %+v", s)
	}
	e.TogglePlay()
	if s := e.Snapshot(); !s.ArpEnabled || !s.DrumsEnabled {
		t.Fatalf("not playing: %+v", s)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	e, clk, _ := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	// drain any pending notification, then move time so Run emits
	select {
	case <-e.UpdateChan:
	default:
	}
	clk.Set(501)
	select {
	case <-e.UpdateChan:
	case <-time.After(2 * time.Second):
		t.Fatal("no update from Run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	if e.Snapshot().NoteOn {
		t.Fatal("note still held after Run returned")
	}
}
