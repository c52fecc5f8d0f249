package midi

import (
	"fmt"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Sender writes one MIDI message, as returned by gomidi.SendTo
type Sender func(msg gomidi.Message) error

// Port is an open MIDI output
type Port struct {
	name string
	mu   sync.Mutex
	send Sender
}

// NewPort wraps an existing sender
func NewPort(name string, send Sender) *Port {
	return &Port{name: name, send: send}
}

// OpenPort finds an output port by name and opens it
func OpenPort(name string) (*Port, error) {
	out, err := findOutPort(name)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("open port %q: %w", name, err)
	}
	return NewPort(name, send), nil
}

func findOutPort(name string) (drivers.Out, error) {
	for _, port := range gomidi.GetOutPorts() {
		if port.String() == name {
			return port, nil
		}
	}
	return nil, fmt.Errorf("no output port named %q", name)
}

func (p *Port) Name() string { return p.name }

// Send writes e to the port. Events with no channel go to channel 1.
func (p *Port) Send(e Event) error {
	if p == nil || p.send == nil {
		return nil
	}
	ch := e.Channel
	if ch > 0 {
		ch-- // gomidi channels are 0-based
	}
	vel := e.Velocity
	if vel == 0 {
		vel = DefaultVelocity
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	switch e.Type {
	case NoteOn:
		err = p.send(gomidi.NoteOn(ch, e.Note, vel))
	case NoteOff:
		err = p.send(gomidi.NoteOff(ch, e.Note))
	case Trigger:
		if err = p.send(gomidi.NoteOn(ch, e.Note, vel)); err == nil {
			err = p.send(gomidi.NoteOff(ch, e.Note))
		}
	default:
		return fmt.Errorf("unknown event type 0x%02x", e.Type)
	}
	if err != nil {
		return fmt.Errorf("send to %s: %w", p.name, err)
	}
	return nil
}

// ListOutPorts returns output port names. CoreMIDI can hang, so the
// lookup is abandoned after timeout.
func ListOutPorts(timeout time.Duration) ([]string, error) {
	ch := make(chan []string, 1)
	go func() {
		ch <- outPortNames()
	}()

	select {
	case names := <-ch:
		return names, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("listing MIDI ports timed out after %v", timeout)
	}
}

func outPortNames() []string {
	outs := gomidi.GetOutPorts()
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names
}

// CloseDriver releases the registered MIDI driver
func CloseDriver() {
	gomidi.CloseDriver()
}
