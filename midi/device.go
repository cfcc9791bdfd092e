package midi

import (
	"fmt"
	"strings"
	"sync/atomic"

	"lparp/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

var sendCount uint64

// Device is a Transport backed by a pair of gomidi ports. The input
// side (optional - a plain synth output has none) is buffered by a
// listener callback and drained non-blocking by ReadEvents, so the
// control loop never waits on the wire.
type Device struct {
	name    string
	inPort  drivers.In
	outPort drivers.Out
	send    func(msg gomidi.Message) error
	stop    func()
	events  chan Event
}

// OpenDevice opens the first in/out port pair whose name contains the
// given substring (case-insensitive). A device with no matching input
// port is opened write-only; a missing output port is an error since
// every device we drive needs one.
func OpenDevice(name string) (*Device, error) {
	d := &Device{
		name:   name,
		events: make(chan Event, 1024),
	}

	want := strings.ToLower(name)
	for _, p := range gomidi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), want) {
			d.outPort = p
			break
		}
	}
	if d.outPort == nil {
		return nil, fmt.Errorf("no MIDI output port matching %q", name)
	}

	send, err := gomidi.SendTo(d.outPort)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", d.outPort.String(), err)
	}
	d.send = send

	for _, p := range gomidi.GetInPorts() {
		if strings.Contains(strings.ToLower(p.String()), want) {
			d.inPort = p
			break
		}
	}
	if d.inPort != nil {
		stop, err := gomidi.ListenTo(d.inPort, d.onMessage)
		if err != nil {
			return nil, fmt.Errorf("open input %q: %w", d.inPort.String(), err)
		}
		d.stop = stop
	}

	debug.Log("midi", "opened %q in=%v out=%v", name, d.inPort != nil, d.outPort != nil)
	return d, nil
}

// onMessage buffers incoming presses/releases. Events are dropped when
// the buffer is full rather than blocking the driver callback.
func (d *Device) onMessage(msg gomidi.Message, timestampms int32) {
	var channel, note, velocity uint8
	var cc, value uint8

	var evt Event
	switch {
	case msg.GetNoteOn(&channel, &note, &velocity):
		evt = Event{Status: StatusNote, Note: note, Velocity: velocity}
	case msg.GetNoteOff(&channel, &note, &velocity):
		// mk1 sends releases as note-off; fold them into velocity 0
		evt = Event{Status: StatusNote, Note: note, Velocity: 0}
	case msg.GetControlChange(&channel, &cc, &value):
		evt = Event{Status: StatusControl, Note: cc, Velocity: value}
	default:
		return
	}

	select {
	case d.events <- evt:
	default:
		debug.Log("midi", "input buffer full, dropping %02X %d", evt.Status, evt.Note)
	}
}

// ReadEvents drains up to max buffered events without blocking
func (d *Device) ReadEvents(max int) ([]Event, error) {
	var evts []Event
	for len(evts) < max {
		select {
		case e := <-d.events:
			evts = append(evts, e)
		default:
			return evts, nil
		}
	}
	return evts, nil
}

// WriteEvent sends one raw event to the device
func (d *Device) WriteEvent(e Event) error {
	var err error
	switch e.Status {
	case StatusNote:
		err = d.send(gomidi.NoteOn(0, e.Note, e.Velocity))
	case StatusControl:
		err = d.send(gomidi.ControlChange(0, e.Note, e.Velocity))
	default:
		return fmt.Errorf("unsupported status byte %02X", e.Status)
	}
	if err != nil {
		return fmt.Errorf("write to %q: %w", d.name, err)
	}
	if c := atomic.AddUint64(&sendCount, 1); c%1000 == 0 {
		debug.Log("midi", "%d messages sent", c)
	}
	return nil
}

// Close stops the input listener. The shared driver is closed by main.
func (d *Device) Close() {
	if d.stop != nil {
		d.stop()
	}
}

// ListPorts returns the names of all MIDI output ports
func ListPorts() (ins, outs []string) {
	for _, p := range gomidi.GetInPorts() {
		ins = append(ins, p.String())
	}
	for _, p := range gomidi.GetOutPorts() {
		outs = append(outs, p.String())
	}
	return ins, outs
}
