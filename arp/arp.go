package arp

import (
	"sync/atomic"

	"lparp/debug"
	"lparp/midi"
)

// inputBatch bounds how many buffered events one CheckInputs drains
const inputBatch = 1024

// Arp owns the full controller state: the 32-column pattern, the UI
// mode (page, play state, scale, octave) and the sweep tracker. All
// mutation happens on the single control loop goroutine; handlers
// mutate state first and write LEDs after, so a transport fault can
// leave an LED stale but never desyncs the logical state.
type Arp struct {
	synth midi.Transport // note output
	grid  midi.Transport // controller in/out
	sched *Scheduler

	running  bool
	playing  bool
	page     uint8 // 0-3, selects the visible 8-column window
	playhead int   // 0-31, column currently sonified
	pattern  [PatternLen]Column
	scale    Scale
	octave   uint8
	bpm      int
	tracker  Tracker

	// persistent indicator LEDs, carried as ready-to-send messages
	pageBtn   midi.Event
	ppBtn     midi.Event
	scaleBtn  midi.Event
	octaveBtn midi.Event

	stopReq atomic.Bool

	// Updates carries state snapshots for the TUI mirror
	Updates chan Snapshot
}

// New builds an arp around the two transports. The synth transport
// carries outgoing notes; the grid transport is the button/LED device.
func New(synth, grid midi.Transport, bpm int) *Arp {
	a := &Arp{
		synth:   synth,
		grid:    grid,
		sched:   NewScheduler(),
		running: true,
		octave:  5,
		bpm:     bpm,
		tracker: NewTracker(),
		Updates: make(chan Snapshot, 1),

		pageBtn:  midi.Event{Status: midi.StatusControl, Note: midi.ControlBase, Velocity: 127},
		ppBtn:    midi.Event{Status: midi.StatusControl, Note: midi.ControlBase + 4, Velocity: midi.Color(3, 0)},
		scaleBtn: midi.Event{Status: midi.StatusControl, Note: midi.ControlBase + 6, Velocity: midi.Color(1, 3)},
	}
	a.octaveBtn = midi.Event{Status: midi.StatusNote, Note: octaveNote(a.octave), Velocity: 127}
	return a
}

// octaveNote is the scene-strip LED for an octave value
func octaveNote(octave uint8) uint8 {
	return midi.PadNote(8, 7-octave)
}

// Scheduler exposes the tick clock for job registration
func (a *Arp) Scheduler() *Scheduler {
	return a.sched
}

// RequestStop asks the control loop to exit at its next cycle. Safe to
// call from other goroutines (the TUI); everything else is not.
func (a *Arp) RequestStop() {
	a.stopReq.Store(true)
}

// Run alternates due-queue drain and tick-advance until quit. The
// returned error is a transport fault; nil means a clean quit.
func (a *Arp) Run() error {
	for a.running && !a.stopReq.Load() {
		if err := a.drain(); err != nil {
			return err
		}
		a.sched.Tick()
		a.publish()
		debug.Every(4096, "loop", "playhead=%d playing=%v page=%d", a.playhead, a.playing, a.page)
	}
	return nil
}

// drain consumes every due job for this cycle. UpdateState and
// FlushNotes only act while playing; CheckInputs and Quit always run.
func (a *Arp) drain() error {
	if !a.sched.HasDue() {
		return nil
	}
	return a.sched.Drain(func(m Msg) error {
		switch {
		case m == MsgQuit:
			return a.quit()
		case m == MsgCheckInputs:
			return a.checkInputs()
		case m == MsgUpdateState && a.playing:
			return a.updateState()
		case m == MsgFlushNotes && a.playing:
			return a.flushNotes()
		}
		return nil
	})
}

// checkInputs routes every buffered event through the state machine in
// arrival order. Velocity 0 is a key release and is skipped before any
// dispatch; only full-velocity presses mutate state.
func (a *Arp) checkInputs() error {
	evts, err := a.grid.ReadEvents(inputBatch)
	if err != nil {
		return err
	}
	for _, e := range evts {
		if e.Velocity == 0 {
			continue
		}
		switch e.Kind() {
		case midi.KindControlRow:
			if err := a.controlRow(e.Note); err != nil {
				return err
			}
		case midi.KindGridCell:
			if err := a.gridPad(e.Note); err != nil {
				return err
			}
		}
	}
	return nil
}

// controlRow dispatches the eight top-row buttons: 0-3 select the page,
// then pause, play, scale toggle, quit.
func (a *Arp) controlRow(note uint8) error {
	if note < midi.ControlBase {
		return nil
	}
	switch idx := note - midi.ControlBase; idx {
	case 0, 1, 2, 3:
		if idx == a.page {
			return nil
		}
		a.page = idx
		a.pageBtn.Note = note
		debug.Log("arp", "page -> %d", idx)
		return a.RenderUI()
	case 4:
		return a.pause()
	case 5:
		return a.play()
	case 6:
		return a.invertScale()
	case 7:
		return a.quit()
	}
	return nil
}

// gridPad handles a press inside the 8x9 grid. Column 8 is the octave
// strip; columns 0-7 set the pattern degree for the pressed column on
// the current page, with row 7 (the bottom) meaning silence.
func (a *Arp) gridPad(note uint8) error {
	x, y, ok := midi.PadXY(note)
	if !ok {
		return nil
	}

	if x == 8 {
		prev := a.octaveBtn.Note
		a.octave = 7 - y
		a.octaveBtn.Note = note
		if err := a.grid.WriteEvent(midi.Event{Status: midi.StatusNote, Note: prev}); err != nil {
			return err
		}
		return a.grid.WriteEvent(a.octaveBtn)
	}

	offset := int(a.page)*PageLen + int(x)
	degree := 7 - y // higher rows sit higher on the device

	col := &a.pattern[offset]
	if col.Degree == degree {
		return nil
	}
	oldDegree, oldNote := col.Degree, col.Note
	col.Degree = degree
	col.Note = note

	if oldDegree != 0 {
		if err := a.grid.WriteEvent(midi.Event{Status: midi.StatusNote, Note: oldNote}); err != nil {
			return err
		}
	}
	if degree != 0 {
		return a.grid.WriteEvent(midi.Event{Status: midi.StatusNote, Note: note, Velocity: 127})
	}
	return nil
}

// play switches playback on and swaps the play/pause LED to green.
// A no-op while already playing.
func (a *Arp) play() error {
	if a.playing {
		return nil
	}
	a.playing = true
	off := a.ppBtn.Note
	a.ppBtn.Note = midi.ControlBase + 5
	a.ppBtn.Velocity = midi.Color(0, 3)
	if err := a.grid.WriteEvent(midi.Event{Status: midi.StatusControl, Note: off}); err != nil {
		return err
	}
	return a.grid.WriteEvent(a.ppBtn)
}

// pause is the inverse of play: red LED on the pause button
func (a *Arp) pause() error {
	if !a.playing {
		return nil
	}
	a.playing = false
	off := a.ppBtn.Note
	a.ppBtn.Note = midi.ControlBase + 4
	a.ppBtn.Velocity = midi.Color(3, 0)
	if err := a.grid.WriteEvent(midi.Event{Status: midi.StatusControl, Note: off}); err != nil {
		return err
	}
	return a.grid.WriteEvent(a.ppBtn)
}

// invertScale toggles Major/Minor and recolors the scale indicator
func (a *Arp) invertScale() error {
	if a.scale == ScaleMajor {
		a.scale = ScaleMinor
		a.scaleBtn.Velocity = midi.Color(3, 1)
	} else {
		a.scale = ScaleMajor
		a.scaleBtn.Velocity = midi.Color(1, 3)
	}
	return a.grid.WriteEvent(a.scaleBtn)
}

// quit stops the control loop after the current drain finishes
func (a *Arp) quit() error {
	debug.Log("arp", "quit requested")
	a.running = false
	return nil
}

// updateState advances the playhead and sweeps the tracker LED. Only
// invoked while playing, so pausing freezes both together.
func (a *Arp) updateState() error {
	a.playhead = (a.playhead + 1) % PatternLen

	prev := a.tracker.Note
	a.tracker.Advance()
	a.tracker.MoveRight()

	if err := a.grid.WriteEvent(midi.Event{Status: midi.StatusNote, Note: prev}); err != nil {
		return err
	}
	if a.tracker.InPage(a.page) {
		return a.grid.WriteEvent(a.tracker.ledOn())
	}
	return nil
}

// flushNotes sonifies the playhead column: quantize the degree through
// the active scale, shift by the octave, send note-on. No note-off is
// ever sent; sustain is the receiving synth's concern.
func (a *Arp) flushNotes() error {
	col := a.pattern[a.playhead]
	if col.Degree == 0 {
		return nil
	}
	offset, ok := ScaleNote(col.Degree, a.scale)
	if !ok {
		return nil
	}
	return a.synth.WriteEvent(midi.Event{
		Status:   midi.StatusNote,
		Note:     offset + a.octave*12,
		Velocity: 127,
	})
}

// publish hands the TUI a fresh snapshot, dropping it if the previous
// one hasn't been consumed yet
func (a *Arp) publish() {
	select {
	case a.Updates <- a.snapshot():
	default:
	}
}
