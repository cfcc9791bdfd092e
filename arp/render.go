package arp

import "lparp/midi"

// ClearBoard wipes every LED with the controller-wide reset message
func (a *Arp) ClearBoard() error {
	return a.grid.WriteEvent(midi.Event{Status: midi.StatusControl})
}

// RenderUI repaints the whole grid from state: clear, persistent
// indicators, tracker if visible, then every lit cell of the current
// page. Used at startup and on page switches only; steady-state
// updates are incremental. A fault mid-render leaves the grid
// inconsistent until the next repaint, which is idempotent.
func (a *Arp) RenderUI() error {
	if err := a.ClearBoard(); err != nil {
		return err
	}

	for _, btn := range []midi.Event{a.pageBtn, a.ppBtn, a.scaleBtn, a.octaveBtn} {
		if err := a.grid.WriteEvent(btn); err != nil {
			return err
		}
	}

	if a.tracker.InPage(a.page) {
		if err := a.grid.WriteEvent(a.tracker.ledOn()); err != nil {
			return err
		}
	}

	for c := 0; c < PageLen; c++ {
		col := a.pattern[int(a.page)*PageLen+c]
		if col.Degree == 0 {
			continue
		}
		err := a.grid.WriteEvent(midi.Event{Status: midi.StatusNote, Note: col.Note, Velocity: 127})
		if err != nil {
			return err
		}
	}
	return nil
}
