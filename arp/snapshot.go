package arp

// Snapshot is an immutable copy of the visible state, published after
// every cycle for the TUI mirror. The TUI never touches the live Arp.
type Snapshot struct {
	Playing  bool
	Page     uint8
	Scale    Scale
	Octave   uint8
	BPM      int
	Playhead int
	Tracker  uint8 // absolute tracker column
	Pattern  [PatternLen]Column
}

func (a *Arp) snapshot() Snapshot {
	return Snapshot{
		Playing:  a.playing,
		Page:     a.page,
		Scale:    a.scale,
		Octave:   a.octave,
		BPM:      a.bpm,
		Playhead: a.playhead,
		Tracker:  a.tracker.Index,
		Pattern:  a.pattern,
	}
}

// PageWindow returns the 8 columns visible on the snapshot's page
func (s Snapshot) PageWindow() [PageLen]Column {
	var w [PageLen]Column
	copy(w[:], s.Pattern[int(s.Page)*PageLen:int(s.Page)*PageLen+PageLen])
	return w
}

// TrackerVisible reports whether the sweep LED falls inside the page
func (s Snapshot) TrackerVisible() bool {
	min := s.Page * PageLen
	return min <= s.Tracker && s.Tracker <= min+PageLen-1
}
