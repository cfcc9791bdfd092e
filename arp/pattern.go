package arp

import "lparp/midi"

// Scale selects one of the two built-in heptatonic scales
type Scale uint8

const (
	ScaleMajor Scale = iota
	ScaleMinor
)

func (s Scale) String() string {
	if s == ScaleMinor {
		return "minor"
	}
	return "major"
}

// Semitone offsets from the octave base.
// Major: C D E F G A B
// Minor: C D Eb F G Ab Bb
var (
	majorScale = [7]uint8{0, 2, 4, 5, 7, 9, 11}
	minorScale = [7]uint8{0, 2, 3, 5, 7, 8, 10}
)

// ScaleNote quantizes a degree through the scale table to a semitone
// offset. Degree 0 is silence and degree 7 has no table entry; both
// report no note.
func ScaleNote(degree uint8, scale Scale) (uint8, bool) {
	if degree < 1 || degree > 6 {
		return 0, false
	}
	if scale == ScaleMinor {
		return minorScale[degree], true
	}
	return majorScale[degree], true
}

// PatternLen is the full width of the pattern; PageLen columns of it
// are visible at a time.
const (
	PatternLen = 32
	PageLen    = 8
)

// Column is one step of the pattern. Degree and Note are written
// together: Note remembers which pad is lit so the LED can be turned
// off when the degree changes, even after Degree drops to 0.
type Column struct {
	Degree uint8 // 0 = silent, 1-7 = scale step
	Note   uint8 // hardware note id of the lit pad
}

// Tracker is the sweep LED showing real-time position along the bottom
// row. Index follows the pattern columns; Note is the LED coordinate
// and wraps on its own modulus (the 8 pads of the visible row), so the
// two counters move at different rates on purpose.
type Tracker struct {
	Index uint8 // absolute pattern column, 0-31
	Note  uint8 // bottom-row LED note, 112-119
}

// trackerRow is the first note of the bottom grid row
const trackerRow uint8 = 112

func NewTracker() Tracker {
	return Tracker{Note: trackerRow}
}

// Advance moves the index one column forward, wrapping at the pattern end
func (t *Tracker) Advance() {
	t.Index++
	if t.Index == PatternLen {
		t.Index = 0
	}
}

// MoveRight slides the LED one pad to the right, wrapping within the row
func (t *Tracker) MoveRight() {
	t.Note++
	if t.Note == trackerRow+PageLen {
		t.Note = trackerRow
	}
}

// InPage reports whether the index falls inside the given page's window
func (t *Tracker) InPage(page uint8) bool {
	min := page * PageLen
	return min <= t.Index && t.Index <= min+PageLen-1
}

func (t *Tracker) ledOn() midi.Event {
	return midi.Event{Status: midi.StatusNote, Note: t.Note, Velocity: 127}
}
