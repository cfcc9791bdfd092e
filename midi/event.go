package midi

// MIDI status bytes used by the Launchpad mk1 protocol
const (
	StatusControl uint8 = 0xB0 // control row buttons / board-wide LED commands
	StatusNote    uint8 = 0x90 // grid pads / single LED updates
)

// Event is one raw message on the hardware channel
type Event struct {
	Status   uint8
	Note     uint8
	Velocity uint8
}

// EventKind classifies an event once at the transport boundary
type EventKind int

const (
	KindUnknown EventKind = iota
	KindControlRow
	KindGridCell
)

// Kind maps the status byte to its event class
func (e Event) Kind() EventKind {
	switch e.Status {
	case StatusControl:
		return KindControlRow
	case StatusNote:
		return KindGridCell
	}
	return KindUnknown
}

// Transport is the boundary to the hardware I/O layer.
// ReadEvents is a non-blocking poll returning up to max buffered events.
// Any error from either side is a transport fault: the device is gone
// and the caller should shut down.
type Transport interface {
	ReadEvents(max int) ([]Event, error)
	WriteEvent(e Event) error
}
