package driver

// Status is the lifecycle of one file inside a bulk format run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusChanged
	StatusError
)

// Event is one progress notification from the bulk formatter.
type Event struct {
	File   string
	Status Status
}

// EventSink receives progress events. Implementations must be safe for
// concurrent use; the driver formats files in parallel.
type EventSink interface {
	Send(Event)
}

// ChannelSink forwards events into a channel (the TUI consumes it).
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) Send(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

func notify(sink EventSink, ev Event) {
	if sink != nil {
		sink.Send(ev)
	}
}
