package yamlevent

import "errors"

// ErrExhausted is returned by a SliceSource once every event has been
// consumed.
var ErrExhausted = errors.New("yamlevent: event stream exhausted")

// SliceSource is a Source backed by a fixed, in-memory event list: build
// an event list by hand and drive the decoder with it.
type SliceSource struct {
	events []Event
	pos    int
}

func NewSliceSource(events []Event) *SliceSource {
	return &SliceSource{events: events}
}

func (s *SliceSource) Peek() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, ErrExhausted
	}
	return s.events[s.pos], nil
}

func (s *SliceSource) Next() (Event, error) {
	ev, err := s.Peek()
	if err != nil {
		return Event{}, err
	}
	s.pos++
	return ev, nil
}

// SliceSink is a Sink that records every emitted event in order, the
// mirror image of SliceSource for asserting an encoder's output.
type SliceSink struct {
	Events []Event
}

func (s *SliceSink) Emit(ev Event) error {
	s.Events = append(s.Events, ev)
	return nil
}
