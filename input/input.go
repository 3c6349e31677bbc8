// Package input models the per-frame input consumed by the locomotion and
// viewpoint cores: held keys, a pointer look delta and discrete events.
package input

// Keys holds the current-frame held state of the movement keys.
type Keys struct {
	Forward     bool `csv:"forward"`
	Backward    bool `csv:"backward"`
	StrafeLeft  bool `csv:"left"`
	StrafeRight bool `csv:"right"`
	Boost       bool `csv:"boost"`
}

// AnyDirectional reports whether any of the four movement keys is held.
// Boost alone does not move the character.
func (k Keys) AnyDirectional() bool {
	return k.Forward || k.Backward || k.StrafeLeft || k.StrafeRight
}

// Pointer is the look delta accumulated during the current frame.
type Pointer struct {
	DX float64 `csv:"look_dx"`
	DY float64 `csv:"look_dy"`
}

// Event is a discrete input event.
type Event uint8

const (
	EventNone Event = iota
	EventToggleCameraMode
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventToggleCameraMode:
		return "toggle_camera_mode"
	}
	return "unknown"
}

// Queue buffers discrete events until the consumer drains them.
// Each pushed event is returned by exactly one Drain call.
type Queue struct {
	events []Event
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns all pending events in push order and empties the queue.
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// State is the input source for one simulation driver.
// The cores only read Keys and Pointer and drain Events.
type State struct {
	keys    Keys
	pointer Pointer
	events  Queue
}

// Keys returns the held keys for the current frame.
func (s *State) Keys() Keys {
	return s.keys
}

// SetKeys replaces the held keys.
func (s *State) SetKeys(k Keys) {
	s.keys = k
}

// Pointer returns the look delta for the current frame.
func (s *State) Pointer() Pointer {
	return s.pointer
}

// SetPointer replaces the look delta.
func (s *State) SetPointer(p Pointer) {
	s.pointer = p
}

// Emit queues a discrete event.
func (s *State) Emit(e Event) {
	s.events.Push(e)
}

// Drain returns and clears pending events.
func (s *State) Drain() []Event {
	return s.events.Drain()
}
