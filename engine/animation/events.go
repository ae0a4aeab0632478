package animation

// EventType names a mixer event.
type EventType string

const (
	// EventFinished fires once when a LoopOnce action (or a LoopRepeat action with a finite
	// repetition count) reaches its end.
	EventFinished EventType = "finished"

	// EventLoop fires each time a LoopRepeat action wraps around.
	EventLoop EventType = "loop"
)

// Event is delivered to mixer listeners after the update that raised it.
type Event struct {
	Type   EventType
	Action *Action

	// Direction is 1 when playing forward and -1 in reverse (finished events only).
	Direction int

	// LoopDelta is the number of wraps in this update (loop events only).
	LoopDelta int
}

// ListenerID identifies a registered listener for RemoveListener.
type ListenerID uint64

type listener struct {
	id        ListenerID
	eventType EventType
	fn        func(Event)
}
