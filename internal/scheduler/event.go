package scheduler

type EventType uint8

const (
	// TimerTick decrements the delay and sound timers.
	TimerTick EventType = iota
	// FrameEnd marks the end of a 60Hz display frame.
	FrameEnd

	eventTypes
)

func (t EventType) String() string {
	switch t {
	case TimerTick:
		return "TimerTick"
	case FrameEnd:
		return "FrameEnd"
	}
	return "Unknown"
}

type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event
}

func (e *Event) Reset() {
	e.cycle = 0
	e.scheduled = false
	e.next = nil
}
