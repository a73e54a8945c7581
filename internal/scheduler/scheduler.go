package scheduler

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/gochip8/internal/types"
)

// Scheduler is a simple event scheduler that can be used to schedule events
// to be executed at a specific cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. Events scheduled for the same cycle execute in
// the order they were scheduled. When the scheduler is ticked, every event
// due at or before the current cycle is executed and removed from the list.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]*Event // only one event of each type can be scheduled at a time
}

func NewScheduler() *Scheduler {
	s := &Scheduler{}

	// one event per type, reused for every scheduling
	for i := range s.events {
		s.events[i] = &Event{eventType: EventType(i)}
	}

	return s
}

func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// RegisterEvent registers a function of the EventType to be called when
// the event is due.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by the given number of cycles, executing
// every event that has become due. Handlers may schedule events, which
// run in the same Tick if they are already due.
func (s *Scheduler) Tick(c uint64) {
	s.cycles += c

	for s.root != nil && s.root.cycle <= s.cycles {
		event := s.root
		s.root = event.next
		event.next = nil
		event.scheduled = false

		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}
}

// ScheduleEvent schedules an event to be executed the given number of
// cycles from now, replacing any pending event of the same type.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycles uint64) {
	s.scheduleAt(eventType, s.cycles+cycles)
}

// RescheduleEvent schedules an event the given number of cycles after
// the cycle it was last due at, so that periodic events do not drift
// when a Tick overshoots them.
func (s *Scheduler) RescheduleEvent(eventType EventType, cycles uint64) {
	s.scheduleAt(eventType, s.events[eventType].cycle+cycles)
}

func (s *Scheduler) scheduleAt(eventType EventType, atCycle uint64) {
	s.DescheduleEvent(eventType)

	this := s.events[eventType]
	this.cycle = atCycle
	this.scheduled = true

	if s.root == nil || atCycle < s.root.cycle {
		this.next = s.root
		s.root = this
		return
	}

	event := s.root
	for event.next != nil && event.next.cycle <= atCycle {
		event = event.next
	}
	this.next = event.next
	event.next = this
}

// DescheduleEvent removes a pending event of the given type.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	var prev *Event
	for event := s.root; event != nil; event = event.next {
		if event.eventType == eventType {
			if prev == nil {
				s.root = event.next
			} else {
				prev.next = event.next
			}
			event.next = nil
			event.scheduled = false
			return
		}
		prev = event
	}
}

// Until returns the number of cycles until the event is due, and
// false if the event is not scheduled.
func (s *Scheduler) Until(eventType EventType) (uint64, bool) {
	e := s.events[eventType]
	if !e.scheduled {
		return 0, false
	}
	if e.cycle <= s.cycles {
		return 0, true
	}
	return e.cycle - s.cycles, true
}

// Reset removes every pending event and rewinds the cycle counter.
func (s *Scheduler) Reset() {
	s.cycles = 0
	s.root = nil
	for _, e := range s.events {
		e.Reset()
	}
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%s:%d->", event.eventType, event.cycle)
	}
	return b.String()
}

var _ types.Stater = (*Scheduler)(nil)

// Load restores the cycle counter and every pending event.
func (s *Scheduler) Load(st *types.State) {
	s.Reset()
	s.cycles = uint64(st.Read32())<<32 | uint64(st.Read32())
	n := st.Read8()
	for i := uint8(0); i < n && st.Err() == nil; i++ {
		t := EventType(st.Read8())
		at := uint64(st.Read32())<<32 | uint64(st.Read32())
		if t < eventTypes {
			s.scheduleAt(t, at)
		}
	}
}

// Save saves the cycle counter and the pending events in order.
func (s *Scheduler) Save(st *types.State) {
	st.Write32(uint32(s.cycles >> 32))
	st.Write32(uint32(s.cycles))
	var n uint8
	for event := s.root; event != nil; event = event.next {
		n++
	}
	st.Write8(n)
	for event := s.root; event != nil; event = event.next {
		st.Write8(uint8(event.eventType))
		st.Write32(uint32(event.cycle >> 32))
		st.Write32(uint32(event.cycle))
	}
}
