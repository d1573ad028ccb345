package sched

// EventKind classifies one entry in a run's event trace.
type EventKind int

const (
	EventAdmit EventKind = iota
	EventDispatch
	EventPreempt
	EventFinish
	EventIdle
)

func (k EventKind) String() string {
	switch k {
	case EventAdmit:
		return "Admit"
	case EventDispatch:
		return "Dispatch"
	case EventPreempt:
		return "Preempt"
	case EventFinish:
		return "Finish"
	case EventIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Event records one scheduling action at a point in simulated time.
// Slice is the execution slice granted on Dispatch, or the gap skipped on
// Idle. Vruntime is only meaningful for CFS runs: on Admit it is the seeded
// value, on Dispatch the selection key, on Preempt/Finish the value after
// the slice.
type Event struct {
	Clock    int64
	Kind     EventKind
	PID      int
	Slice    int64
	Vruntime int64
}

// Trace collects the events of a single discipline run in order.
type Trace struct {
	Events []Event
}

// Clocks returns the clock value of every event, in trace order.
func (tr *Trace) Clocks() []int64 {
	out := make([]int64, len(tr.Events))
	for i, ev := range tr.Events {
		out[i] = ev.Clock
	}
	return out
}

// Dispatches returns only the dispatch events, in trace order.
func (tr *Trace) Dispatches() []Event {
	var out []Event
	for _, ev := range tr.Events {
		if ev.Kind == EventDispatch {
			out = append(out, ev)
		}
	}
	return out
}
