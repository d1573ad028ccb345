package sched

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Discipline selects one of the five scheduling algorithms.
type Discipline int

const (
	CFS Discipline = iota
	FCFS
	SJF
	Priority
	RoundRobin
)

func (d Discipline) String() string {
	switch d {
	case CFS:
		return "cfs"
	case FCFS:
		return "fcfs"
	case SJF:
		return "sjf"
	case Priority:
		return "priority"
	case RoundRobin:
		return "rr"
	default:
		return "unknown"
	}
}

// Disciplines lists every supported discipline in reporting order.
func Disciplines() []Discipline {
	return []Discipline{CFS, FCFS, SJF, Priority, RoundRobin}
}

// ParseDiscipline maps a CLI/config name to a Discipline.
func ParseDiscipline(name string) (Discipline, error) {
	for _, d := range Disciplines() {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown scheduling discipline %q", name)
}

// Scheduler runs scheduling disciplines over a task population, mutating
// the tasks in place. It is not safe for concurrent use; disciplines are
// run strictly sequentially, each against a freshly Reset population.
type Scheduler struct {
	quantum int64
	trace   *Trace
}

// New creates a Scheduler from a validated-and-clamped Config.
func New(cfg Config) *Scheduler {
	s := &Scheduler{quantum: cfg.Quantum}
	if cfg.TraceEvents {
		s.trace = &Trace{}
	}
	return s
}

// EnableTrace turns on event recording for subsequent runs.
func (s *Scheduler) EnableTrace() {
	if s.trace == nil {
		s.trace = &Trace{}
	}
}

// Trace returns the event trace of the most recent run, or nil when
// tracing is disabled.
func (s *Scheduler) Trace() *Trace {
	return s.trace
}

// Schedule runs one discipline to completion over tasks. On return every
// task has ExecTime == BurstTime and WaitingTime/TurnaroundTime populated.
// The input must be sorted by arrival time with positive bursts and
// weights; violations are reported as errors before any task is mutated.
func (s *Scheduler) Schedule(d Discipline, tasks []*Task) error {
	if err := validate(d, tasks, s.quantum); err != nil {
		return err
	}
	for i, t := range tasks {
		t.index = i
	}
	if s.trace != nil {
		s.trace.Events = s.trace.Events[:0]
	}

	log.WithFields(log.Fields{
		"discipline": d.String(),
		"tasks":      len(tasks),
		"quantum":    s.quantum,
	}).Debug("scheduling run start")

	switch d {
	case FCFS:
		s.fcfs(tasks)
	case SJF:
		s.preemptive(tasks, newTreeQueue(byRemaining))
	case Priority:
		s.preemptive(tasks, newTreeQueue(byWeight))
	case RoundRobin:
		s.preemptive(tasks, &fifoQueue{})
	case CFS:
		s.cfs(tasks)
	default:
		return fmt.Errorf("unknown scheduling discipline %d", d)
	}

	log.WithField("discipline", d.String()).Debug("scheduling run complete")
	return nil
}

func validate(d Discipline, tasks []*Task, quantum int64) error {
	if len(tasks) == 0 {
		return fmt.Errorf("%s: empty task population", d)
	}
	if d != FCFS && quantum <= 0 {
		return fmt.Errorf("%s: quantum must be positive, got %d", d, quantum)
	}
	for i, t := range tasks {
		if t.ArrivalTime < 0 {
			return fmt.Errorf("%s: task %d: arrival time must be non-negative, got %d", d, t.PID, t.ArrivalTime)
		}
		if t.BurstTime <= 0 {
			return fmt.Errorf("%s: task %d: burst time must be positive, got %d", d, t.PID, t.BurstTime)
		}
		if t.Weight <= 0 {
			return fmt.Errorf("%s: task %d: weight must be positive, got %d", d, t.PID, t.Weight)
		}
		if i > 0 && t.ArrivalTime < tasks[i-1].ArrivalTime {
			return fmt.Errorf("%s: tasks not sorted by arrival time at index %d", d, i)
		}
	}
	return nil
}

func (s *Scheduler) record(ev Event) {
	if s.trace != nil {
		s.trace.Events = append(s.trace.Events, ev)
	}
	log.WithFields(log.Fields{
		"clock":    ev.Clock,
		"event":    ev.Kind.String(),
		"pid":      ev.PID,
		"slice":    ev.Slice,
		"vruntime": ev.Vruntime,
	}).Trace("scheduler event")
}

// fcfs runs every task to completion in arrival order. The clock idles
// forward over arrival gaps, so waiting time never goes negative.
func (s *Scheduler) fcfs(tasks []*Task) {
	c := newClock(tasks[0].ArrivalTime)
	for _, t := range tasks {
		if t.ArrivalTime > c.Now() {
			s.record(Event{Clock: c.Now(), Kind: EventIdle, Slice: t.ArrivalTime - c.Now()})
			c.JumpTo(t.ArrivalTime)
		}
		t.WaitingTime = c.Now() - t.ArrivalTime
		s.record(Event{Clock: c.Now(), Kind: EventDispatch, PID: t.PID, Slice: t.BurstTime})
		t.ExecTime = t.BurstTime
		t.TurnaroundTime = t.WaitingTime + t.BurstTime
		c.Advance(t.BurstTime)
		s.record(Event{Clock: c.Now(), Kind: EventFinish, PID: t.PID})
	}
}

// preemptive is the shared quantum-driven loop for SJF, priority and round
// robin. Each iteration admits arrivals, pops the front of the run queue,
// executes it for min(quantum, remaining) and accrues that slice as waiting
// time on every other ready task. An unfinished task is reinserted under
// its recomputed key; for the FIFO queue this puts it behind tasks that
// arrived during its slice.
func (s *Scheduler) preemptive(tasks []*Task, rq readySet) {
	arrivals := &admission{tasks: tasks}
	c := newClock(tasks[0].ArrivalTime)
	admit := func(t *Task) {
		rq.insert(t)
		s.record(Event{Clock: c.Now(), Kind: EventAdmit, PID: t.PID})
	}

	for {
		arrivals.admitUpTo(c.Now(), admit)
		if rq.size() == 0 {
			if arrivals.exhausted() {
				return
			}
			next := arrivals.nextArrival()
			s.record(Event{Clock: c.Now(), Kind: EventIdle, Slice: next - c.Now()})
			c.JumpTo(next)
			continue
		}

		t := rq.pop()
		slice := min(s.quantum, t.remaining())
		s.record(Event{Clock: c.Now(), Kind: EventDispatch, PID: t.PID, Slice: slice})

		rq.each(func(o *Task) {
			o.WaitingTime += slice
			o.TurnaroundTime += slice
		})
		t.ExecTime += slice
		t.TurnaroundTime += slice
		c.Advance(slice)

		if t.finished() {
			s.record(Event{Clock: c.Now(), Kind: EventFinish, PID: t.PID})
		} else {
			rq.insert(t)
			s.record(Event{Clock: c.Now(), Kind: EventPreempt, PID: t.PID})
		}
	}
}
