package sched

// cfs is the completely fair scheduling loop. It differs from the shared
// preemptive skeleton in three ways: the run queue is ordered by vruntime,
// the slice is floor(quantum / ready-count) recomputed on every iteration,
// and a newly admitted task's vruntime is seeded from the vruntime of the
// most recently selected task rather than 0, so late arrivals do not
// leapfrog tasks that have been running all along.
//
// The seed is the tracked value from the last selection, not the current
// tree minimum: if the run queue drains and a task arrives during the idle
// gap, it still inherits the last selected vruntime. That is the literal
// behavior of the classic formulation and is pinned down by a test.
func (s *Scheduler) cfs(tasks []*Task) {
	rq := newTreeQueue(byVruntime)
	arrivals := &admission{tasks: tasks}
	c := newClock(tasks[0].ArrivalTime)

	var minVruntime int64
	admit := func(t *Task) {
		t.Vruntime = minVruntime
		rq.insert(t)
		s.record(Event{Clock: c.Now(), Kind: EventAdmit, PID: t.PID, Vruntime: t.Vruntime})
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

		// Dynamic slice, recomputed from the current ready count with the
		// running candidate still in the queue. Clamped to 1 so the clock
		// always advances even when ready count exceeds the quantum.
		slice := s.quantum / int64(rq.size())
		if slice < 1 {
			slice = 1
		}

		t := rq.pop()
		minVruntime = t.Vruntime
		run := min(slice, t.remaining())
		s.record(Event{Clock: c.Now(), Kind: EventDispatch, PID: t.PID, Slice: run, Vruntime: t.Vruntime})

		rq.each(func(o *Task) {
			o.WaitingTime += run
			o.TurnaroundTime += run
		})
		t.ExecTime += run
		t.TurnaroundTime += run
		c.Advance(run)

		// The old vruntime was the selection key; the new one only takes
		// effect once the slice is over. Lower weight grows slower and is
		// rescheduled sooner.
		t.Vruntime = minVruntime + run*t.Weight

		if t.finished() {
			s.record(Event{Clock: c.Now(), Kind: EventFinish, PID: t.PID, Vruntime: t.Vruntime})
		} else {
			rq.insert(t)
			s.record(Event{Clock: c.Now(), Kind: EventPreempt, PID: t.PID, Vruntime: t.Vruntime})
		}
	}
}
