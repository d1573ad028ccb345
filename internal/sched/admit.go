package sched

// admission walks the arrival-sorted population exactly once per run and is
// the only point where tasks enter a run queue. The population must be
// pre-sorted by arrival time; Schedule validates that before any loop runs.
type admission struct {
	tasks []*Task
	next  int
}

// admitUpTo hands every not-yet-admitted task whose arrival time is <= now
// to add, in arrival order. Waiting time is seeded with the time the task
// spent arrived before the scheduler noticed it; with an idle clock jump
// that is always 0, but the general form also covers tasks arriving during
// a long slice.
func (a *admission) admitUpTo(now int64, add func(t *Task)) {
	for a.next < len(a.tasks) && a.tasks[a.next].ArrivalTime <= now {
		t := a.tasks[a.next]
		t.WaitingTime = now - t.ArrivalTime
		t.TurnaroundTime = t.WaitingTime
		add(t)
		a.next++
	}
}

// exhausted reports whether every task has been admitted.
func (a *admission) exhausted() bool {
	return a.next >= len(a.tasks)
}

// nextArrival returns the arrival time of the next unadmitted task.
// Only valid while !exhausted().
func (a *admission) nextArrival() int64 {
	return a.tasks[a.next].ArrivalTime
}
