package sched

// Task represents one schedulable unit of CPU-bound work.
// ArrivalTime, BurstTime and Weight are fixed at construction; the remaining
// fields are accumulated by whichever scheduling discipline currently owns
// the population and are zeroed again by Reset between runs.
type Task struct {
	PID         int   // display identity, not required to be unique
	ArrivalTime int64 // time unit the task becomes schedulable, >= 0
	BurstTime   int64 // total CPU time required, > 0
	Weight      int64 // niceness: larger = lower priority, > 0

	ExecTime       int64 // cumulative time executed so far
	WaitingTime    int64 // cumulative time spent ready but not running
	TurnaroundTime int64 // WaitingTime + ExecTime
	Vruntime       int64 // CFS fairness counter, grows by slice * Weight

	// position in the arrival-sorted population, assigned per run;
	// the final ordering tie-break for SJF and priority scheduling
	index int
}

// NewTask creates a task with zeroed simulation state.
func NewTask(pid int, arrival, burst, weight int64) *Task {
	return &Task{
		PID:         pid,
		ArrivalTime: arrival,
		BurstTime:   burst,
		Weight:      weight,
	}
}

// remaining returns the CPU time the task still needs.
func (t *Task) remaining() int64 {
	return t.BurstTime - t.ExecTime
}

// finished reports whether the task has received its full burst.
func (t *Task) finished() bool {
	return t.ExecTime >= t.BurstTime
}

// Reset zeroes the simulation state of every task so a population can be
// rerun under another discipline. Results across disciplines are only
// comparable when each run starts from a fresh reset.
func Reset(tasks []*Task) {
	for _, t := range tasks {
		t.ExecTime = 0
		t.WaitingTime = 0
		t.TurnaroundTime = 0
		t.Vruntime = 0
	}
}
