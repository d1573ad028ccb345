package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(pid int, arrival, burst, weight int64) *Task {
	return NewTask(pid, arrival, burst, weight)
}

// waits returns pid -> final waiting time.
func waits(tasks []*Task) map[int]int64 {
	out := make(map[int]int64, len(tasks))
	for _, t := range tasks {
		out[t.PID] = t.WaitingTime
	}
	return out
}

func requireConservation(t *testing.T, tasks []*Task) {
	t.Helper()
	for _, tk := range tasks {
		require.Equal(t, tk.BurstTime, tk.ExecTime, "task %d: exec != burst", tk.PID)
		require.Equal(t, tk.TurnaroundTime, tk.WaitingTime+tk.ExecTime,
			"task %d: waiting + exec != turnaround", tk.PID)
	}
}

func TestFCFSWaitingTimes(t *testing.T) {
	tasks := []*Task{
		task(1, 0, 5, 1),
		task(2, 1, 3, 1),
		task(3, 2, 4, 1),
	}
	s := New(Config{Quantum: 200})
	require.NoError(t, s.Schedule(FCFS, tasks))

	w := waits(tasks)
	assert.Equal(t, int64(0), w[1])
	assert.Equal(t, int64(4), w[2])
	assert.Equal(t, int64(6), w[3])
	requireConservation(t, tasks)
}

func TestFCFSNeverPreempts(t *testing.T) {
	tasks := []*Task{
		task(1, 0, 7, 1),
		task(2, 0, 2, 1),
	}
	s := New(Config{Quantum: 200, TraceEvents: true})
	require.NoError(t, s.Schedule(FCFS, tasks))

	// one dispatch per task, each granted the full burst in a single step
	disp := s.Trace().Dispatches()
	require.Len(t, disp, 2)
	assert.Equal(t, int64(7), disp[0].Slice)
	assert.Equal(t, int64(2), disp[1].Slice)
}

func TestFCFSIdlesOverArrivalGap(t *testing.T) {
	tasks := []*Task{
		task(1, 0, 2, 1),
		task(2, 10, 3, 1),
	}
	s := New(Config{Quantum: 200, TraceEvents: true})
	require.NoError(t, s.Schedule(FCFS, tasks))

	w := waits(tasks)
	assert.Equal(t, int64(0), w[1])
	assert.Equal(t, int64(0), w[2], "waiting time must not go negative across a gap")

	var idled int64
	for _, ev := range s.Trace().Events {
		if ev.Kind == EventIdle {
			idled += ev.Slice
		}
	}
	assert.Equal(t, int64(8), idled)
	requireConservation(t, tasks)
}

func TestSJFShortestRemainingFirst(t *testing.T) {
	tasks := []*Task{
		task(1, 0, 8, 1),
		task(2, 1, 4, 1),
		task(3, 2, 9, 1),
		task(4, 3, 5, 1),
	}
	s := New(Config{Quantum: 1})
	require.NoError(t, s.Schedule(SJF, tasks))

	w := waits(tasks)
	assert.Equal(t, int64(9), w[1])
	assert.Equal(t, int64(0), w[2])
	assert.Equal(t, int64(15), w[3])
	assert.Equal(t, int64(2), w[4])
	requireConservation(t, tasks)
}

func TestPriorityLowestWeightFirst(t *testing.T) {
	tasks := []*Task{
		task(1, 0, 4, 3),
		task(2, 0, 3, 1),
		task(3, 0, 2, 2),
	}
	s := New(Config{Quantum: 2})
	require.NoError(t, s.Schedule(Priority, tasks))

	w := waits(tasks)
	assert.Equal(t, int64(0), w[2], "lowest weight runs first")
	assert.Equal(t, int64(3), w[3])
	assert.Equal(t, int64(5), w[1])
	requireConservation(t, tasks)
}

func TestRoundRobinRotation(t *testing.T) {
	tasks := []*Task{
		task(1, 0, 5, 1),
		task(2, 0, 4, 1),
		task(3, 0, 3, 1),
	}
	s := New(Config{Quantum: 2, TraceEvents: true})
	require.NoError(t, s.Schedule(RoundRobin, tasks))

	w := waits(tasks)
	assert.Equal(t, int64(7), w[1])
	assert.Equal(t, int64(6), w[2])
	assert.Equal(t, int64(8), w[3])
	requireConservation(t, tasks)

	var order []int
	for _, ev := range s.Trace().Dispatches() {
		order = append(order, ev.PID)
	}
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3, 1}, order)
}

func TestRoundRobinFairnessBound(t *testing.T) {
	// With N ready tasks and quantum Q, no task waits more than (N-1)*Q
	// between consecutive executions once all have arrived.
	const n, q = 4, 3
	var tasks []*Task
	for i := 1; i <= n; i++ {
		tasks = append(tasks, task(i, 0, 20, 1))
	}
	s := New(Config{Quantum: q, TraceEvents: true})
	require.NoError(t, s.Schedule(RoundRobin, tasks))

	lastEnd := make(map[int]int64)
	for _, ev := range s.Trace().Dispatches() {
		if end, ok := lastEnd[ev.PID]; ok {
			assert.LessOrEqual(t, ev.Clock-end, int64((n-1)*q),
				"task %d waited too long between slices", ev.PID)
		}
		lastEnd[ev.PID] = ev.Clock + ev.Slice
	}
}

func TestMonotonicClockAndSliceAccounting(t *testing.T) {
	tasks := []*Task{
		task(1, 0, 8, 2),
		task(2, 1, 4, 1),
		task(3, 2, 9, 3),
		task(4, 3, 5, 1),
	}
	s := New(Config{Quantum: 3, TraceEvents: true})

	for _, d := range Disciplines() {
		Reset(tasks)
		require.NoError(t, s.Schedule(d, tasks))

		clocks := s.Trace().Clocks()
		require.NotEmpty(t, clocks)
		for i := 1; i < len(clocks); i++ {
			assert.GreaterOrEqual(t, clocks[i], clocks[i-1],
				"%s: clock moved backwards", d)
		}

		// single core: execution slices plus idle gaps tile the run exactly
		var executed, idled int64
		for _, ev := range s.Trace().Events {
			switch ev.Kind {
			case EventDispatch:
				executed += ev.Slice
			case EventIdle:
				idled += ev.Slice
			}
		}
		first := clocks[0]
		last := clocks[len(clocks)-1]
		assert.Equal(t, last-first, executed+idled, "%s: slices do not tile the run", d)
	}
}

func TestConservationAcrossDisciplines(t *testing.T) {
	build := func() []*Task {
		return []*Task{
			task(1, 0, 13, 4),
			task(2, 2, 7, 1),
			task(3, 2, 21, 9),
			task(4, 5, 1, 2),
			task(5, 30, 6, 3),
			task(6, 31, 11, 5),
		}
	}
	for _, d := range Disciplines() {
		tasks := build()
		s := New(Config{Quantum: 4})
		require.NoError(t, s.Schedule(d, tasks), "%s", d)
		requireConservation(t, tasks)
	}
}

func TestResetRerunIsDeterministic(t *testing.T) {
	tasks := []*Task{
		task(1, 0, 13, 4),
		task(2, 2, 7, 1),
		task(3, 2, 21, 9),
		task(4, 5, 1, 2),
	}
	s := New(Config{Quantum: 5})

	for _, d := range Disciplines() {
		Reset(tasks)
		require.NoError(t, s.Schedule(d, tasks))
		first := waits(tasks)

		Reset(tasks)
		require.NoError(t, s.Schedule(d, tasks))
		assert.Equal(t, first, waits(tasks), "%s: rerun after reset diverged", d)
	}
}

func TestScheduleValidatesInput(t *testing.T) {
	s := New(Config{Quantum: 10})

	tests := []struct {
		name  string
		d     Discipline
		tasks []*Task
	}{
		{"empty population", CFS, nil},
		{"unsorted arrivals", SJF, []*Task{task(1, 5, 3, 1), task(2, 0, 3, 1)}},
		{"zero burst", RoundRobin, []*Task{task(1, 0, 0, 1)}},
		{"negative arrival", FCFS, []*Task{task(1, -1, 3, 1)}},
		{"zero weight", Priority, []*Task{task(1, 0, 3, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, s.Schedule(tt.d, tt.tasks))
		})
	}

	t.Run("zero quantum", func(t *testing.T) {
		bad := New(Config{Quantum: 0})
		assert.Error(t, bad.Schedule(RoundRobin, []*Task{task(1, 0, 3, 1)}))
		// FCFS does not use the quantum
		assert.NoError(t, bad.Schedule(FCFS, []*Task{task(1, 0, 3, 1)}))
	})
}

func TestParseDiscipline(t *testing.T) {
	for _, d := range Disciplines() {
		got, err := ParseDiscipline(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := ParseDiscipline("lottery")
	assert.Error(t, err)
}
