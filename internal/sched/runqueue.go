package sched

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// readySet is the container of admitted-but-unfinished tasks. The driving
// loop never calls pop or each when size is 0; doing so is a bug in the
// loop skeleton, and the tree-backed implementation panics on it.
type readySet interface {
	insert(t *Task)
	// pop removes and returns the next task to run under the active
	// ordering (minimum key, or queue head for FIFO).
	pop() *Task
	size() int
	// each applies fn to every task still in the set, in order. Called
	// after pop, so the running task is never visited.
	each(fn func(t *Task))
}

// rqKey is the lexicographic ordering key of a task in the run queue.
// The components are derived from the task at insertion time, never cached
// across reinsertion, because every discipline except FCFS keys on a field
// that changes between slices. seq is a per-queue insertion counter: it
// makes every key unique, and for CFS it resolves vruntime ties in
// insertion order.
type rqKey struct {
	primary   int64
	secondary int64
	tertiary  int64
	seq       int64
}

func rqCompare(a, b any) int {
	ka, kb := a.(rqKey), b.(rqKey)
	switch {
	case ka.primary != kb.primary:
		return cmpInt64(ka.primary, kb.primary)
	case ka.secondary != kb.secondary:
		return cmpInt64(ka.secondary, kb.secondary)
	case ka.tertiary != kb.tertiary:
		return cmpInt64(ka.tertiary, kb.tertiary)
	default:
		return cmpInt64(ka.seq, kb.seq)
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Ordering keys per discipline. SJF and priority break ties by arrival
// time, then by the task's position in the arrival-sorted population; CFS
// ties fall through to the insertion counter.

func byRemaining(t *Task) rqKey {
	return rqKey{primary: t.remaining(), secondary: t.ArrivalTime, tertiary: int64(t.index)}
}

func byWeight(t *Task) rqKey {
	return rqKey{primary: t.Weight, secondary: t.ArrivalTime, tertiary: int64(t.index)}
}

func byVruntime(t *Task) rqKey {
	return rqKey{primary: t.Vruntime}
}

// treeQueue is a run queue ordered by a red-black tree, keyed by keyOf.
// A task is removed and reinserted after every partial execution, so the
// key is recomputed on each insert.
type treeQueue struct {
	rbt   *redblacktree.Tree
	keyOf func(t *Task) rqKey
	seq   int64
}

func newTreeQueue(keyOf func(t *Task) rqKey) *treeQueue {
	return &treeQueue{
		rbt:   redblacktree.NewWith(rqCompare),
		keyOf: keyOf,
	}
}

func (q *treeQueue) insert(t *Task) {
	k := q.keyOf(t)
	k.seq = q.seq
	q.seq++
	q.rbt.Put(k, t)
}

func (q *treeQueue) pop() *Task {
	node := q.rbt.Left()
	if node == nil {
		panic("sched: pop from empty run queue")
	}
	q.rbt.Remove(node.Key)
	return node.Value.(*Task)
}

func (q *treeQueue) size() int {
	return q.rbt.Size()
}

func (q *treeQueue) each(fn func(t *Task)) {
	it := q.rbt.Iterator()
	for it.Next() {
		fn(it.Value().(*Task))
	}
}

// fifoQueue is the round-robin run queue: strict arrival/rotation order,
// no key. A preempted task goes to the back.
type fifoQueue struct {
	queue []*Task
}

func (q *fifoQueue) insert(t *Task) {
	q.queue = append(q.queue, t)
}

func (q *fifoQueue) pop() *Task {
	if len(q.queue) == 0 {
		panic("sched: pop from empty run queue")
	}
	t := q.queue[0]
	q.queue = q.queue[1:]
	return t
}

func (q *fifoQueue) size() int {
	return len(q.queue)
}

func (q *fifoQueue) each(fn func(t *Task)) {
	for _, t := range q.queue {
		fn(t)
	}
}
