package host

import "sort"

// TaskID identifies a posted callback. The zero value never names a task.
type TaskID uint64

// Scheduler posts delayed one-shot callbacks onto a single-threaded queue.
type Scheduler interface {
	Post(delayMs int64, fn func()) TaskID
	Cancel(id TaskID)
}

type task struct {
	id  TaskID
	due int64
	seq uint64
	fn  func()
}

// Looper is a Scheduler whose tasks run only when RunDue is called.
type Looper struct {
	clock Clock
	tasks map[TaskID]*task
	next  TaskID
	seq   uint64
}

func NewLooper(clock Clock) *Looper {
	return &Looper{
		clock: clock,
		tasks: make(map[TaskID]*task),
	}
}

func (l *Looper) Post(delayMs int64, fn func()) TaskID {
	if delayMs < 0 {
		delayMs = 0
	}
	l.next++
	l.seq++
	l.tasks[l.next] = &task{
		id:  l.next,
		due: l.clock.NowMillis() + delayMs,
		seq: l.seq,
		fn:  fn,
	}
	return l.next
}

// Cancel removes a pending task. Unknown or already-run ids are ignored.
func (l *Looper) Cancel(id TaskID) {
	delete(l.tasks, id)
}

// RunDue runs every task due at the current clock time, earliest first and
// FIFO among equal deadlines, and returns how many ran. Tasks posted by a
// running task wait for the next call even if already due.
func (l *Looper) RunDue() int {
	now := l.clock.NowMillis()
	due := make([]*task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if t.due <= now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})

	ran := 0
	for _, t := range due {
		// an earlier task in this batch may have cancelled it
		if _, ok := l.tasks[t.id]; !ok {
			continue
		}
		delete(l.tasks, t.id)
		t.fn()
		ran++
	}
	return ran
}

func (l *Looper) Pending() int {
	return len(l.tasks)
}

// NextDue returns the earliest deadline among pending tasks.
func (l *Looper) NextDue() (int64, bool) {
	var best int64
	found := false
	for _, t := range l.tasks {
		if !found || t.due < best {
			best, found = t.due, true
		}
	}
	return best, found
}

func (l *Looper) Clear() {
	l.tasks = make(map[TaskID]*task)
}
