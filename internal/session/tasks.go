package session

// deferredTask is a delayed side effect scheduled against the session
// tick counter. Tasks carry the generation they were scheduled under;
// a rebuild or menu reset bumps the generation, which silently drops
// any task still in flight. The task body must still re-check live
// state before acting, since the world can change between scheduling
// and firing even within one generation.
type deferredTask struct {
	due        uint64
	generation uint64
	fn         func()
}

type taskScheduler struct {
	pending []deferredTask
}

// schedule queues fn to run delay ticks after now, guarded by gen.
func (s *taskScheduler) schedule(now uint64, delay int, gen uint64, fn func()) {
	s.pending = append(s.pending, deferredTask{
		due:        now + uint64(delay),
		generation: gen,
		fn:         fn,
	})
}

// run fires every due task whose generation matches gen and drops
// stale ones. Tasks scheduled from within a firing task run on a
// later tick, never recursively.
func (s *taskScheduler) run(now uint64, gen uint64) {
	var due []func()
	remaining := s.pending[:0]
	for _, t := range s.pending {
		switch {
		case t.generation != gen:
			// Stale: scheduled before a rebuild or reset.
		case t.due <= now:
			due = append(due, t.fn)
		default:
			remaining = append(remaining, t)
		}
	}
	s.pending = remaining
	for _, fn := range due {
		fn()
	}
}

// clear drops every pending task.
func (s *taskScheduler) clear() {
	s.pending = s.pending[:0]
}
