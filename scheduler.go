package promise

import "sync"

// Scheduler defers reactions so that no handler ever runs on the stack of
// the call that settled its promise. Tasks scheduled earlier must run before
// tasks scheduled later.
type Scheduler interface {
	Schedule(task func())
}

// defaultScheduler is shared by every promise that was not given an explicit
// Scheduler at construction time.
var defaultScheduler Scheduler = &queueScheduler{}

// queueScheduler is a FIFO task queue drained by a single goroutine. The
// drainer is started lazily on the first task and exits once the queue is
// empty, so an idle program keeps no goroutine alive.
type queueScheduler struct {
	mutex   sync.Mutex
	tasks   []func()
	running bool
}

func (s *queueScheduler) Schedule(task func()) {
	s.mutex.Lock()
	s.tasks = append(s.tasks, task)

	if !s.running {
		s.running = true

		go s.drain()
	}
	s.mutex.Unlock()
}

func (s *queueScheduler) drain() {
	for {
		s.mutex.Lock()
		if 0 == len(s.tasks) {
			s.running = false
			s.mutex.Unlock()

			return
		}

		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.mutex.Unlock()

		task()
	}
}

// ManualScheduler queues reactions without running them until it is stepped
// or drained explicitly. It makes promise chains fully deterministic, which
// is what tests want instead of polling the default scheduler.
type ManualScheduler struct {
	mutex sync.Mutex
	tasks []func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(task func()) {
	s.mutex.Lock()
	s.tasks = append(s.tasks, task)
	s.mutex.Unlock()
}

// Step runs the oldest queued reaction and reports whether there was one.
// Reactions may queue further reactions; those run on later steps.
func (s *ManualScheduler) Step() bool {
	s.mutex.Lock()
	if 0 == len(s.tasks) {
		s.mutex.Unlock()

		return false
	}

	task := s.tasks[0]
	s.tasks = s.tasks[1:]
	s.mutex.Unlock()

	task()

	return true
}

// Drain steps until the queue is empty and returns the number of reactions
// that ran, including the ones queued while draining.
func (s *ManualScheduler) Drain() int {
	steps := 0
	for s.Step() {
		steps++
	}

	return steps
}

// Len returns the number of reactions currently queued.
func (s *ManualScheduler) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.tasks)
}
