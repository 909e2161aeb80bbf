package edfsched

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
)

// MetricsHook defines hooks for monitoring admission and selection events.
type MetricsHook[T any] interface {
	OnAdmit(task *Task[T])
	OnSelect(result Result[T])
	OnRemove(task *Task[T])
	OnEmpty(now Tick)
}

// Scheduler is an earliest-deadline-first task store that supports the
// following operations:
//
//   - Admit a task with a deadline relative to the current clock
//   - Advance the clock, wrapping within its [Domain]
//   - Peek at the task with the least remaining time
//   - Remove and return the task with the least remaining time
//
// If two tasks have the same remaining time, the one admitted first wins.
//
// A Scheduler is not safe for concurrent use. Callers sharing one between
// goroutines must guard every call with their own lock.
type Scheduler[T any] struct {
	domain  Domain
	clock   *Clock
	metrics MetricsHook[T]
	logger  *slog.Logger

	tasks []*Task[T]
	seqNo int64
}

// New creates a new [Scheduler] with the given options.
func New[T any](opts ...Option[T]) *Scheduler[T] {
	o := &Options[T]{
		Domain: Int8,
	}
	for _, opt := range opts {
		opt(o)
	}

	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Scheduler[T]{
		domain:  o.Domain,
		clock:   NewClock(o.Domain),
		metrics: o.Metrics,
		logger:  logger,
		tasks:   make([]*Task[T], 0),
	}
}

// NewFromConfig creates a new [Scheduler] over the domain described by c. The
// config takes precedence over any [WithDomain] option.
func NewFromConfig[T any](c *Config, opts ...Option[T]) (*Scheduler[T], error) {
	d, err := c.Domain()
	if err != nil {
		return nil, fmt.Errorf("building domain: %w", err)
	}
	return New(slices.Concat(opts, []Option[T]{WithDomain[T](d)})...), nil
}

// Domain returns the time domain of the scheduler.
func (s *Scheduler[T]) Domain() Domain {
	return s.domain
}

// Now returns the current clock value.
func (s *Scheduler[T]) Now() Tick {
	return s.clock.Now()
}

// Advance moves the clock forward by tick, wrapping.
func (s *Scheduler[T]) Advance(tick int64) {
	s.clock.Advance(tick)
}

// Admit adds a new [Task] whose absolute deadline is relative ticks after the
// current clock value.
func (s *Scheduler[T]) Admit(relative int64, id T) *Task[T] {
	task := &Task[T]{
		ID:       id,
		Deadline: s.domain.Add(s.clock.Now(), relative),
		seqNo:    s.seqNo,
	}
	s.seqNo++
	s.tasks = append(s.tasks, task)

	s.logger.Debug("admitted",
		slog.Any("task", id),
		slog.Int64("seq", task.seqNo),
		slog.Int64("now", s.domain.Int(s.clock.Now())),
		slog.Int64("deadline", s.domain.Int(task.Deadline)),
	)

	if s.metrics != nil {
		s.metrics.OnAdmit(task)
	}

	return task
}

// RemoveAt removes and returns the [Task] at index, shifting later tasks down
// by one. It panics if index is out of range.
func (s *Scheduler[T]) RemoveAt(index int) *Task[T] {
	task := s.removeAt(index)

	s.logger.Debug("removed",
		slog.Any("task", task.ID),
		slog.Int("index", index),
		slog.Int64("deadline", s.domain.Int(task.Deadline)),
	)

	if s.metrics != nil {
		s.metrics.OnRemove(task)
	}

	return task
}

func (s *Scheduler[T]) removeAt(index int) *Task[T] {
	if index < 0 || index >= len(s.tasks) {
		panic(fmt.Sprintf("edfsched: remove index %d out of range [0, %d)", index, len(s.tasks)))
	}
	task := s.tasks[index]
	s.tasks = slices.Delete(s.tasks, index, index+1)
	return task
}

// Peek returns the [Task] with the least remaining time without removing it.
// If the scheduler has no tasks, Peek returns false.
func (s *Scheduler[T]) Peek() (Result[T], bool) {
	now := s.clock.Now()
	sel, ok := Select(s.domain, s.Deadlines(), now)
	if !ok {
		return Result[T]{Now: now}, false
	}
	return Result[T]{
		Task:      s.tasks[sel.Index],
		Remaining: sel.Remaining,
		Now:       now,
	}, true
}

// Next removes and returns the [Task] with the least remaining time at the
// current clock value. If the scheduler has no tasks, Next returns false and
// leaves the scheduler unchanged.
func (s *Scheduler[T]) Next() (Result[T], bool) {
	now := s.clock.Now()
	sel, ok := Select(s.domain, s.Deadlines(), now)
	if !ok {
		s.logger.Debug("none", slog.Int64("now", s.domain.Int(now)))
		if s.metrics != nil {
			s.metrics.OnEmpty(now)
		}
		return Result[T]{Now: now}, false
	}

	result := Result[T]{
		Task:      s.removeAt(sel.Index),
		Remaining: sel.Remaining,
		Now:       now,
	}

	s.logger.Debug("selected",
		slog.Int64("now", s.domain.Int(now)),
		slog.Int64("remaining", result.Remaining),
		slog.Any("task", result.Task.ID),
		slog.Int64("deadline", s.domain.Int(result.Task.Deadline)),
	)

	if s.metrics != nil {
		s.metrics.OnSelect(result)
	}

	return result, true
}

// Step advances the clock by tick and then behaves like [Scheduler.Next].
func (s *Scheduler[T]) Step(tick int64) (Result[T], bool) {
	s.Advance(tick)
	return s.Next()
}

// Len returns the number of pending tasks.
func (s *Scheduler[T]) Len() int {
	return len(s.tasks)
}

// Tasks returns an iterator over pending tasks in admission order. The
// scheduler must not be mutated while iterating.
func (s *Scheduler[T]) Tasks() iter.Seq[*Task[T]] {
	return slices.Values(s.tasks)
}

// Deadlines returns an iterator over the absolute deadlines of pending tasks
// in admission order.
func (s *Scheduler[T]) Deadlines() iter.Seq[Tick] {
	return func(yield func(Tick) bool) {
		for _, task := range s.tasks {
			if !yield(task.Deadline) {
				return
			}
		}
	}
}
