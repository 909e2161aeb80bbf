package edfsched

// Task represents a pending item. It holds an opaque identifier and the
// absolute deadline computed when it was admitted.
type Task[T any] struct {
	ID       T
	Deadline Tick

	// The seqNo records admission order. It is used for diagnostics only, the
	// store's slice order is what breaks ties.
	seqNo int64
}

// Seq returns the admission sequence number of the [Task] within its
// [Scheduler].
func (t *Task[T]) Seq() int64 {
	return t.seqNo
}

// Result is the outcome of a successful selection.
type Result[T any] struct {
	Task      *Task[T]
	Remaining int64
	Now       Tick
}
