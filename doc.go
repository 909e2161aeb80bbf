// Package edfsched implements an earliest-deadline-first task selector over a
// small cyclic time domain.
//
// The clock and every deadline are values of a fixed-width counter, a
// [Domain], that wraps silently on overflow. A task's absolute deadline is
// computed once on admission by adding its relative deadline to the clock.
// Selection wrap-subtracts the clock from each deadline and picks the least
// result, with ties going to the task admitted first.
//
// How the wrapped difference is read depends on the domain's [Policy]. Under
// [Policies.Signed] a deadline that has passed yields a negative remaining
// value, so overdue tasks always win and the most overdue wins among them.
// This holds only while deadlines stay within half a cycle of the clock.
// Under [Policies.Unsigned] deadlines are always ahead, and one that has just
// passed looks almost a full cycle away.
//
// [Select] is the pure kernel and works over any sequence of deadlines.
// [Scheduler] wraps it with a task store and a clock and removes the winner.
package edfsched
