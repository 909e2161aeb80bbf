package edfsched

import "log/slog"

// Options holds configuration options for the [Scheduler].
type Options[T any] struct {
	Domain  Domain
	Metrics MetricsHook[T]
	Logger  *slog.Logger
}

// Option is a function that configures [Options].
type Option[T any] func(*Options[T])

// WithDomain sets the time domain for the [Scheduler]. The default is [Int8].
// A zero [Domain] is ignored.
func WithDomain[T any](d Domain) Option[T] {
	return func(o *Options[T]) {
		if d.width == 0 {
			return
		}
		o.Domain = d
	}
}

// WithConfig sets the time domain for the [Scheduler] from a [Config]. It
// panics if the config does not describe a valid domain. Use [NewFromConfig]
// to get the error instead.
func WithConfig[T any](c *Config) Option[T] {
	d, err := c.Domain()
	if err != nil {
		panic(err)
	}
	return WithDomain[T](d)
}

// WithMetricsHook sets the metrics hook for the [Scheduler].
func WithMetricsHook[T any](hook MetricsHook[T]) Option[T] {
	return func(o *Options[T]) {
		o.Metrics = hook
	}
}

// WithLogger sets the logger the [Scheduler] writes its trace to. Admissions
// and selections are logged at debug level.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(o *Options[T]) {
		o.Logger = logger
	}
}
