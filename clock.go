package edfsched

// Clock is a counter that advances within a [Domain] and wraps on overflow.
type Clock struct {
	domain Domain
	now    Tick
}

// NewClock creates a new [Clock] at zero.
func NewClock(d Domain) *Clock {
	return &Clock{domain: d}
}

// Now returns the current value of the clock.
func (c *Clock) Now() Tick {
	return c.now
}

// Advance moves the clock forward by tick, wrapping.
func (c *Clock) Advance(tick int64) {
	c.now = c.domain.Add(c.now, tick)
}

// Set moves the clock to v, reduced into the domain.
func (c *Clock) Set(v int64) {
	c.now = c.domain.Wrap(v)
}
