package edfsched

import "fmt"

// MaxWidth is the widest supported domain. Remaining values of every domain
// must fit in an int64 under both policies.
const MaxWidth = 63

// Tick is a raw value of a [Domain]. It always lies in [0, 2^width) and is only
// meaningful together with the domain that produced it.
type Tick uint64

// Domain is a fixed-width counter space in which the clock and all deadlines
// live. Arithmetic wraps silently modulo 2^width and never fails.
type Domain struct {
	width  uint
	mask   uint64
	policy Policy
}

var (
	// Int8 is a signed 8-bit domain. Deadlines more than 127 ticks away
	// alias to the wrong sign.
	Int8 = MustDomain(8, Policies.Signed)

	// Uint8 is an unsigned 8-bit domain.
	Uint8 = MustDomain(8, Policies.Unsigned)
)

// NewDomain creates a new [Domain] of the given width in bits.
func NewDomain(width int, p Policy) (Domain, error) {
	if width < 1 || width > MaxWidth {
		return Domain{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidWidth, width, MaxWidth)
	}
	if !p.IsValid() {
		return Domain{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, p.String())
	}
	return Domain{
		width:  uint(width),
		mask:   1<<uint(width) - 1,
		policy: p,
	}, nil
}

// MustDomain is like [NewDomain] but panics on error.
func MustDomain(width int, p Policy) Domain {
	d, err := NewDomain(width, p)
	if err != nil {
		panic(err)
	}
	return d
}

// Width returns the number of bits in the domain.
func (d Domain) Width() int {
	return int(d.width)
}

// Policy returns the interpretation policy of the domain.
func (d Domain) Policy() Policy {
	return d.policy
}

// Size returns the modulus of the domain, 2^width.
func (d Domain) Size() uint64 {
	return d.mask + 1
}

// Contains reports whether t is a valid value of the domain.
func (d Domain) Contains(t Tick) bool {
	return uint64(t)&^d.mask == 0
}

// Wrap reduces v modulo the domain size. Negative values wrap as two's
// complement, so Wrap(-1) is the largest value of the domain.
func (d Domain) Wrap(v int64) Tick {
	return Tick(uint64(v) & d.mask)
}

// Add returns t advanced by delta, wrapping.
func (d Domain) Add(t Tick, delta int64) Tick {
	return Tick((uint64(t) + uint64(delta)) & d.mask)
}

// Sub returns a minus b, wrapping.
func (d Domain) Sub(a, b Tick) Tick {
	return Tick((uint64(a) - uint64(b)) & d.mask)
}

// Int interprets t according to the domain policy. Under the signed policy
// values at or above 2^(width-1) are negative.
func (d Domain) Int(t Tick) int64 {
	v := uint64(t) & d.mask
	if d.policy.IsSigned() {
		shift := 64 - d.width
		return int64(v<<shift) >> shift
	}
	return int64(v)
}

// Remaining returns the time left until deadline as seen from now.
//
// Under the signed policy a negative result means the deadline has passed. It
// is only correct while the true displacement is within ±2^(width-1); beyond
// that the value aliases to the opposite sign. Under the unsigned policy the
// result is never negative and a deadline that has just passed appears almost
// a full cycle away.
func (d Domain) Remaining(deadline, now Tick) int64 {
	return d.Int(d.Sub(deadline, now))
}

func (d Domain) String() string {
	if d.width == 0 {
		return "invalid"
	}
	if d.policy.IsSigned() {
		return fmt.Sprintf("int%d", d.width)
	}
	return fmt.Sprintf("uint%d", d.width)
}
