package cachematrix

import (
	"errors"

	"github.com/apex/log"

	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// ErrNilCell is returned when a nil *Cell is passed to a Resolver.
var ErrNilCell = errors.New("cachematrix: nil cell")

// Inverter computes the inverse of a square matrix. Implementations fail
// when the matrix is not invertible.
type Inverter interface {
	Inverse(m matrix.Matrix, opts ...matrix.Option) (matrix.Matrix, error)
}

// InverterFunc adapts a plain function to the Inverter interface.
type InverterFunc func(m matrix.Matrix, opts ...matrix.Option) (matrix.Matrix, error)

// Inverse calls f(m, opts...).
func (f InverterFunc) Inverse(m matrix.Matrix, opts ...matrix.Option) (matrix.Matrix, error) {
	return f(m, opts...)
}

// DefaultInverter inverts through LU factorization.
var DefaultInverter Inverter = InverterFunc(matrix.Inverse)

// Stats counts Resolver outcomes. Failures is a subset of Misses.
type Stats struct {
	Hits     int
	Misses   int
	Failures int
}

// Resolver returns the inverse held by a Cell, computing it on a miss.
type Resolver struct {
	inverter Inverter
	log      log.Interface
	stats    Stats
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithInverter replaces DefaultInverter.
func WithInverter(inv Inverter) ResolverOption {
	return func(r *Resolver) {
		if inv != nil {
			r.inverter = inv
		}
	}
}

// WithLogger sets the logger used for cache notifications. The default is
// the apex/log package logger.
func WithLogger(l log.Interface) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// NewResolver returns a Resolver using DefaultInverter and log.Log unless
// overridden.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		inverter: DefaultInverter,
		log:      log.Log,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the inverse of the matrix held by c.
//
// On a hit the cached inverse is returned as-is and a notification is
// logged at info level. On a miss the inverse is computed with opts
// forwarded to the Inverter, stored in c and returned. An Inverter error is
// returned unchanged and leaves c without a cached inverse.
func (r *Resolver) Resolve(c *Cell, opts ...matrix.Option) (matrix.Matrix, error) {
	if c == nil {
		return nil, ErrNilCell
	}

	if m, ok := c.Inverse(); ok {
		r.stats.Hits++
		r.log.WithFields(shapeFields(m)).Info("getting cached inverse")
		return m, nil
	}

	r.stats.Misses++
	data := c.Get()
	r.log.WithFields(shapeFields(data)).Debug("computing inverse")

	m, err := r.inverter.Inverse(data, opts...)
	if err != nil {
		r.stats.Failures++
		r.log.WithError(err).Debug("inverse failed")
		return nil, err
	}
	c.SetInverse(m)

	return m, nil
}

// Stats returns the outcome counters accumulated so far.
func (r *Resolver) Stats() Stats {
	return r.stats
}

// ResolveInverse resolves c with a fresh default Resolver.
func ResolveInverse(c *Cell, opts ...matrix.Option) (matrix.Matrix, error) {
	return NewResolver().Resolve(c, opts...)
}

func shapeFields(m matrix.Matrix) log.Fields {
	if matrix.ValidateNotNil(m) != nil {
		return log.Fields{}
	}

	return log.Fields{"rows": m.Rows(), "cols": m.Cols()}
}
