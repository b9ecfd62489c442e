// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Options fields are unexported; public APIs consume ...Option.
//
// Notes:
//   - eps drives the singularity test of LU/Inverse: a pivot p is treated
//     as zero when |p| <= eps * max|A[i,j]|.
//   - validateNaNInf controls whether NewDenseFrom/Set reject NaN/Inf.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the relative pivot tolerance used by LU and Inverse.
	DefaultEpsilon = 1e-12

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
}

// Epsilon reports the resolved pivot tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether finite-only validation is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// WithEpsilon sets the relative pivot tolerance used by LU and Inverse.
// Implementation:
//   - Stage 1: validate eps is finite and ≥ 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// Notes:
//   - eps == 0 only rejects exact zero pivots.
//   - Larger eps rejects ill-conditioned matrices earlier.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables rejection of NaN/±Inf on ingestion.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables rejection of NaN/±Inf on ingestion.
// Kernels still propagate non-finite values arithmetically.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewMatrixOptions resolves a sequence of setters into an Options snapshot.
// Returns:
//   - Options with defaults overridden in order (last-writer-wins).
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(opts).
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user-provided setters on top of defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		if set == nil {
			continue
		}
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
