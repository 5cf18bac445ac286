// Package bgerr splits the engine's two error policies apart: faults that
// indicate a broken invariant (and should crash loudly) from driver-level
// faults (an agent played something illegal, a successor state diverged)
// that a match loop can recover from by ending the episode.
package bgerr

import (
	"github.com/cockroachdb/errors"
)

// FaultError wraps a contract violation inside the belief-state engine: an
// unsatisfiable domain restriction, a non-singleton domain queried as if
// determined, a position missing a required stack index, or a lookup for an
// unknown variable or attribute name. None of these are recoverable — they
// mean a caller or an internal invariant is broken — so code that detects
// one should panic with a *FaultError rather than propagate a normal error.
type FaultError struct {
	err error
}

func (f *FaultError) Error() string { return f.err.Error() }
func (f *FaultError) Unwrap() error { return f.err }

// Fault builds a *FaultError carrying a stack trace and panics with it.
func Fault(format string, args ...interface{}) {
	panic(&FaultError{err: errors.AssertionFailedf(format, args...)})
}

// Recover turns a panicking *FaultError into an ordinary error, for the one
// boundary (the driver's Step) that must not let a fault crash the process.
func Recover(target *error) {
	if r := recover(); r != nil {
		if fe, ok := r.(*FaultError); ok {
			*target = fe
			return
		}
		panic(r)
	}
}

// New builds an ordinary, recoverable driver-level error.
func New(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// Wrap attaches context to a recoverable driver-level error.
func Wrap(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
