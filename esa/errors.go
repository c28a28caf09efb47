package esa

import "errors"

// ErrBadParameter is returned when a constructor or Parse argument violates
// a documented precondition: a negative or over-sized block, a match-length
// bound outside the range this package can encode, a negative worker count.
var ErrBadParameter = errors.New("esa: bad parameter")

// ErrOracleFailed is returned by Parse if the suffix-array/PLCP oracle
// (internal/sais) produced a result inconsistent with the input it was
// given. The reference C implementation treats its oracle, libsais, as a
// black box that can fail independently of bad parameters; this mirrors
// that by keeping oracle failure a distinct error from ErrBadParameter.
var ErrOracleFailed = errors.New("esa: suffix array construction failed")
