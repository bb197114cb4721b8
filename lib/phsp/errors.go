package phsp

import (
	"errors"
)

// Every failure produced by this package wraps one of these sentinels (or is
// a raw I/O error from the operating system). Callers pick them apart with
// errors.Is.
var (
	// ErrBadMode is returned when the first 5 bytes of a file are neither
	// MODE0 nor MODE2.
	ErrBadMode = errors.New("first 5 bytes of file are invalid, must be MODE0 or MODE2")
	// ErrBadLength is returned (in strict mode) when the byte length of a
	// file does not match the particle count declared in its header.
	ErrBadLength = errors.New("number of total particles does not match byte length of file")
	// ErrModeMismatch is returned when an operation is given MODE0 and MODE2
	// files together.
	ErrModeMismatch = errors.New("input file MODE0/MODE2 do not match")
	// ErrTooManyParticles is returned when an accumulated particle count
	// overflows the header's 32-bit counter.
	ErrTooManyParticles = errors.New("total particle count overflows int32")
	// ErrHeaderMismatch and ErrRecordMismatch are returned by the
	// verification helpers when two headers or records that should agree
	// don't.
	ErrHeaderMismatch = errors.New("headers are different")
	ErrRecordMismatch = errors.New("records are different")
)
