// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package deployment

// ErrorKind identifies a kind of error. It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for a Validate failure.
type ErrorKind string

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// These constants identify the ways a Config can fail Validate.
const (
	// ErrInvalidPeriod indicates period is not positive.
	ErrInvalidPeriod = ErrorKind("ErrInvalidPeriod")

	// ErrInvalidThreshold indicates threshold falls outside [0, period].
	ErrInvalidThreshold = ErrorKind("ErrInvalidThreshold")

	// ErrInvalidBit indicates bit falls outside [0, NumBits).
	ErrInvalidBit = ErrorKind("ErrInvalidBit")

	// ErrInvalidSentinelCombination indicates start/timeout height use the
	// AlwaysActive/NeverActive sentinels in a combination other than the
	// two defined ones: (AlwaysActive, anything) or (NeverActive, NeverActive).
	ErrInvalidSentinelCombination = ErrorKind("ErrInvalidSentinelCombination")
)
