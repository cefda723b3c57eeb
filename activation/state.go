// Copyright (c) 2016-2019 The Bitcoin Core developers
// Copyright (c) 2016-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package activation implements the deterministic per-deployment
// activation state machine: given a chain view and a deployment
// configuration, it computes which of DEFINED, STARTED, LOCKED_IN, ACTIVE,
// FAILED, or MUST_SIGNAL is in force for any block, memoizing the answer
// per period boundary the same way Bitcoin Core's versionbits.cpp does.
package activation

import "fmt"

// State identifies one of the six states a deployment can be in for a
// given block.
type State byte

// These constants identify the possible activation states. The zero value
// is intentionally not a valid state (see Invalid) so a zeroed State never
// silently reads as DEFINED.
const (
	Invalid State = iota
	Defined
	Started
	MustSignal
	LockedIn
	Active
	Failed
)

var stateNames = map[State]string{
	Invalid:    "INVALID",
	Defined:    "DEFINED",
	Started:    "STARTED",
	MustSignal: "MUST_SIGNAL",
	LockedIn:   "LOCKED_IN",
	Active:     "ACTIVE",
	Failed:     "FAILED",
}

// String returns the State as a human-readable name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", byte(s))
}

// Terminal reports whether s is an absorbing state that the engine will
// never transition out of.
func (s State) Terminal() bool {
	return s == Active || s == Failed
}
