// Copyright (c) 2016-2019 The Bitcoin Core developers
// Copyright (c) 2018-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package activation

import "github.com/BitcoinActivation/bitcoin/chain"

// Checker is the capability contract the engine is generic over. It is the
// Go re-expression of Bitcoin Core's AbstractThresholdConditionChecker: any
// type that can answer these seven questions about a deployment can be
// dropped into the engine, whether it describes real mainnet version-bit
// signalling or a synthetic deployment built for a test.
//
// Implementations are expected to be cheap value types; the engine calls
// Condition once per block it visits and the other accessors once per
// query.
type Checker interface {
	// StartHeight returns the height at which DEFINED may become STARTED,
	// or one of the AlwaysActive/NeverActive sentinels from the
	// deployment package.
	StartHeight() int64

	// TimeoutHeight returns the height at which STARTED gives up, or
	// NeverActive alongside a NeverActive StartHeight.
	TimeoutHeight() int64

	// MinActivationHeight returns the height before which LOCKED_IN may
	// not advance to ACTIVE.
	MinActivationHeight() int64

	// Period returns the number of blocks in one signalling window.
	Period() int64

	// Threshold returns the number of signalling blocks within one
	// period required to lock in.
	Threshold() int64

	// LockinOnTimeout reports whether a timed-out STARTED period should
	// move to MUST_SIGNAL rather than FAILED.
	LockinOnTimeout() bool

	// Condition reports whether the given block's version signals for
	// this deployment.
	Condition(node *chain.Node) bool
}
