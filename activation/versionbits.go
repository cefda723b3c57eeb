// Copyright (c) 2016-2019 The Bitcoin Core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package activation

import (
	"github.com/BitcoinActivation/bitcoin/chain"
	"github.com/BitcoinActivation/bitcoin/deployment"
)

// VersionBitsChecker adapts a deployment.Config into a Checker, using the
// canonical top-bit-guarded version-bit Condition. It is the Go analogue of
// Bitcoin Core's VersionBitsConditionChecker.
type VersionBitsChecker struct {
	cfg deployment.Config
}

// NewVersionBitsChecker returns a Checker for the given deployment
// configuration. The caller must have already validated cfg with
// cfg.Validate(); NewVersionBitsChecker does not re-validate it.
func NewVersionBitsChecker(cfg deployment.Config) VersionBitsChecker {
	return VersionBitsChecker{cfg: cfg}
}

// StartHeight implements Checker.
func (c VersionBitsChecker) StartHeight() int64 { return c.cfg.StartHeight }

// TimeoutHeight implements Checker.
func (c VersionBitsChecker) TimeoutHeight() int64 { return c.cfg.TimeoutHeight }

// MinActivationHeight implements Checker.
func (c VersionBitsChecker) MinActivationHeight() int64 { return c.cfg.MinActivationHeight }

// Period implements Checker.
func (c VersionBitsChecker) Period() int64 { return c.cfg.Period }

// Threshold implements Checker.
func (c VersionBitsChecker) Threshold() int64 { return c.cfg.Threshold }

// LockinOnTimeout implements Checker.
func (c VersionBitsChecker) LockinOnTimeout() bool { return c.cfg.LockinOnTimeout }

// Condition implements Checker.
func (c VersionBitsChecker) Condition(node *chain.Node) bool {
	return c.cfg.Signals(node.Version())
}

// SignalMask returns the 32-bit mask a block's version must include to
// signal for this deployment.
func (c VersionBitsChecker) SignalMask() uint32 {
	return c.cfg.Mask()
}
