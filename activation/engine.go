// Copyright (c) 2016-2019 The Bitcoin Core developers
// Copyright (c) 2017-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package activation

import (
	"github.com/BitcoinActivation/bitcoin/chain"
	"github.com/BitcoinActivation/bitcoin/deployment"
)

// periodBoundary returns the ancestor of node whose height is a multiple of
// period minus one, i.e. the last block of the period preceding the one
// that contains node's child (node itself when node closes a period). A
// block's state always equals the state computed at this
// ancestor, which is why the engine only ever memoizes period boundaries
// rather than every block.
func periodBoundary(node *chain.Node, period int64) *chain.Node {
	if node == nil {
		return nil
	}
	return node.Ancestor(node.Height() - ((node.Height() + 1) % period))
}

// StateFor returns the current threshold state for the block AFTER
// prevBlock. cache is mutated to memoize every newly computed period
// boundary.
func StateFor(checker Checker, prevBlock *chain.Node, cache *Cache) State {
	startHeight := checker.StartHeight()
	timeoutHeight := checker.TimeoutHeight()

	// Fast paths, before any cache lookup.
	if startHeight == deployment.AlwaysActive {
		return Active
	}
	if startHeight == deployment.NeverActive && timeoutHeight == deployment.NeverActive {
		return Defined
	}

	period := checker.Period()
	minActivation := checker.MinActivationHeight()
	threshold := checker.Threshold()
	lockinOnTimeout := checker.LockinOnTimeout()

	// A block's state is always the same as that of the first block of its
	// period, so everything below is computed in terms of the ancestor
	// whose height is a multiple of period - 1.
	node := periodBoundary(prevBlock, period)

	// Walk backwards in strides of `period` until we find a node whose
	// state is already known, or run off the front of the chain.
	var toCompute []*chain.Node
	for {
		if _, ok := cache.lookup(node); ok {
			break
		}
		if node == nil {
			cache.update(node, Defined)
			break
		}
		// We track state by previous-block, so the height being compared
		// against start_height is +1.
		if node.Height()+1 < startHeight {
			cache.update(node, Defined)
			break
		}
		toCompute = append(toCompute, node)
		node = node.Ancestor(node.Height() - period)
	}

	state, _ := cache.lookup(node)

	// Walk forward from the oldest unknown period boundary, computing and
	// caching the state of each descendant boundary in turn.
	for i := len(toCompute) - 1; i >= 0; i-- {
		boundary := toCompute[i]
		height := boundary.Height() + 1
		next := state

		switch state {
		case Defined:
			if height >= startHeight {
				next = Started
			}

		case Started:
			count := countSignalling(checker, boundary, period)
			switch {
			case count >= threshold:
				next = LockedIn
			case lockinOnTimeout && height+period >= timeoutHeight:
				next = MustSignal
			case height >= timeoutHeight:
				next = Failed
			}

		case MustSignal:
			// Always progresses into LOCKED_IN: the forced-signal period
			// has just elapsed.
			next = LockedIn

		case LockedIn:
			if height >= minActivation {
				next = Active
			}

		case Active, Failed:
			// Terminal states never change.
		}

		log.Debugf("deployment period boundary at height %d cached as %v (was %v)",
			height, next, state)
		if next == MustSignal {
			log.Warnf("deployment forced into MUST_SIGNAL at height %d; "+
				"every block of the next period must signal", height)
		}

		state = next
		cache.update(boundary, state)
	}

	return state
}

// countSignalling walks exactly `period` blocks backwards from boundary
// (inclusive) and counts how many satisfy checker.Condition. The walk is
// always exactly period steps regardless of how many blocks signal, so the
// count is never cut short once it clears the threshold.
func countSignalling(checker Checker, boundary *chain.Node, period int64) int64 {
	var count int64
	n := boundary
	for i := int64(0); i < period; i++ {
		if checker.Condition(n) {
			count++
		}
		n = n.Parent()
	}
	return count
}

// Stats holds the per-period signalling progress towards lock-in.
type Stats struct {
	Period    int64
	Threshold int64
	Elapsed   int64
	Count     int64
	Possible  bool

	// Undefined is set when Statistics was computed for a block whose
	// state is not STARTED or MUST_SIGNAL. Elapsed, Count, and Possible
	// are still populated with their raw values in that case, but callers
	// should not treat Possible as meaningful.
	Undefined bool
}

// StatisticsFor computes the progress towards lock-in within the period
// containing block. It does not use the cache: it is a pure function of the
// chain view, since it counts within the *current*, possibly still-open,
// period rather than reasoning about completed ones. state is the block's
// already-computed threshold state (from StateFor), passed in by the
// caller since StatisticsFor has no cache access of its own to derive it.
//
// Calling this when state is neither STARTED nor MUST_SIGNAL is not an
// error: the raw counts are returned anyway (useful for debugging and for
// the DeploymentInfo report), but Stats.Possible is not meaningful and
// Stats.Undefined is set. Callers that need to enforce the
// STARTED/MUST_SIGNAL precondition can check Stats.Undefined themselves,
// or use Manager.Report, which does.
func StatisticsFor(checker Checker, block *chain.Node, state State) Stats {
	stats := Stats{
		Period:    checker.Period(),
		Threshold: checker.Threshold(),
		Undefined: state != Started && state != MustSignal,
	}
	if block == nil {
		return stats
	}

	startOfPeriod := periodBoundary(block, stats.Period)
	stats.Elapsed = block.Height() - startOfPeriod.Height()

	var count int64
	for n := block; n.Height() != startOfPeriod.Height(); n = n.Parent() {
		if checker.Condition(n) {
			count++
		}
	}
	stats.Count = count
	stats.Possible = (stats.Period - stats.Threshold) >= (stats.Elapsed - count)
	return stats
}

// SinceHeightFor returns the smallest height h such that every block from h
// up to and including the block computed for prevBlock has been in the
// same state.
func SinceHeightFor(checker Checker, prevBlock *chain.Node, cache *Cache) int64 {
	startHeight := checker.StartHeight()
	if startHeight == deployment.AlwaysActive {
		return 0
	}

	initialState := StateFor(checker, prevBlock, cache)
	if initialState == Defined {
		return 0
	}

	period := checker.Period()
	node := periodBoundary(prevBlock, period)
	previousPeriodParent := node.Ancestor(node.Height() - period)

	for previousPeriodParent != nil && StateFor(checker, previousPeriodParent, cache) == initialState {
		node = previousPeriodParent
		previousPeriodParent = node.Ancestor(node.Height() - period)
	}

	return node.Height() + 1
}
