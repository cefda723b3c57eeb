// Copyright (c) 2016-2019 The Bitcoin Core developers
// Copyright (c) 2017-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package activation

import "github.com/BitcoinActivation/bitcoin/chain"

// Cache memoizes the state of every period-boundary previous-block that has
// been computed for one deployment. Keys are *chain.Node pointers,
// including the nil pointer for the "none" sentinel (the parent of
// genesis): chain.Node values are immutable and live for as long as the
// chain view does, so a pointer is a safe, zero-allocation identity —
// unlike Bitcoin Core's raw CBlockIndex*, which this mirrors, no separate
// hash-keyed lookup is needed unless an embedding application relocates
// block records out from under the cache, in which case it must Clear()
// first (see Manager.Clear).
//
// A Cache is not safe for concurrent use; the caller must serialize access
// to it, typically with whatever lock already guards the chain view.
type Cache struct {
	entries map[*chain.Node]State
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[*chain.Node]State)}
}

// lookup returns the cached state for node and whether an entry exists.
func (c *Cache) lookup(node *chain.Node) (State, bool) {
	s, ok := c.entries[node]
	return s, ok
}

// update records the state for node. A given key is only ever updated with
// the same value across the lifetime of the cache, since a block's
// threshold state never changes once computed; that invariant is not
// enforced here, since doing so would require storing the entry twice, but
// callers can rely on it.
func (c *Cache) update(node *chain.Node, state State) {
	c.entries[node] = state
}

// Clear empties the cache. It must be invoked whenever block records
// previously queried may no longer be on the best chain, since cache keys
// are node pointers whose meaning depends on chain identity.
func (c *Cache) Clear() {
	c.entries = make(map[*chain.Node]State)
}

// Len reports the number of period boundaries currently memoized. Exposed
// for tests and for operators who want to bound memory growth reporting.
func (c *Cache) Len() int {
	return len(c.entries)
}
