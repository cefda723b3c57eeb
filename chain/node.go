// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2018-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain provides a minimal, read-only view of an acyclic chain of
// block headers indexed by height, with sublinear ancestor lookups.  It is
// the collaborator described by the activation engine: the engine never
// mutates a Node, it only walks backwards through them.
package chain

import "github.com/decred/dcrd/chaincfg/chainhash"

// Node represents one block within the chain view.  Nodes are immutable
// once constructed and safe for concurrent reads.
type Node struct {
	// parent is the previous node in the chain, or nil for genesis.
	parent *Node

	// skipToAncestor provides a single-level skip list to significantly
	// speed up traversal to ancestors deep in history, exactly as dcrd's
	// blockNode does for the same reason: the chain is append-only, so a
	// deterministic single-level skip list gets most of the benefit of a
	// full skip list at a fraction of the bookkeeping.
	skipToAncestor *Node

	hash    chainhash.Hash
	height  int64
	version int32
}

// clearLowestOneBit clears the lowest set bit in the passed value.
func clearLowestOneBit(n int64) int64 {
	return n & (n - 1)
}

// calcSkipListHeight calculates the height of the ancestor a node at the
// given height should link to for its skip pointer.  See dcrd's
// blockindex.go for the derivation; the short version is that clearing the
// lowest two set bits of the height produces a deterministic, append-only
// skip list with logarithmic worst-case ancestor lookups.
func calcSkipListHeight(height int64) int64 {
	if height < 0 {
		return 0
	}
	return clearLowestOneBit(clearLowestOneBit(height))
}

// NewGenesis returns the first node of a chain.
func NewGenesis(hash chainhash.Hash, version int32) *Node {
	return &Node{hash: hash, height: 0, version: version}
}

// NewChild returns a new node that extends parent.  parent must not be nil;
// use NewGenesis for the first node of a chain.
func NewChild(parent *Node, hash chainhash.Hash, version int32) *Node {
	node := &Node{
		parent:  parent,
		hash:    hash,
		height:  parent.height + 1,
		version: version,
	}
	node.skipToAncestor = parent.Ancestor(calcSkipListHeight(node.height))
	return node
}

// Height returns the node's height.
func (n *Node) Height() int64 {
	if n == nil {
		return -1
	}
	return n.height
}

// Hash returns the node's block hash.  It returns the zero hash for a nil
// receiver rather than panicking, since nil stands for the "none" sentinel
// parent of genesis throughout this package.
func (n *Node) Hash() chainhash.Hash {
	if n == nil {
		return chainhash.Hash{}
	}
	return n.hash
}

// Version returns the node's block version, or 0 for a nil receiver.
func (n *Node) Version() int32 {
	if n == nil {
		return 0
	}
	return n.version
}

// Parent returns the immediate predecessor of the node, or nil for genesis.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Ancestor returns the ancestor block node at the provided height by
// following the chain backwards from this node, taking advantage of the
// skip pointer whenever doing so won't overshoot the target height.  The
// returned node is nil when height is negative, or greater than the
// height of the receiver, or the receiver itself is nil (the "none"
// sentinel standing for the parent of genesis, whose only valid ancestor
// is itself: none).
//
// This function is safe for concurrent access.
func (n *Node) Ancestor(height int64) *Node {
	if n == nil || height < 0 || height > n.height {
		return nil
	}

	for n != nil && n.height != height {
		if n.skipToAncestor != nil && calcSkipListHeight(n.height) >= height {
			n = n.skipToAncestor
			continue
		}
		n = n.parent
	}
	return n
}

// RelativeAncestor returns the ancestor block node a relative 'distance'
// blocks before this node.  It is equivalent to calling Ancestor with the
// node's height minus the provided distance and, like Ancestor, returns nil
// for a nil receiver, which lets callers walk period boundaries without a
// nil check at every step.
//
// This function is safe for concurrent access.
func (n *Node) RelativeAncestor(distance int64) *Node {
	if n == nil {
		return nil
	}
	return n.Ancestor(n.height - distance)
}
