// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2018-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"testing"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

func buildTestChain(t *testing.T, numBlocks int64) *Node {
	t.Helper()
	tip := NewGenesis(chainhash.Hash{}, 0)
	for h := int64(1); h <= numBlocks; h++ {
		var hash chainhash.Hash
		hash[0] = byte(h)
		hash[1] = byte(h >> 8)
		tip = NewChild(tip, hash, int32(h))
	}
	return tip
}

func TestAncestor(t *testing.T) {
	const numBlocks = 1000
	tip := buildTestChain(t, numBlocks)

	for _, height := range []int64{0, 1, 2, 3, 4, 8, 16, 17, 500, 999, 1000} {
		got := tip.Ancestor(height)
		if got == nil {
			t.Fatalf("Ancestor(%d) returned nil", height)
		}
		if got.Height() != height {
			t.Fatalf("Ancestor(%d).Height() = %d", height, got.Height())
		}
		if got.Version() != int32(height) {
			t.Fatalf("Ancestor(%d).Version() = %d, want %d", height, got.Version(), height)
		}
	}
}

func TestAncestorOutOfRange(t *testing.T) {
	tip := buildTestChain(t, 10)

	if got := tip.Ancestor(-1); got != nil {
		t.Errorf("Ancestor(-1) = %v, want nil", got)
	}
	if got := tip.Ancestor(11); got != nil {
		t.Errorf("Ancestor(11) = %v, want nil", got)
	}
}

func TestRelativeAncestor(t *testing.T) {
	tip := buildTestChain(t, 100)

	got := tip.RelativeAncestor(10)
	if got.Height() != 90 {
		t.Fatalf("RelativeAncestor(10).Height() = %d, want 90", got.Height())
	}
}

func TestNilNodeAccessorsDoNotPanic(t *testing.T) {
	var n *Node

	if got := n.Height(); got != -1 {
		t.Errorf("nil.Height() = %d, want -1", got)
	}
	if got := n.Hash(); got != (chainhash.Hash{}) {
		t.Errorf("nil.Hash() = %v, want zero hash", got)
	}
	if got := n.Version(); got != 0 {
		t.Errorf("nil.Version() = %d, want 0", got)
	}
	if got := n.Parent(); got != nil {
		t.Errorf("nil.Parent() = %v, want nil", got)
	}
	if got := n.Ancestor(0); got != nil {
		t.Errorf("nil.Ancestor(0) = %v, want nil", got)
	}
	if got := n.RelativeAncestor(0); got != nil {
		t.Errorf("nil.RelativeAncestor(0) = %v, want nil", got)
	}
}

func TestGenesisHasNoParent(t *testing.T) {
	genesis := NewGenesis(chainhash.Hash{}, 1)
	if got := genesis.Parent(); got != nil {
		t.Errorf("genesis.Parent() = %v, want nil", got)
	}
	if got := genesis.Ancestor(0); got != genesis {
		t.Errorf("genesis.Ancestor(0) = %v, want genesis itself", got)
	}
}
