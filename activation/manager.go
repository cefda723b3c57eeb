// Copyright (c) 2016-2019 The Bitcoin Core developers
// Copyright (c) 2017-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package activation

import (
	"fmt"

	"github.com/BitcoinActivation/bitcoin/chain"
)

// ErrUnknownDeployment indicates a request against a deployment ID that was
// never registered with a Manager.
const ErrUnknownDeployment = ErrorKind("ErrUnknownDeployment")

// entry pairs a Checker with the Cache that memoizes its state.
type entry struct {
	checker Checker
	cache   *Cache
}

// Manager is a registry of deployments tracked over a single chain view. It
// corresponds to Bitcoin Core's VersionBitsCache, generalized to hold an
// arbitrary Checker per deployment rather than only version-bit ones, and
// keyed by a stable string ID rather than a fixed-size array slot.
//
// A Manager is not safe for concurrent use; the caller must serialize
// access to it, typically with whatever lock already guards the chain
// view.
type Manager struct {
	deployments map[string]*entry
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{deployments: make(map[string]*entry)}
}

// Register adds a deployment under id, tracked with its own Cache. Calling
// Register twice with the same id replaces the previous entry and discards
// its cache.
func (m *Manager) Register(id string, checker Checker) {
	m.deployments[id] = &entry{checker: checker, cache: NewCache()}
}

func (m *Manager) get(id string) (*entry, error) {
	e, ok := m.deployments[id]
	if !ok {
		return nil, contextError(ErrUnknownDeployment,
			fmt.Sprintf("no deployment registered under id %q", id))
	}
	return e, nil
}

// State returns the threshold state for the block after prevBlock for the
// named deployment.
func (m *Manager) State(id string, prevBlock *chain.Node) (State, error) {
	e, err := m.get(id)
	if err != nil {
		return Invalid, err
	}
	return StateFor(e.checker, prevBlock, e.cache), nil
}

// Statistics returns the signalling progress within the period containing
// block for the named deployment.
func (m *Manager) Statistics(id string, block *chain.Node) (Stats, error) {
	e, err := m.get(id)
	if err != nil {
		return Stats{}, err
	}
	state := StateFor(e.checker, block, e.cache)
	return StatisticsFor(e.checker, block, state), nil
}

// SinceHeight returns the height at which the named deployment last changed
// state, as observed from prevBlock.
func (m *Manager) SinceHeight(id string, prevBlock *chain.Node) (int64, error) {
	e, err := m.get(id)
	if err != nil {
		return 0, err
	}
	return SinceHeightFor(e.checker, prevBlock, e.cache), nil
}

// SignalMask returns the version bits a block must set to signal for the
// named deployment. Only meaningful for version-bit-style checkers; returns
// 0 for any Checker that isn't one.
func (m *Manager) SignalMask(id string) (uint32, error) {
	e, err := m.get(id)
	if err != nil {
		return 0, err
	}
	if vb, ok := e.checker.(interface{ SignalMask() uint32 }); ok {
		return vb.SignalMask(), nil
	}
	return 0, nil
}

// Clear discards all memoized state for every registered deployment. It
// must be called after any reorg that could move block records out from
// under previously returned *chain.Node pointers.
func (m *Manager) Clear() {
	for _, e := range m.deployments {
		e.cache.Clear()
	}
}

// DeploymentInfo is a snapshot of one deployment's status, modeled on
// Bitcoin Core's getdeploymentinfo RPC response. It exists purely for
// diagnostics and serialization at the edge of the system (e.g. cmd/vbitsim);
// the engine itself never constructs or consumes one.
type DeploymentInfo struct {
	ID        string `json:"id"`
	State     string `json:"state"`
	Since     int64  `json:"since"`
	Bit       *uint8 `json:"bit,omitempty"`
	StartTime int64  `json:"start_height"`
	Timeout   int64  `json:"timeout_height"`
	Elapsed   int64  `json:"period_elapsed,omitempty"`
	Count     int64  `json:"period_count,omitempty"`
	Threshold int64  `json:"threshold,omitempty"`
	Possible  *bool  `json:"possible,omitempty"`
}

// Report builds a DeploymentInfo for the named deployment as observed from
// prevBlock. Statistics are only included when the state is STARTED or
// MUST_SIGNAL, matching Bitcoin Core's own getdeploymentinfo behavior; this
// is enforced here rather than inside Statistics itself, which always
// returns its raw counts regardless of state.
func (m *Manager) Report(id string, prevBlock *chain.Node) (DeploymentInfo, error) {
	e, err := m.get(id)
	if err != nil {
		return DeploymentInfo{}, err
	}

	state := StateFor(e.checker, prevBlock, e.cache)
	since := SinceHeightFor(e.checker, prevBlock, e.cache)

	info := DeploymentInfo{
		ID:        id,
		State:     state.String(),
		Since:     since,
		StartTime: e.checker.StartHeight(),
		Timeout:   e.checker.TimeoutHeight(),
	}
	if vb, ok := e.checker.(VersionBitsChecker); ok {
		bit := vb.cfg.Bit
		info.Bit = &bit
	}

	if state == Started || state == MustSignal {
		stats := StatisticsFor(e.checker, prevBlock, state)
		info.Elapsed = stats.Elapsed
		info.Count = stats.Count
		info.Threshold = stats.Threshold
		possible := stats.Possible
		info.Possible = &possible
	}

	return info, nil
}
