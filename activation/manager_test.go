package activation

import (
	"testing"

	"github.com/BitcoinActivation/bitcoin/chain"
	"github.com/BitcoinActivation/bitcoin/deployment"
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

func chainOf(t *testing.T, numBlocks int64, signalFrom int64, bit uint8) *chain.Node {
	t.Helper()
	tip := chain.NewGenesis(chainhash.Hash{}, int32(deployment.TopBits))
	for h := int64(1); h <= numBlocks; h++ {
		v := int32(deployment.TopBits)
		if h >= signalFrom {
			v |= int32(uint32(1) << bit)
		}
		var hash chainhash.Hash
		hash[0] = byte(h)
		hash[1] = byte(h >> 8)
		tip = chain.NewChild(tip, hash, v)
	}
	return tip
}

func TestManagerTracksMultipleDeploymentsIndependently(t *testing.T) {
	require := require.New(t)

	fast := deployment.Config{Bit: 0, StartHeight: 32, TimeoutHeight: 320, Period: 32, Threshold: 28}
	slow := deployment.Config{Bit: 1, StartHeight: 320, TimeoutHeight: 640, Period: 32, Threshold: 28}
	require.NoError(fast.Validate())
	require.NoError(slow.Validate())

	m := NewManager()
	m.Register("fast", NewVersionBitsChecker(fast))
	m.Register("slow", NewVersionBitsChecker(slow))

	tip := chainOf(t, 2*32, 32, 0)

	fastState, err := m.State("fast", tip)
	require.NoError(err)
	require.Equal(LockedIn.String(), fastState.String())

	slowState, err := m.State("slow", tip)
	require.NoError(err)
	require.Equal(Defined, slowState)

	mask, err := m.SignalMask("fast")
	require.NoError(err)
	require.Equal(uint32(1), mask)
}

func TestManagerClearDropsMemoizedState(t *testing.T) {
	require := require.New(t)

	cfg := deployment.Config{Bit: 0, StartHeight: 32, TimeoutHeight: 320, Period: 32, Threshold: 28}
	m := NewManager()
	m.Register("d", NewVersionBitsChecker(cfg))

	tip := chainOf(t, 3*32, 32, 0)
	_, err := m.State("d", tip)
	require.NoError(err)
	require.Positive(m.deployments["d"].cache.Len())

	m.Clear()
	require.Zero(m.deployments["d"].cache.Len())
}
