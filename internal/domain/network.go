package domain

import "github.com/samber/lo"

// Well known zkSync chain IDs
const (
	ChainIDZkSyncGoerli  uint64 = 280
	ChainIDZkSyncSepolia uint64 = 300
	ChainIDZkSyncMainnet uint64 = 324
)

// DefaultAcceptedChainIDs is the chain set both the deployer and the
// paymaster client accept when the configuration does not override it.
var DefaultAcceptedChainIDs = []uint64{
	ChainIDZkSyncGoerli,
	ChainIDZkSyncSepolia,
	ChainIDZkSyncMainnet,
}

// CheckChainID returns an UnsupportedChainErr unless chainID is accepted.
func CheckChainID(chainID uint64, accepted []uint64) error {
	if !lo.Contains(accepted, chainID) {
		return UnsupportedChainErr{ChainID: chainID, Accepted: accepted}
	}
	return nil
}

var explorers = map[uint64]string{
	ChainIDZkSyncGoerli:  "https://goerli.explorer.zksync.io",
	ChainIDZkSyncSepolia: "https://sepolia.explorer.zksync.io",
	ChainIDZkSyncMainnet: "https://explorer.zksync.io",
}

// ExplorerURL returns the block explorer base URL for a chain, or "".
func ExplorerURL(chainID uint64) string {
	return explorers[chainID]
}
