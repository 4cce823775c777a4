package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/zkpm/pkg/zksync"
)

// TxRequest is a transaction to be signed and submitted. A zero GasLimit
// means the gas is estimated before sending, a nil GasPrice means the
// node's current price is used.
type TxRequest struct {
	From            common.Address
	To              *common.Address
	Value           *big.Int
	Data            []byte
	GasLimit        uint64
	GasPrice        *big.Int
	GasPerPubdata   *big.Int
	FactoryDeps     [][]byte
	PaymasterParams *zksync.PaymasterParams
}

// Receipt is the confirmation of a mined transaction.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	Logs        []*types.Log
}
