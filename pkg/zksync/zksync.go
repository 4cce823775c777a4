// Package zksync implements the pieces of the zkSync Era transaction format
// needed to deploy contracts and submit paymaster-sponsored transactions with
// a plain go-ethereum client: the EIP-712 (type 0x71) transaction, paymaster
// flow encoding and the versioned bytecode hash.
package zksync

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// EIP712TxType is the transaction type byte of zkSync EIP-712 transactions.
	EIP712TxType = 0x71

	// DefaultGasPerPubdataLimit is the gas per pubdata byte limit used when
	// the caller does not set one.
	DefaultGasPerPubdataLimit = 50000
)

// System contracts
var (
	ContractDeployerAddress = common.HexToAddress("0x0000000000000000000000000000000000008006")
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}
