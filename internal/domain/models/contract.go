package models

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Artifact is a compiled contract: its ABI and deployable bytecode.
type Artifact struct {
	Name     string
	Path     string
	ABI      abi.ABI
	Bytecode []byte
}

// DeployedContract references a contract whose deployment has been confirmed.
type DeployedContract struct {
	Name         string
	Address      common.Address
	TxHash       common.Hash
	BytecodeHash common.Hash
}
