package zksync

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const contractDeployerABIJSON = `[
	{"type":"function","name":"create","stateMutability":"payable","inputs":[
		{"name":"_salt","type":"bytes32"},
		{"name":"_bytecodeHash","type":"bytes32"},
		{"name":"_input","type":"bytes"}],
	 "outputs":[{"name":"","type":"address"}]},
	{"type":"event","name":"ContractDeployed","anonymous":false,"inputs":[
		{"name":"deployerAddress","type":"address","indexed":true},
		{"name":"bytecodeHash","type":"bytes32","indexed":true},
		{"name":"contractAddress","type":"address","indexed":true}]}
]`

var contractDeployerABI = mustParseABI(contractDeployerABIJSON)

// ContractDeployedTopic is the topic of the ContractDeployer's ContractDeployed event.
var ContractDeployedTopic = contractDeployerABI.Events["ContractDeployed"].ID

// EncodeCreate returns calldata for ContractDeployer.create with a zero salt.
func EncodeCreate(bytecodeHash common.Hash, constructorArgs []byte) ([]byte, error) {
	if constructorArgs == nil {
		constructorArgs = []byte{}
	}
	var salt [32]byte
	data, err := contractDeployerABI.Pack("create", salt, [32]byte(bytecodeHash), constructorArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to pack create call: %w", err)
	}
	return data, nil
}

// DeployedContractAddress returns the address of the last contract deployed
// by deployer according to the ContractDeployed events in logs.
func DeployedContractAddress(logs []*types.Log, deployer common.Address) (common.Address, error) {
	var (
		found bool
		addr  common.Address
	)
	for _, log := range logs {
		if log.Address != ContractDeployerAddress || len(log.Topics) != 4 {
			continue
		}
		if log.Topics[0] != ContractDeployedTopic {
			continue
		}
		if common.BytesToAddress(log.Topics[1].Bytes()) != deployer {
			continue
		}
		addr = common.BytesToAddress(log.Topics[3].Bytes())
		found = true
	}
	if !found {
		return common.Address{}, fmt.Errorf("no ContractDeployed event for deployer %s", deployer.Hex())
	}
	return addr, nil
}
