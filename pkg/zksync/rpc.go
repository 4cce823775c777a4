package zksync

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// byteArray marshals as a JSON array of numbers, the form the zkSync node
// expects for factory deps and paymaster input inside eip712Meta.
type byteArray []byte

func (b byteArray) MarshalJSON() ([]byte, error) {
	nums := make([]uint16, len(b))
	for i, v := range b {
		nums[i] = uint16(v)
	}
	return json.Marshal(nums)
}

type paymasterParamsJSON struct {
	Paymaster      common.Address `json:"paymaster"`
	PaymasterInput byteArray      `json:"paymasterInput"`
}

// EIP712Meta is the zkSync specific part of a call request.
type EIP712Meta struct {
	GasPerPubdata   *hexutil.Big         `json:"gasPerPubdata,omitempty"`
	FactoryDeps     []byteArray          `json:"factoryDeps,omitempty"`
	PaymasterParams *paymasterParamsJSON `json:"paymasterParams,omitempty"`
}

// CallRequest is the argument of eth_estimateGas and eth_call on zkSync.
type CallRequest struct {
	From       common.Address  `json:"from"`
	To         *common.Address `json:"to,omitempty"`
	Value      *hexutil.Big    `json:"value,omitempty"`
	Data       hexutil.Bytes   `json:"data,omitempty"`
	Type       hexutil.Uint64  `json:"type"`
	EIP712Meta *EIP712Meta     `json:"eip712Meta,omitempty"`
}

// NewCallRequest builds an EIP-712 call request.
func NewCallRequest(from common.Address, to *common.Address, value *big.Int, data []byte, factoryDeps [][]byte, gasPerPubdata *big.Int, pm *PaymasterParams) *CallRequest {
	if gasPerPubdata == nil {
		gasPerPubdata = big.NewInt(DefaultGasPerPubdataLimit)
	}
	meta := &EIP712Meta{
		GasPerPubdata: (*hexutil.Big)(gasPerPubdata),
	}
	for _, dep := range factoryDeps {
		meta.FactoryDeps = append(meta.FactoryDeps, byteArray(dep))
	}
	if pm != nil {
		meta.PaymasterParams = &paymasterParamsJSON{
			Paymaster:      pm.Paymaster,
			PaymasterInput: byteArray(pm.PaymasterInput),
		}
	}

	req := &CallRequest{
		From:       from,
		To:         to,
		Data:       data,
		Type:       EIP712TxType,
		EIP712Meta: meta,
	}
	if value != nil && value.Sign() > 0 {
		req.Value = (*hexutil.Big)(value)
	}
	return req
}
