package zksync

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const paymasterFlowABIJSON = `[
	{"type":"function","name":"approvalBased","stateMutability":"nonpayable","outputs":[],"inputs":[
		{"name":"_token","type":"address"},
		{"name":"_minAllowance","type":"uint256"},
		{"name":"_innerInput","type":"bytes"}]},
	{"type":"function","name":"general","stateMutability":"nonpayable","outputs":[],"inputs":[
		{"name":"input","type":"bytes"}]}
]`

var paymasterFlowABI = mustParseABI(paymasterFlowABIJSON)

var (
	// ApprovalBasedSelector is the selector of approvalBased(address,uint256,bytes).
	ApprovalBasedSelector = paymasterFlowABI.Methods["approvalBased"].ID
	// GeneralSelector is the selector of general(bytes).
	GeneralSelector = paymasterFlowABI.Methods["general"].ID
)

// ErrUnknownPaymasterFlow is returned when a paymaster input does not start
// with a known flow selector.
var ErrUnknownPaymasterFlow = errors.New("unknown paymaster flow")

// PaymasterParams is the sponsorship metadata attached to an EIP-712
// transaction.
type PaymasterParams struct {
	Paymaster      common.Address
	PaymasterInput []byte
}

// PaymasterInput is a paymaster flow that can be encoded into paymaster input bytes.
type PaymasterInput interface {
	Encode() ([]byte, error)
}

// ApprovalBasedPaymasterInput asks the paymaster to check that the caller has
// granted it at least MinimalAllowance of Token before covering the fee.
type ApprovalBasedPaymasterInput struct {
	Token            common.Address
	MinimalAllowance *big.Int
	InnerInput       []byte
}

// Encode packs the input as an approvalBased call.
func (in *ApprovalBasedPaymasterInput) Encode() ([]byte, error) {
	if in.MinimalAllowance == nil || in.MinimalAllowance.Sign() < 0 {
		return nil, fmt.Errorf("minimal allowance must be a non-negative integer")
	}
	inner := in.InnerInput
	if inner == nil {
		inner = []byte{}
	}
	return paymasterFlowABI.Pack("approvalBased", in.Token, in.MinimalAllowance, inner)
}

// GeneralPaymasterInput passes opaque bytes to the paymaster.
type GeneralPaymasterInput struct {
	InnerInput []byte
}

// Encode packs the input as a general call.
func (in *GeneralPaymasterInput) Encode() ([]byte, error) {
	inner := in.InnerInput
	if inner == nil {
		inner = []byte{}
	}
	return paymasterFlowABI.Pack("general", inner)
}

// GetPaymasterParams builds the paymaster params for the given paymaster and flow.
func GetPaymasterParams(paymaster common.Address, input PaymasterInput) (*PaymasterParams, error) {
	if input == nil {
		return nil, fmt.Errorf("paymaster input is required")
	}
	encoded, err := input.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode paymaster input: %w", err)
	}
	return &PaymasterParams{
		Paymaster:      paymaster,
		PaymasterInput: encoded,
	}, nil
}

// DecodePaymasterInput decodes paymaster input bytes back into a flow.
func DecodePaymasterInput(data []byte) (PaymasterInput, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("paymaster input too short: %d bytes", len(data))
	}
	selector, args := data[:4], data[4:]

	switch {
	case bytes.Equal(selector, ApprovalBasedSelector):
		values, err := paymasterFlowABI.Methods["approvalBased"].Inputs.Unpack(args)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack approvalBased input: %w", err)
		}
		return &ApprovalBasedPaymasterInput{
			Token:            values[0].(common.Address),
			MinimalAllowance: values[1].(*big.Int),
			InnerInput:       values[2].([]byte),
		}, nil
	case bytes.Equal(selector, GeneralSelector):
		values, err := paymasterFlowABI.Methods["general"].Inputs.Unpack(args)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack general input: %w", err)
		}
		return &GeneralPaymasterInput{InnerInput: values[0].([]byte)}, nil
	default:
		return nil, fmt.Errorf("%w: selector 0x%x", ErrUnknownPaymasterFlow, selector)
	}
}
