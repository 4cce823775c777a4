package models

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/zkpm/pkg/zksync"
)

// FlowType selects how a paymaster is asked to sponsor a transaction.
type FlowType string

const (
	FlowApprovalBased FlowType = "approval-based"
	FlowGeneral       FlowType = "general"
)

// Sponsorship describes who pays the fee of a transaction and on which terms.
type Sponsorship struct {
	Flow             FlowType
	Paymaster        common.Address
	Token            common.Address
	MinimalAllowance *big.Int
	InnerInput       []byte
}

// PaymasterParams encodes the sponsorship into transaction metadata.
func (s *Sponsorship) PaymasterParams() (*zksync.PaymasterParams, error) {
	var input zksync.PaymasterInput
	switch s.Flow {
	case FlowApprovalBased:
		input = &zksync.ApprovalBasedPaymasterInput{
			Token:            s.Token,
			MinimalAllowance: s.MinimalAllowance,
			InnerInput:       s.InnerInput,
		}
	case FlowGeneral:
		input = &zksync.GeneralPaymasterInput{InnerInput: s.InnerInput}
	default:
		return nil, fmt.Errorf("unsupported paymaster flow %q", s.Flow)
	}
	return zksync.GetPaymasterParams(s.Paymaster, input)
}
