package models

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/zkpm/pkg/zksync"
)

func TestSponsorship_PaymasterParams(t *testing.T) {
	paymaster := common.HexToAddress("0x1111111111111111111111111111111111111111")
	token := common.HexToAddress("0x2222222222222222222222222222222222222222")

	t.Run("approval based", func(t *testing.T) {
		s := &Sponsorship{
			Flow:             FlowApprovalBased,
			Paymaster:        paymaster,
			Token:            token,
			MinimalAllowance: big.NewInt(1),
			InnerInput:       []byte{},
		}

		params, err := s.PaymasterParams()
		require.NoError(t, err)
		assert.Equal(t, paymaster, params.Paymaster)

		decoded, err := zksync.DecodePaymasterInput(params.PaymasterInput)
		require.NoError(t, err)
		flow := decoded.(*zksync.ApprovalBasedPaymasterInput)
		assert.Equal(t, token, flow.Token)
		assert.Equal(t, int64(1), flow.MinimalAllowance.Int64())
		assert.Empty(t, flow.InnerInput)

		again, err := s.PaymasterParams()
		require.NoError(t, err)
		assert.Equal(t, params, again)
	})

	t.Run("general", func(t *testing.T) {
		s := &Sponsorship{Flow: FlowGeneral, Paymaster: paymaster}
		params, err := s.PaymasterParams()
		require.NoError(t, err)
		assert.Equal(t, zksync.GeneralSelector, params.PaymasterInput[:4])
	})

	t.Run("unknown flow", func(t *testing.T) {
		s := &Sponsorship{Flow: "sponsor-everything", Paymaster: paymaster}
		_, err := s.PaymasterParams()
		assert.Error(t, err)
	})
}
