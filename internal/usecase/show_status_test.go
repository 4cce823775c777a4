package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

func TestShowStatus(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain(domain.ChainIDZkSyncSepolia)
	d := deployed(t, chain)

	t.Run("balances of paymaster and wallet", func(t *testing.T) {
		uc := usecase.NewShowStatus(testConfig(), chain, &MockDeploymentStore{})
		result, err := uc.Run(ctx, usecase.ShowStatusParams{
			ERC20Address:     d.ERC20Address,
			PaymasterAddress: d.PaymasterAddress,
			WalletAddress:    d.WalletAddress,
		})
		require.NoError(t, err)

		assert.Equal(t, uint64(300), result.ChainID)
		assert.True(t, result.Accepted)
		require.Len(t, result.Accounts, 2)

		assert.Equal(t, "paymaster", result.Accounts[0].Label)
		assert.Equal(t, ether("0.06").String(), result.Accounts[0].Balance.String())
		assert.Equal(t, "0", result.Accounts[0].TokenBalance.String())

		assert.Equal(t, "wallet", result.Accounts[1].Label)
		assert.Equal(t, "0", result.Accounts[1].Balance.String())
		assert.Equal(t, "3", result.Accounts[1].TokenBalance.String())
	})

	t.Run("addresses from deployment record", func(t *testing.T) {
		store := &MockDeploymentStore{}
		store.On("Load", mock.Anything, "deployment.yaml").Return(&models.DeploymentRecord{
			ERC20:     d.ERC20Address.Hex(),
			Paymaster: d.PaymasterAddress.Hex(),
			Wallet:    d.WalletAddress.Hex(),
		}, nil)

		uc := usecase.NewShowStatus(testConfig(), chain, store)
		result, err := uc.Run(ctx, usecase.ShowStatusParams{DeploymentFile: "deployment.yaml"})
		require.NoError(t, err)

		assert.Equal(t, d.ERC20Address, result.ERC20)
		assert.Len(t, result.Accounts, 2)
	})

	t.Run("unknown token fails", func(t *testing.T) {
		uc := usecase.NewShowStatus(testConfig(), chain, &MockDeploymentStore{})
		_, err := uc.Run(ctx, usecase.ShowStatusParams{
			ERC20Address:     d.PaymasterAddress,
			PaymasterAddress: d.PaymasterAddress,
		})

		assert.ErrorContains(t, err, "failed to get paymaster token balance")
	})

	t.Run("addresses are required", func(t *testing.T) {
		uc := usecase.NewShowStatus(testConfig(), chain, &MockDeploymentStore{})
		_, err := uc.Run(ctx, usecase.ShowStatusParams{})

		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})
}
