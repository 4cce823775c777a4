package usecase_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
	"github.com/trebuchet-org/zkpm/internal/usecase"
	"github.com/trebuchet-org/zkpm/pkg/zksync"
)

func newUsePaymaster(cfg *config.RuntimeConfig, chain *fakeChain, store *MockDeploymentStore) *usecase.UsePaymaster {
	return usecase.NewUsePaymaster(cfg, chain, fakeArtifacts{}, store, &MockConfirmer{}, usecase.NopProgress{}, discardLogger())
}

// deployed runs the deployment against chain and returns its result
func deployed(t *testing.T, chain *fakeChain) *usecase.DeployPaymasterResult {
	t.Helper()
	keys := &MockKeyGenerator{}
	keys.On("Generate").Return(generatedWallet(), nil)
	uc := newDeployPaymaster(testConfig(), chain, keys, &MockDeploymentStore{}, &MockConfirmer{}, usecase.NopProgress{})
	result, err := uc.Run(context.Background(), usecase.DeployPaymasterParams{})
	require.NoError(t, err)
	return result
}

func TestUsePaymaster(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmation of another chain does not carry over", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDZkSyncSepolia)
		d := deployed(t, chain)
		sent := len(chain.sent)

		cfg := testConfig()
		cfg.ConfirmChainIDs = []uint64{domain.ChainIDZkSyncSepolia}
		confirmer := &MockConfirmer{}
		confirmer.On("Confirm", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()

		uc := usecase.NewUsePaymaster(cfg, chain, fakeArtifacts{}, &MockDeploymentStore{}, confirmer, usecase.NopProgress{}, discardLogger())
		_, err := uc.Run(ctx, usecase.UsePaymasterParams{
			PrivateKey:       d.PrivateKey,
			ERC20Address:     d.ERC20Address,
			PaymasterAddress: d.PaymasterAddress,
			ConfirmedChainID: domain.ChainIDZkSyncMainnet,
		})

		assert.ErrorIs(t, err, domain.ErrAborted)
		assert.Len(t, chain.sent, sent)
		confirmer.AssertExpectations(t)
	})

	t.Run("fee is paid by the paymaster", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDZkSyncSepolia)
		d := deployed(t, chain)
		paymasterBefore := new(big.Int).Set(chain.balance(d.PaymasterAddress))

		uc := newUsePaymaster(testConfig(), chain, &MockDeploymentStore{})
		result, err := uc.Run(ctx, usecase.UsePaymasterParams{
			PrivateKey:       d.PrivateKey,
			ERC20Address:     d.ERC20Address,
			PaymasterAddress: d.PaymasterAddress,
		})
		require.NoError(t, err)

		assert.Equal(t, "3", result.WalletTokenBalanceBefore.String())
		assert.Equal(t, "8", result.WalletTokenBalanceAfter.String())
		assert.Equal(t, uint64(fakeGasEstimate), result.GasLimit)
		assert.Equal(t, new(big.Int).Mul(chain.gasPrice, big.NewInt(fakeGasEstimate)).String(), result.EstimatedFee.String())
		assert.Equal(t, paymasterBefore.String(), result.PaymasterBalanceBefore.String())
		assert.Equal(t, new(big.Int).Sub(paymasterBefore, result.EstimatedFee).String(), result.PaymasterBalanceAfter.String())

		native, err := chain.BalanceAt(ctx, result.WalletAddress)
		require.NoError(t, err)
		assert.Zero(t, native.Sign())

		// estimation carried the sponsorship metadata
		req := chain.lastEst
		require.NotNil(t, req)
		assert.Equal(t, result.WalletAddress, req.From)
		assert.Equal(t, big.NewInt(zksync.DefaultGasPerPubdataLimit), req.GasPerPubdata)
		require.NotNil(t, req.PaymasterParams)
		assert.Equal(t, d.PaymasterAddress, req.PaymasterParams.Paymaster)

		input, err := zksync.DecodePaymasterInput(req.PaymasterParams.PaymasterInput)
		require.NoError(t, err)
		approval, ok := input.(*zksync.ApprovalBasedPaymasterInput)
		require.True(t, ok)
		assert.Equal(t, d.ERC20Address, approval.Token)
		assert.Equal(t, "1", approval.MinimalAllowance.String())
		assert.Empty(t, approval.InnerInput)
	})

	t.Run("wallet with native balance is rejected", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDZkSyncSepolia)
		d := deployed(t, chain)
		chain.balances[d.WalletAddress] = big.NewInt(1)
		sentBefore := len(chain.sent)

		uc := newUsePaymaster(testConfig(), chain, &MockDeploymentStore{})
		_, err := uc.Run(ctx, usecase.UsePaymasterParams{
			PrivateKey:       d.PrivateKey,
			ERC20Address:     d.ERC20Address,
			PaymasterAddress: d.PaymasterAddress,
		})

		require.ErrorIs(t, err, domain.ErrWalletNotEmpty)
		assert.Contains(t, err.Error(), "the wallet is not empty")
		assert.Len(t, chain.sent, sentBefore)
	})

	t.Run("wrong network", func(t *testing.T) {
		chain := newFakeChain(5)

		uc := newUsePaymaster(testConfig(), chain, &MockDeploymentStore{})
		_, err := uc.Run(ctx, usecase.UsePaymasterParams{
			PrivateKey:       walletKey,
			ERC20Address:     common.HexToAddress("0x01"),
			PaymasterAddress: common.HexToAddress("0x02"),
		})

		assert.ErrorIs(t, err, domain.ErrWrongNetwork)
		assert.Empty(t, chain.sent)
	})

	t.Run("invalid private key", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDZkSyncSepolia)

		uc := newUsePaymaster(testConfig(), chain, &MockDeploymentStore{})
		_, err := uc.Run(ctx, usecase.UsePaymasterParams{
			PrivateKey:       "0xnothex",
			ERC20Address:     common.HexToAddress("0x01"),
			PaymasterAddress: common.HexToAddress("0x02"),
		})

		assert.ErrorIs(t, err, domain.ErrInvalidPrivateKey)
	})

	t.Run("missing addresses", func(t *testing.T) {
		uc := newUsePaymaster(testConfig(), newFakeChain(domain.ChainIDZkSyncSepolia), &MockDeploymentStore{})
		_, err := uc.Run(ctx, usecase.UsePaymasterParams{PrivateKey: walletKey})

		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})

	t.Run("addresses from deployment record", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDZkSyncSepolia)
		d := deployed(t, chain)
		store := &MockDeploymentStore{}
		store.On("Load", mock.Anything, "deployment.yaml").Return(&models.DeploymentRecord{
			ERC20:     d.ERC20Address.Hex(),
			Paymaster: d.PaymasterAddress.Hex(),
		}, nil).Once()

		uc := newUsePaymaster(testConfig(), chain, store)
		result, err := uc.Run(ctx, usecase.UsePaymasterParams{
			PrivateKey:     d.PrivateKey,
			DeploymentFile: "deployment.yaml",
		})
		require.NoError(t, err)

		assert.Equal(t, d.ERC20Address, result.ERC20Address)
		assert.Equal(t, d.PaymasterAddress, result.PaymasterAddress)
		store.AssertExpectations(t)
	})

	t.Run("falls back to the remembered deployment", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDZkSyncSepolia)
		d := deployed(t, chain)
		cfg := testConfig()
		cfg.Deployment = "/project/deployment.yaml"
		store := &MockDeploymentStore{}
		store.On("Load", mock.Anything, "/project/deployment.yaml").Return(&models.DeploymentRecord{
			ERC20:     d.ERC20Address.Hex(),
			Paymaster: d.PaymasterAddress.Hex(),
		}, nil).Once()

		uc := newUsePaymaster(cfg, chain, store)
		result, err := uc.Run(ctx, usecase.UsePaymasterParams{PrivateKey: d.PrivateKey})
		require.NoError(t, err)

		assert.Equal(t, "8", result.WalletTokenBalanceAfter.String())
		store.AssertExpectations(t)
	})

	t.Run("missing deployment record", func(t *testing.T) {
		store := &MockDeploymentStore{}
		store.On("Load", mock.Anything, "missing.yaml").Return(nil, domain.ErrDeploymentNotFound)

		uc := newUsePaymaster(testConfig(), newFakeChain(domain.ChainIDZkSyncSepolia), store)
		_, err := uc.Run(ctx, usecase.UsePaymasterParams{PrivateKey: walletKey, DeploymentFile: "missing.yaml"})

		assert.ErrorIs(t, err, domain.ErrDeploymentNotFound)
	})

	t.Run("paymaster without funds cannot sponsor", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDZkSyncSepolia)
		d := deployed(t, chain)
		chain.balances[d.PaymasterAddress] = new(big.Int)

		uc := newUsePaymaster(testConfig(), chain, &MockDeploymentStore{})
		_, err := uc.Run(ctx, usecase.UsePaymasterParams{
			PrivateKey:       d.PrivateKey,
			ERC20Address:     d.ERC20Address,
			PaymasterAddress: d.PaymasterAddress,
		})

		assert.ErrorContains(t, err, "failed to send sponsored mint")
	})
}
