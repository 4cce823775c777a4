package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
	"github.com/trebuchet-org/zkpm/pkg/zksync"
)

// UsePaymasterParams contains parameters for a sponsored mint
type UsePaymasterParams struct {
	PrivateKey       string
	ERC20Address     common.Address
	PaymasterAddress common.Address
	// DeploymentFile fills in addresses left zero above
	DeploymentFile string
	// ConfirmedChainID is a chain the user already approved in this run
	ConfirmedChainID uint64
}

// UsePaymasterResult contains balances around the sponsored mint
type UsePaymasterResult struct {
	ChainID          uint64
	WalletAddress    common.Address
	ERC20Address     common.Address
	PaymasterAddress common.Address

	GasPrice     *big.Int
	GasLimit     uint64
	EstimatedFee *big.Int
	TxHash       common.Hash

	WalletTokenBalanceBefore *big.Int
	WalletTokenBalanceAfter  *big.Int
	PaymasterBalanceBefore   *big.Int
	PaymasterBalanceAfter    *big.Int
	PaymasterTokenBalance    *big.Int
}

// UsePaymaster mints tokens from a wallet holding no native currency, with
// the fee paid by the paymaster in exchange for the token.
type UsePaymaster struct {
	config    *config.RuntimeConfig
	client    ChainClient
	artifacts ArtifactLoader
	store     DeploymentStore
	guard     *networkGuard
	progress  ProgressSink
	log       *slog.Logger
}

// NewUsePaymaster creates a new UsePaymaster use case
func NewUsePaymaster(
	cfg *config.RuntimeConfig,
	client ChainClient,
	artifacts ArtifactLoader,
	store DeploymentStore,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *UsePaymaster {
	return &UsePaymaster{
		config:    cfg,
		client:    client,
		artifacts: artifacts,
		store:     store,
		guard:     &networkGuard{config: cfg, client: client, confirmer: confirmer, progress: progress},
		progress:  progress,
		log:       log,
	}
}

// Run executes the sponsored mint
func (uc *UsePaymaster) Run(ctx context.Context, params UsePaymasterParams) (*UsePaymasterResult, error) {
	if err := uc.fillFromRecord(ctx, &params); err != nil {
		return nil, err
	}
	if params.ERC20Address == (common.Address{}) || params.PaymasterAddress == (common.Address{}) {
		return nil, fmt.Errorf("%w: token and paymaster addresses are required", domain.ErrInvalidAddress)
	}

	uc.progress.ReportStage(ctx, StageCheckingNetwork)
	chainID, err := uc.guard.check(ctx, "Sending a sponsored transaction", params.ConfirmedChainID)
	if err != nil {
		return nil, err
	}

	wallet, err := models.WalletFromHex(params.PrivateKey)
	if err != nil {
		return nil, err
	}

	result := &UsePaymasterResult{
		ChainID:          chainID,
		WalletAddress:    wallet.Address,
		ERC20Address:     params.ERC20Address,
		PaymasterAddress: params.PaymasterAddress,
	}

	balance, err := uc.client.BalanceAt(ctx, wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet balance: %w", err)
	}
	if balance.Sign() != 0 {
		return nil, fmt.Errorf("%w: %s holds %s ETH", domain.ErrWalletNotEmpty, wallet.Address.Hex(), zksync.FormatEther(balance))
	}

	result.WalletTokenBalanceBefore, err = uc.client.TokenBalance(ctx, params.ERC20Address, wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet token balance: %w", err)
	}
	uc.log.Info("wallet token balance", "wallet", wallet.Address.Hex(), "balance", result.WalletTokenBalanceBefore.String())

	result.PaymasterBalanceBefore, err = uc.client.BalanceAt(ctx, params.PaymasterAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get paymaster balance: %w", err)
	}
	uc.log.Info("paymaster balance", "address", params.PaymasterAddress.Hex(), "balance", zksync.FormatEther(result.PaymasterBalanceBefore))

	result.GasPrice, err = uc.client.GasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	sponsorship := &models.Sponsorship{
		Flow:             models.FlowApprovalBased,
		Paymaster:        params.PaymasterAddress,
		Token:            params.ERC20Address,
		MinimalAllowance: big.NewInt(uc.config.Use.MinimalAllowance),
		InnerInput:       []byte{},
	}
	paymasterParams, err := sponsorship.PaymasterParams()
	if err != nil {
		return nil, fmt.Errorf("failed to build paymaster params: %w", err)
	}

	erc20Artifact, err := uc.artifacts.Load(ctx, uc.config.Artifacts.ERC20)
	if err != nil {
		return nil, fmt.Errorf("failed to load ERC20 artifact: %w", err)
	}
	data, err := erc20Artifact.ABI.Pack("mint", wallet.Address, big.NewInt(uc.config.Use.MintAmount))
	if err != nil {
		return nil, fmt.Errorf("failed to encode mint: %w", err)
	}

	req := &models.TxRequest{
		From:            wallet.Address,
		To:              &params.ERC20Address,
		Data:            data,
		GasPrice:        result.GasPrice,
		GasPerPubdata:   big.NewInt(zksync.DefaultGasPerPubdataLimit),
		PaymasterParams: paymasterParams,
	}

	uc.progress.ReportStage(ctx, StageEstimating)
	result.GasLimit, err = uc.client.EstimateGas(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	req.GasLimit = result.GasLimit

	result.EstimatedFee = new(big.Int).Mul(result.GasPrice, new(big.Int).SetUint64(result.GasLimit))
	uc.log.Info("estimated fee", "gas_limit", result.GasLimit, "gas_price", result.GasPrice.String(), "fee", zksync.FormatEther(result.EstimatedFee))

	uc.progress.ReportStage(ctx, StageSponsoredMint)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageSponsoredMint, Message: "Minting with fee paid by the paymaster", Spinner: true})
	receipt, err := uc.client.Transact(ctx, wallet, req)
	if err != nil {
		return nil, fmt.Errorf("failed to send sponsored mint: %w", err)
	}
	result.TxHash = receipt.TxHash

	result.PaymasterTokenBalance, err = uc.client.TokenBalance(ctx, params.ERC20Address, params.PaymasterAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get paymaster token balance: %w", err)
	}
	result.PaymasterBalanceAfter, err = uc.client.BalanceAt(ctx, params.PaymasterAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get paymaster balance: %w", err)
	}
	result.WalletTokenBalanceAfter, err = uc.client.TokenBalance(ctx, params.ERC20Address, wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet token balance: %w", err)
	}
	uc.log.Info("sponsored mint confirmed",
		"tx", result.TxHash.Hex(),
		"paymaster_tokens", result.PaymasterTokenBalance.String(),
		"paymaster_balance", zksync.FormatEther(result.PaymasterBalanceAfter),
		"wallet_tokens", result.WalletTokenBalanceAfter.String(),
	)

	uc.progress.ReportStage(ctx, StageCompleted)
	return result, nil
}

func (uc *UsePaymaster) fillFromRecord(ctx context.Context, params *UsePaymasterParams) error {
	path := params.DeploymentFile
	if path == "" && (params.ERC20Address == (common.Address{}) || params.PaymasterAddress == (common.Address{})) {
		path = uc.config.Deployment
	}
	if path == "" {
		return nil
	}
	record, err := uc.store.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load deployment record: %w", err)
	}

	if params.ERC20Address == (common.Address{}) {
		if params.ERC20Address, err = parseAddress(record.ERC20); err != nil {
			return fmt.Errorf("deployment record erc20: %w", err)
		}
	}
	if params.PaymasterAddress == (common.Address{}) {
		if params.PaymasterAddress, err = parseAddress(record.Paymaster); err != nil {
			return fmt.Errorf("deployment record paymaster: %w", err)
		}
	}
	return nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}
