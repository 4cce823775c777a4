package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
	"github.com/trebuchet-org/zkpm/pkg/zksync"
)

// DeployPaymasterParams contains parameters for deploying the token and paymaster
type DeployPaymasterParams struct {
	// RecordPath, when set, receives a deployment record for later runs
	RecordPath string
}

// DeployPaymasterResult contains everything the paymaster client needs
type DeployPaymasterResult struct {
	ChainID          uint64
	PrivateKey       string
	WalletAddress    common.Address
	ERC20Address     common.Address
	PaymasterAddress common.Address

	ERC20              *models.DeployedContract
	Paymaster          *models.DeployedContract
	FundingTx          common.Hash
	MintTx             common.Hash
	PaymasterBalance   *big.Int
	WalletTokenBalance *big.Int
	RecordPath         string
}

// DeployPaymaster deploys the ERC20 token and the approval based paymaster,
// funds the paymaster and mints tokens to a freshly generated wallet.
type DeployPaymaster struct {
	config    *config.RuntimeConfig
	client    ChainClient
	artifacts ArtifactLoader
	keys      KeyGenerator
	store     DeploymentStore
	local     LocalConfigRepository
	guard     *networkGuard
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployPaymaster creates a new DeployPaymaster use case
func NewDeployPaymaster(
	cfg *config.RuntimeConfig,
	client ChainClient,
	artifacts ArtifactLoader,
	keys KeyGenerator,
	store DeploymentStore,
	local LocalConfigRepository,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployPaymaster {
	return &DeployPaymaster{
		config:    cfg,
		client:    client,
		artifacts: artifacts,
		keys:      keys,
		store:     store,
		local:     local,
		guard:     &networkGuard{config: cfg, client: client, confirmer: confirmer, progress: progress},
		progress:  progress,
		log:       log,
	}
}

// Run executes the deployment. Steps run strictly in order and the first
// failure aborts the run; nothing is rolled back.
func (uc *DeployPaymaster) Run(ctx context.Context, params DeployPaymasterParams) (*DeployPaymasterResult, error) {
	uc.progress.ReportStage(ctx, StageCheckingNetwork)
	chainID, err := uc.guard.check(ctx, "Deploying the paymaster", 0)
	if err != nil {
		return nil, err
	}

	if uc.config.DeployerPrivateKey == "" {
		return nil, domain.ErrNoDeployerKey
	}
	deployer, err := models.WalletFromHex(uc.config.DeployerPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployer key: %w", err)
	}

	funding, err := zksync.ParseEther(uc.config.Deploy.PaymasterFunding)
	if err != nil {
		return nil, fmt.Errorf("invalid paymaster funding: %w", err)
	}

	erc20Artifact, err := uc.artifacts.Load(ctx, uc.config.Artifacts.ERC20)
	if err != nil {
		return nil, fmt.Errorf("failed to load ERC20 artifact: %w", err)
	}
	paymasterArtifact, err := uc.artifacts.Load(ctx, uc.config.Artifacts.Paymaster)
	if err != nil {
		return nil, fmt.Errorf("failed to load paymaster artifact: %w", err)
	}

	wallet, err := uc.keys.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate wallet: %w", err)
	}
	uc.log.Info("generated wallet", "address", wallet.Address.Hex(), "private_key", wallet.PrivateKeyHex())

	result := &DeployPaymasterResult{
		ChainID:       chainID,
		PrivateKey:    wallet.PrivateKeyHex(),
		WalletAddress: wallet.Address,
	}

	uc.progress.ReportStage(ctx, StageDeployingToken)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageDeployingToken, Message: "Deploying " + erc20Artifact.Name, Spinner: true})
	result.ERC20, err = uc.client.Deploy(ctx, deployer, erc20Artifact,
		uc.config.Deploy.TokenName, uc.config.Deploy.TokenSymbol, uc.config.Deploy.TokenDecimals)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy ERC20: %w", err)
	}
	result.ERC20Address = result.ERC20.Address
	uc.log.Info("deployed ERC20", "address", result.ERC20Address.Hex(), "tx", result.ERC20.TxHash.Hex())

	uc.progress.ReportStage(ctx, StageDeployingPaymaster)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageDeployingPaymaster, Message: "Deploying " + paymasterArtifact.Name, Spinner: true})
	result.Paymaster, err = uc.client.Deploy(ctx, deployer, paymasterArtifact, result.ERC20Address)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy paymaster: %w", err)
	}
	result.PaymasterAddress = result.Paymaster.Address
	uc.log.Info("deployed paymaster", "address", result.PaymasterAddress.Hex(), "tx", result.Paymaster.TxHash.Hex())

	uc.progress.ReportStage(ctx, StageFunding)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageFunding, Message: "Funding paymaster with " + zksync.FormatEther(funding) + " ETH", Spinner: true})
	receipt, err := uc.client.Transfer(ctx, deployer, result.PaymasterAddress, funding)
	if err != nil {
		return nil, fmt.Errorf("failed to fund paymaster: %w", err)
	}
	result.FundingTx = receipt.TxHash

	result.PaymasterBalance, err = uc.client.BalanceAt(ctx, result.PaymasterAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get paymaster balance: %w", err)
	}
	uc.log.Info("paymaster balance", "address", result.PaymasterAddress.Hex(), "balance", zksync.FormatEther(result.PaymasterBalance))

	uc.progress.ReportStage(ctx, StageMinting)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageMinting, Message: "Minting tokens to the wallet", Spinner: true})
	data, err := erc20Artifact.ABI.Pack("mint", wallet.Address, big.NewInt(uc.config.Deploy.InitialMint))
	if err != nil {
		return nil, fmt.Errorf("failed to encode mint: %w", err)
	}
	receipt, err = uc.client.Transact(ctx, deployer, &models.TxRequest{
		To:   &result.ERC20Address,
		Data: data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mint tokens: %w", err)
	}
	result.MintTx = receipt.TxHash

	result.WalletTokenBalance, err = uc.client.TokenBalance(ctx, result.ERC20Address, wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet token balance: %w", err)
	}
	uc.log.Info("minted tokens", "wallet", wallet.Address.Hex(), "balance", result.WalletTokenBalance.String())

	if params.RecordPath != "" {
		record := &models.DeploymentRecord{
			ChainID:    chainID,
			ERC20:      result.ERC20Address.Hex(),
			Paymaster:  result.PaymasterAddress.Hex(),
			Wallet:     wallet.Address.Hex(),
			DeployedAt: time.Now().UTC(),
		}
		if uc.config.Network != nil {
			record.Network = uc.config.Network.Name
		}
		if err := uc.store.Save(ctx, params.RecordPath, record); err != nil {
			return nil, fmt.Errorf("failed to save deployment record: %w", err)
		}
		result.RecordPath = params.RecordPath

		if err := uc.rememberDeployment(ctx, record.Network, params.RecordPath); err != nil {
			uc.log.Warn("failed to update local config", "path", uc.local.GetPath(), "error", err)
		}
	}

	uc.progress.ReportStage(ctx, StageCompleted)
	return result, nil
}

// rememberDeployment makes the record the default for later commands
func (uc *DeployPaymaster) rememberDeployment(ctx context.Context, network, recordPath string) error {
	local, err := uc.local.Load(ctx)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(recordPath); err == nil {
		recordPath = abs
	}
	local.Deployment = recordPath
	// Only names from zkpm.toml can be resolved again
	if _, ok := uc.config.Networks[network]; ok {
		local.Network = network
	}
	return uc.local.Save(ctx, local)
}
