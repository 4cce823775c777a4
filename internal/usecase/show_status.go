package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
	"golang.org/x/sync/errgroup"
)

// ShowStatusParams selects the accounts to inspect
type ShowStatusParams struct {
	ERC20Address     common.Address
	PaymasterAddress common.Address
	WalletAddress    common.Address // optional
	DeploymentFile   string
}

// AccountStatus holds the balances of one account
type AccountStatus struct {
	Label        string
	Address      common.Address
	Balance      *big.Int
	TokenBalance *big.Int
}

// ShowStatusResult contains the balances of the paymaster and wallet
type ShowStatusResult struct {
	ChainID  uint64
	Accepted bool
	ERC20    common.Address
	Accounts []AccountStatus
}

// ShowStatus reads balances without sending anything
type ShowStatus struct {
	config *config.RuntimeConfig
	client ChainClient
	store  DeploymentStore
}

// NewShowStatus creates a new ShowStatus use case
func NewShowStatus(cfg *config.RuntimeConfig, client ChainClient, store DeploymentStore) *ShowStatus {
	return &ShowStatus{
		config: cfg,
		client: client,
		store:  store,
	}
}

// Run queries all balances concurrently
func (uc *ShowStatus) Run(ctx context.Context, params ShowStatusParams) (*ShowStatusResult, error) {
	path := params.DeploymentFile
	if path == "" && (params.ERC20Address == (common.Address{}) || params.PaymasterAddress == (common.Address{})) {
		path = uc.config.Deployment
	}
	if path != "" {
		record, err := uc.store.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load deployment record: %w", err)
		}
		if params.ERC20Address == (common.Address{}) && common.IsHexAddress(record.ERC20) {
			params.ERC20Address = common.HexToAddress(record.ERC20)
		}
		if params.PaymasterAddress == (common.Address{}) && common.IsHexAddress(record.Paymaster) {
			params.PaymasterAddress = common.HexToAddress(record.Paymaster)
		}
		if params.WalletAddress == (common.Address{}) && common.IsHexAddress(record.Wallet) {
			params.WalletAddress = common.HexToAddress(record.Wallet)
		}
	}
	if params.ERC20Address == (common.Address{}) || params.PaymasterAddress == (common.Address{}) {
		return nil, fmt.Errorf("%w: token and paymaster addresses are required", domain.ErrInvalidAddress)
	}

	result := &ShowStatusResult{
		ERC20: params.ERC20Address,
		Accounts: []AccountStatus{
			{Label: "paymaster", Address: params.PaymasterAddress},
		},
	}
	if params.WalletAddress != (common.Address{}) {
		result.Accounts = append(result.Accounts, AccountStatus{Label: "wallet", Address: params.WalletAddress})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		chainID, err := uc.client.ChainID(gctx)
		if err != nil {
			return fmt.Errorf("failed to get chain ID: %w", err)
		}
		result.ChainID = chainID
		result.Accepted = lo.Contains(uc.config.AcceptedChainIDs, chainID)
		return nil
	})
	for i := range result.Accounts {
		account := &result.Accounts[i]
		g.Go(func() error {
			balance, err := uc.client.BalanceAt(gctx, account.Address)
			if err != nil {
				return fmt.Errorf("failed to get %s balance: %w", account.Label, err)
			}
			account.Balance = balance
			return nil
		})
		g.Go(func() error {
			balance, err := uc.client.TokenBalance(gctx, params.ERC20Address, account.Address)
			if err != nil {
				return fmt.Errorf("failed to get %s token balance: %w", account.Label, err)
			}
			account.TokenBalance = balance
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
