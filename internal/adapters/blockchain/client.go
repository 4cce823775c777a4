package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
	"github.com/trebuchet-org/zkpm/internal/usecase"
	"github.com/trebuchet-org/zkpm/pkg/zksync"
)

const defaultPollInterval = time.Second

const erc20BalanceABI = `[{"type":"function","name":"balanceOf","stateMutability":"view",
	"inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}]`

var erc20ABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc20BalanceABI))
	if err != nil {
		panic(err)
	}
	return parsed
}()

// Client implements usecase.ChainClient against a zkSync node. Every
// transaction is sent as a signed EIP-712 (0x71) transaction and awaited.
type Client struct {
	cfg *config.RuntimeConfig
	log *slog.Logger

	mu  sync.Mutex
	rpc *rpc.Client
	eth *ethclient.Client
}

// NewClient creates a client for the configured network. The connection is
// opened on first use.
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		log: log,
	}
}

func (c *Client) connect(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.eth != nil {
		return c.eth, nil
	}
	if c.cfg.Network == nil {
		return nil, domain.ErrNoNetwork
	}

	client, err := rpc.DialContext(ctx, c.cfg.Network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	c.rpc = client
	c.eth = ethclient.NewClient(client)
	c.log.Debug("connected", "network", c.cfg.Network.Name, "rpc", c.cfg.Network.RPCURL)
	return c.eth, nil
}

// Close releases the connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.eth != nil {
		c.eth.Close()
		c.eth, c.rpc = nil, nil
	}
}

// ChainID returns the chain ID reported by the node
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	eth, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	id, err := eth.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

// BalanceAt returns the native balance of account
func (c *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	eth, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return eth.BalanceAt(ctx, account, nil)
}

// TokenBalance returns the ERC20 balance of holder
func (c *Client) TokenBalance(ctx context.Context, token, holder common.Address) (*big.Int, error) {
	eth, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(token, erc20ABI, eth, eth, eth)
	var out []interface{}
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", holder); err != nil {
		return nil, err
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result %T", out[0])
	}
	return balance, nil
}

// GasPrice returns the node's current gas price
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	eth, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return eth.SuggestGasPrice(ctx)
}

// EstimateGas estimates req including its zkSync metadata
func (c *Client) EstimateGas(ctx context.Context, req *models.TxRequest) (uint64, error) {
	if _, err := c.connect(ctx); err != nil {
		return 0, err
	}

	call := zksync.NewCallRequest(req.From, req.To, req.Value, req.Data, req.FactoryDeps, req.GasPerPubdata, req.PaymasterParams)
	var gas hexutil.Uint64
	if err := c.rpc.CallContext(ctx, &gas, "eth_estimateGas", call); err != nil {
		return 0, err
	}
	return uint64(gas), nil
}

// Deploy deploys artifact through the ContractDeployer system contract
func (c *Client) Deploy(ctx context.Context, signer *models.Wallet, artifact *models.Artifact, args ...interface{}) (*models.DeployedContract, error) {
	bytecodeHash, err := zksync.HashBytecode(artifact.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", artifact.Name, err)
	}
	ctorArgs, err := artifact.ABI.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}
	data, err := zksync.EncodeCreate(bytecodeHash, ctorArgs)
	if err != nil {
		return nil, err
	}

	deployer := zksync.ContractDeployerAddress
	receipt, err := c.Transact(ctx, signer, &models.TxRequest{
		To:          &deployer,
		Data:        data,
		FactoryDeps: [][]byte{artifact.Bytecode},
	})
	if err != nil {
		return nil, err
	}

	address, err := zksync.DeployedContractAddress(receipt.Logs, signer.Address)
	if err != nil {
		return nil, err
	}
	return &models.DeployedContract{
		Name:         artifact.Name,
		Address:      address,
		TxHash:       receipt.TxHash,
		BytecodeHash: bytecodeHash,
	}, nil
}

// Transfer sends amount of native currency to to
func (c *Client) Transfer(ctx context.Context, signer *models.Wallet, to common.Address, amount *big.Int) (*models.Receipt, error) {
	return c.Transact(ctx, signer, &models.TxRequest{
		To:    &to,
		Value: amount,
	})
}

// Transact signs, sends and awaits req. Missing gas limit and gas price are
// filled in from the node.
func (c *Client) Transact(ctx context.Context, signer *models.Wallet, req *models.TxRequest) (*models.Receipt, error) {
	eth, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	filled := *req
	filled.From = signer.Address
	if filled.GasPerPubdata == nil {
		filled.GasPerPubdata = big.NewInt(zksync.DefaultGasPerPubdataLimit)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	nonce, err := eth.NonceAt(ctx, signer.Address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	if filled.GasPrice == nil {
		if filled.GasPrice, err = eth.SuggestGasPrice(ctx); err != nil {
			return nil, fmt.Errorf("failed to get gas price: %w", err)
		}
	}
	if filled.GasLimit == 0 {
		if filled.GasLimit, err = c.EstimateGas(ctx, &filled); err != nil {
			return nil, fmt.Errorf("failed to estimate gas: %w", err)
		}
	}

	tx := &zksync.Transaction712{
		Nonce:           nonce,
		GasTipCap:       new(big.Int),
		GasFeeCap:       filled.GasPrice,
		Gas:             filled.GasLimit,
		To:              filled.To,
		Value:           filled.Value,
		Data:            filled.Data,
		ChainID:         chainID,
		From:            signer.Address,
		GasPerPubdata:   filled.GasPerPubdata,
		FactoryDeps:     filled.FactoryDeps,
		PaymasterParams: filled.PaymasterParams,
	}
	if err := tx.Sign(signer.PrivateKey); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}

	var hash common.Hash
	if err := c.rpc.CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(raw)); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	c.log.Debug("sent transaction", "tx", hash.Hex(), "nonce", nonce, "gas", filled.GasLimit)

	return c.waitReceipt(ctx, eth, hash)
}

func (c *Client) waitReceipt(ctx context.Context, eth *ethclient.Client, hash common.Hash) (*models.Receipt, error) {
	interval := c.cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, err := eth.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return nil, fmt.Errorf("%w: %s", domain.ErrTransactionReverted, hash.Hex())
			}
			result := &models.Receipt{
				TxHash:  hash,
				GasUsed: receipt.GasUsed,
				Logs:    receipt.Logs,
			}
			if receipt.BlockNumber != nil {
				result.BlockNumber = receipt.BlockNumber.Uint64()
			}
			return result, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get receipt for %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// Ensure the adapter implements the interface
var _ usecase.ChainClient = (*Client)(nil)
