package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
	"github.com/trebuchet-org/zkpm/internal/usecase"
	"github.com/trebuchet-org/zkpm/pkg/zksync"
)

const (
	deployerKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	walletKey   = "0x8f2a55949038a9610f50fb23b5883af3b4ecb3c3bb792cbcefbd1542c692be63"

	erc20ABI = `[
		{"type":"constructor","inputs":[{"name":"name","type":"string"},{"name":"symbol","type":"string"},{"name":"decimals","type":"uint8"}]},
		{"type":"function","name":"mint","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"type":"bool"}]},
		{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"type":"uint256"}]}
	]`
	paymasterABI = `[{"type":"constructor","inputs":[{"name":"erc20","type":"address"}]}]`

	fakeGasEstimate = 250_000
)

var deployerAddress = common.HexToAddress("0x2c7536E3605D9C16a7a3D7b1898e529396a65c23")

func mustABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

func ether(s string) *big.Int {
	v, err := zksync.ParseEther(s)
	if err != nil {
		panic(err)
	}
	return v
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.RuntimeConfig {
	defaults := config.DefaultProjectFile()
	return &config.RuntimeConfig{
		Network:            &config.Network{Name: "zksync-sepolia", RPCURL: "http://127.0.0.1:3050"},
		Networks:           defaults.Networks,
		AcceptedChainIDs:   defaults.AcceptedChainIDs,
		ConfirmChainIDs:    defaults.ConfirmChainIDs,
		DeployerPrivateKey: deployerKey,
		Artifacts: config.ArtifactsConfig{
			ERC20:     "artifacts/MyERC20.json",
			Paymaster: "artifacts/MyPaymaster.json",
		},
		Deploy: defaults.Deploy,
		Use:    defaults.Use,
	}
}

// fakeChain is an in-memory zkSync node. Sponsored transactions charge
// their fee to the paymaster, all others to the sender.
type fakeChain struct {
	mu       sync.Mutex
	chainID  uint64
	gasPrice *big.Int
	balances map[common.Address]*big.Int
	tokens   map[common.Address]map[common.Address]*big.Int
	deployed int
	sent     []string // mutating calls, in order
	lastEst  *models.TxRequest
	failOn   string
}

func newFakeChain(chainID uint64) *fakeChain {
	return &fakeChain{
		chainID:  chainID,
		gasPrice: big.NewInt(250_000_000),
		balances: map[common.Address]*big.Int{deployerAddress: ether("10")},
		tokens:   map[common.Address]map[common.Address]*big.Int{},
	}
}

func (c *fakeChain) fee(gas uint64) *big.Int {
	return new(big.Int).Mul(c.gasPrice, new(big.Int).SetUint64(gas))
}

func (c *fakeChain) balance(addr common.Address) *big.Int {
	if b, ok := c.balances[addr]; ok {
		return b
	}
	return new(big.Int)
}

func (c *fakeChain) charge(payer common.Address, amount *big.Int) error {
	if c.balance(payer).Cmp(amount) < 0 {
		return fmt.Errorf("insufficient funds for %s", payer.Hex())
	}
	c.balances[payer] = new(big.Int).Sub(c.balance(payer), amount)
	return nil
}

func (c *fakeChain) ChainID(ctx context.Context) (uint64, error) {
	return c.chainID, nil
}

func (c *fakeChain) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.balance(account)), nil
}

func (c *fakeChain) TokenBalance(ctx context.Context, token, holder common.Address) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	holders, ok := c.tokens[token]
	if !ok {
		return nil, fmt.Errorf("no token at %s", token.Hex())
	}
	if b, ok := holders[holder]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

func (c *fakeChain) GasPrice(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.gasPrice), nil
}

func (c *fakeChain) EstimateGas(ctx context.Context, req *models.TxRequest) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastEst = req
	return fakeGasEstimate, nil
}

func (c *fakeChain) Deploy(ctx context.Context, signer *models.Wallet, artifact *models.Artifact, args ...interface{}) (*models.DeployedContract, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failOn == "deploy:"+artifact.Name {
		return nil, errors.New("deployment failed")
	}
	if _, err := artifact.ABI.Pack("", args...); err != nil {
		return nil, err
	}
	if err := c.charge(signer.Address, c.fee(fakeGasEstimate)); err != nil {
		return nil, err
	}

	c.deployed++
	addr := common.BigToAddress(big.NewInt(int64(0x1000 + c.deployed)))
	if _, ok := artifact.ABI.Methods["mint"]; ok {
		c.tokens[addr] = map[common.Address]*big.Int{}
	}
	c.sent = append(c.sent, "deploy "+artifact.Name)
	return &models.DeployedContract{
		Name:    artifact.Name,
		Address: addr,
		TxHash:  common.BigToHash(big.NewInt(int64(len(c.sent)))),
	}, nil
}

func (c *fakeChain) Transfer(ctx context.Context, signer *models.Wallet, to common.Address, amount *big.Int) (*models.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.charge(signer.Address, new(big.Int).Add(amount, c.fee(21_000))); err != nil {
		return nil, err
	}
	c.balances[to] = new(big.Int).Add(c.balance(to), amount)
	c.sent = append(c.sent, "transfer "+to.Hex())
	return &models.Receipt{TxHash: common.BigToHash(big.NewInt(int64(len(c.sent))))}, nil
}

func (c *fakeChain) Transact(ctx context.Context, signer *models.Wallet, req *models.TxRequest) (*models.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	holders, ok := c.tokens[*req.To]
	if !ok {
		return nil, fmt.Errorf("no token at %s", req.To.Hex())
	}
	parsed := mustABI(erc20ABI)
	method, err := parsed.MethodById(req.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := method.Inputs.Unpack(req.Data[4:])
	if err != nil {
		return nil, err
	}

	payer := signer.Address
	if req.PaymasterParams != nil {
		payer = req.PaymasterParams.Paymaster
	}
	gas := req.GasLimit
	if gas == 0 {
		gas = fakeGasEstimate
	}
	if err := c.charge(payer, c.fee(gas)); err != nil {
		return nil, err
	}

	to := args[0].(common.Address)
	amount := args[1].(*big.Int)
	if holders[to] == nil {
		holders[to] = new(big.Int)
	}
	holders[to] = new(big.Int).Add(holders[to], amount)

	c.sent = append(c.sent, method.Name+" "+to.Hex())
	return &models.Receipt{TxHash: common.BigToHash(big.NewInt(int64(len(c.sent))))}, nil
}

var _ usecase.ChainClient = (*fakeChain)(nil)

// fakeArtifacts serves the two contracts the use cases need
type fakeArtifacts struct{}

func (fakeArtifacts) Load(ctx context.Context, path string) (*models.Artifact, error) {
	switch {
	case strings.HasSuffix(path, "MyERC20.json"):
		return &models.Artifact{Name: "MyERC20", Path: path, ABI: mustABI(erc20ABI), Bytecode: make([]byte, 32)}, nil
	case strings.HasSuffix(path, "MyPaymaster.json"):
		return &models.Artifact{Name: "MyPaymaster", Path: path, ABI: mustABI(paymasterABI), Bytecode: make([]byte, 32)}, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
}

// MockKeyGenerator is a mock implementation of KeyGenerator
type MockKeyGenerator struct {
	mock.Mock
}

func (m *MockKeyGenerator) Generate() (*models.Wallet, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

// MockDeploymentStore is a mock implementation of DeploymentStore
type MockDeploymentStore struct {
	mock.Mock
}

func (m *MockDeploymentStore) Load(ctx context.Context, path string) (*models.DeploymentRecord, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

func (m *MockDeploymentStore) Save(ctx context.Context, path string, record *models.DeploymentRecord) error {
	args := m.Called(ctx, path, record)
	return args.Error(0)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	args := m.Called(ctx, networkName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// memLocalConfig keeps the local config in memory
type memLocalConfig struct {
	cfg   config.LocalConfig
	saves int
}

func (m *memLocalConfig) Load(ctx context.Context) (*config.LocalConfig, error) {
	cfg := m.cfg
	return &cfg, nil
}

func (m *memLocalConfig) Save(ctx context.Context, cfg *config.LocalConfig) error {
	m.cfg = *cfg
	m.saves++
	return nil
}

func (m *memLocalConfig) GetPath() string {
	return ".zkpm/config.local.json"
}

// recordingProgress keeps the stages and events it was given
type recordingProgress struct {
	usecase.NopProgress
	stages []usecase.ExecutionStage
	events []usecase.ProgressEvent
}

func (p *recordingProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	p.events = append(p.events, event)
}

// spinning reports whether the last event left the spinner running
func (p *recordingProgress) spinning() bool {
	return len(p.events) > 0 && p.events[len(p.events)-1].Spinner
}

func (p *recordingProgress) ReportStage(ctx context.Context, stage usecase.ExecutionStage) {
	p.stages = append(p.stages, stage)
}

func generatedWallet() *models.Wallet {
	w, err := models.WalletFromHex(walletKey)
	if err != nil {
		panic(err)
	}
	return w
}
