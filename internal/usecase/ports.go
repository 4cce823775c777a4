package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
)

// ChainClient talks to the connected zkSync node. Mutating calls sign with
// the given wallet and return once the transaction is confirmed.
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	TokenBalance(ctx context.Context, token, holder common.Address) (*big.Int, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, req *models.TxRequest) (uint64, error)
	Deploy(ctx context.Context, signer *models.Wallet, artifact *models.Artifact, args ...interface{}) (*models.DeployedContract, error)
	Transfer(ctx context.Context, signer *models.Wallet, to common.Address, amount *big.Int) (*models.Receipt, error)
	Transact(ctx context.Context, signer *models.Wallet, req *models.TxRequest) (*models.Receipt, error)
}

// ArtifactLoader reads compiled contracts from disk
type ArtifactLoader interface {
	Load(ctx context.Context, path string) (*models.Artifact, error)
}

// KeyGenerator creates fresh wallets
type KeyGenerator interface {
	Generate() (*models.Wallet, error)
}

// Confirmer asks the user to approve an action
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// DeploymentStore persists deployment records
type DeploymentStore interface {
	Load(ctx context.Context, path string) (*models.DeploymentRecord, error)
	Save(ctx context.Context, path string, record *models.DeploymentRecord) error
}

// LocalConfigRepository manages local configuration persistence
type LocalConfigRepository interface {
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// Progress tracking interfaces

// ExecutionStage names a step of a multi-transaction run
type ExecutionStage string

const (
	StageCheckingNetwork    ExecutionStage = "checking network"
	StageDeployingToken     ExecutionStage = "deploying token"
	StageDeployingPaymaster ExecutionStage = "deploying paymaster"
	StageFunding            ExecutionStage = "funding paymaster"
	StageMinting            ExecutionStage = "minting"
	StageEstimating         ExecutionStage = "estimating gas"
	StageSponsoredMint      ExecutionStage = "sponsored mint"
	StageCompleted          ExecutionStage = "completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    ExecutionStage
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	ReportStage(ctx context.Context, stage ExecutionStage)
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) ReportStage(context.Context, ExecutionStage) {}
func (NopProgress) OnProgress(context.Context, ProgressEvent)   {}
func (NopProgress) Info(string)                                 {}
func (NopProgress) Error(string)                                {}
