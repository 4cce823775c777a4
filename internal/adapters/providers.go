package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/zkpm/internal/adapters/artifacts"
	"github.com/trebuchet-org/zkpm/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/zkpm/internal/adapters/config"
	"github.com/trebuchet-org/zkpm/internal/adapters/fs"
	"github.com/trebuchet-org/zkpm/internal/adapters/interactive"
	"github.com/trebuchet-org/zkpm/internal/adapters/keys"
	"github.com/trebuchet-org/zkpm/internal/config"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewDeploymentStoreAdapter,
	wire.Bind(new(usecase.DeploymentStore), new(*fs.DeploymentStoreAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigRepository), new(*fs.LocalConfigStoreAdapter)),

	artifacts.NewLoader,
	wire.Bind(new(usecase.ArtifactLoader), new(*artifacts.Loader)),
)

// KeysSet provides key generation
var KeysSet = wire.NewSet(
	keys.NewGenerator,
	wire.Bind(new(usecase.KeyGenerator), new(*keys.Generator)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.ConfirmAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	KeysSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
