package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string
	ConfigFile  string // empty when no zkpm.toml was found

	// Network selection
	Network          *Network // nil if not specified
	Networks         map[string]string
	AcceptedChainIDs []uint64
	ConfirmChainIDs  []uint64 // chains that prompt before broadcasting

	// Signer that pays for deployments and funding
	DeployerPrivateKey string

	// Deployment record used when addresses are not given explicitly
	Deployment string

	Artifacts ArtifactsConfig
	Deploy    DeployConfig
	Use       UseConfig

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration
	PollInterval   time.Duration
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId,omitempty"`
}

// ArtifactsConfig points at the compiled contract artifacts.
type ArtifactsConfig struct {
	ERC20     string `toml:"erc20"`
	Paymaster string `toml:"paymaster"`
}

// DeployConfig holds the parameters of the deployment step.
type DeployConfig struct {
	TokenName        string `toml:"token_name"`
	TokenSymbol      string `toml:"token_symbol"`
	TokenDecimals    uint8  `toml:"token_decimals"`
	PaymasterFunding string `toml:"paymaster_funding"` // ether, decimal
	InitialMint      int64  `toml:"initial_mint"`
}

// UseConfig holds the parameters of the sponsored mint.
type UseConfig struct {
	MintAmount       int64 `toml:"mint_amount"`
	MinimalAllowance int64 `toml:"minimal_allowance"`
}
