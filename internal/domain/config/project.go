package config

import "github.com/trebuchet-org/zkpm/internal/domain"

// ProjectFile is the raw zkpm.toml structure
type ProjectFile struct {
	AcceptedChainIDs   []uint64          `toml:"accepted_chain_ids"`
	ConfirmChainIDs    []uint64          `toml:"confirm_chain_ids"`
	DeployerPrivateKey string            `toml:"deployer_private_key"` //nolint:gosec // holds env var reference, not a literal secret
	Networks           map[string]string `toml:"networks"`
	Artifacts          ArtifactsConfig   `toml:"artifacts"`
	Deploy             DeployConfig      `toml:"deploy"`
	Use                UseConfig         `toml:"use"`
}

// DefaultProjectFile returns the values used for anything zkpm.toml leaves out.
func DefaultProjectFile() ProjectFile {
	return ProjectFile{
		AcceptedChainIDs: append([]uint64(nil), domain.DefaultAcceptedChainIDs...),
		ConfirmChainIDs:  []uint64{domain.ChainIDZkSyncMainnet},
		Networks: map[string]string{
			"zksync":         "https://mainnet.era.zksync.io",
			"zksync-sepolia": "https://sepolia.era.zksync.dev",
		},
		Artifacts: ArtifactsConfig{
			ERC20:     "artifacts/MyERC20.json",
			Paymaster: "artifacts/MyPaymaster.json",
		},
		Deploy: DeployConfig{
			TokenName:        "MyToken",
			TokenSymbol:      "MyToken",
			TokenDecimals:    18,
			PaymasterFunding: "0.06",
			InitialMint:      3,
		},
		Use: UseConfig{
			MintAmount:       5,
			MinimalAllowance: 1,
		},
	}
}
