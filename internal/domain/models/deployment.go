package models

import "time"

// DeploymentRecord is what `zkpm deploy` leaves behind for later commands.
// It never holds key material.
type DeploymentRecord struct {
	Network    string    `yaml:"network"`
	ChainID    uint64    `yaml:"chain_id"`
	ERC20      string    `yaml:"erc20"`
	Paymaster  string    `yaml:"paymaster"`
	Wallet     string    `yaml:"wallet"`
	DeployedAt time.Time `yaml:"deployed_at"`
}
